package emulator

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hackcpu/cost"
	"github.com/ezrec/hackcpu/cpu"
)

var sumProgram = []string{
	"// Sums 10 down to 1 into 'sum'.",
	"@10",
	"D=A",
	"@i",
	"M=D",
	"@sum",
	"M=0",
	"(LOOP)",
	"@i",
	"D=M",
	"@sum",
	"M=D+M",
	"@i",
	"M=M-1",
	"D=M",
	"@LOOP",
	"D;JGT",
	"(END)",
	"@END",
	"0;JMP",
}

func assemble(t *testing.T, program []string) (prog *cpu.Program) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return
}

func doRun(t *testing.T, model cost.Model, prog *cpu.Program) (emu *Emulator, res *Result) {
	emu = NewEmulator(model)
	emu.Program = prog

	err := emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	res, err = emu.Run()
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(cost.Baseline{})
	assert.Equal(MAX_CYCLES, emu.MaxCycles)

	// An empty program ends at once.
	res, err := emu.Run()
	assert.NoError(err)
	assert.Equal(REASON_PROGRAM_END, res.Reason)
	assert.Equal(0, res.Instructions)
	assert.Equal(0.0, res.Cost)
	assert.Equal(0.0, res.Speedup())
	assert.Equal(cpu.RAM_SIZE, len(res.Memory))

	// Ticks after a halt do nothing.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(0, emu.Instructions())
}

func TestEmulatorProgramEnd(t *testing.T) {
	assert := assert.New(t)

	prog, err := cpu.ParseBinary(strings.NewReader("0000000000000101\n1110110000010000\n1110101010000111\n"))
	assert.NoError(err)

	// The jump lands past the end of the program.
	_, res := doRun(t, cost.Baseline{}, prog)
	assert.Equal(REASON_PROGRAM_END, res.Reason)
	assert.Equal(uint16(5), res.A)
	assert.Equal(uint16(5), res.D)
	assert.Equal(uint32(5), res.Pc)
	assert.Equal(3, res.Instructions)
	assert.Equal(3.0, res.Cost)
}

func TestEmulatorRoundTrip(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"@2", "D=A", "@3", "D=D+A", "@0", "M=D"})

	buf := &bytes.Buffer{}
	assert.NoError(prog.WriteBinary(buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(6, len(lines))
	assert.Equal("1110001100001000", lines[5])

	loaded, err := cpu.ParseBinary(buf)
	assert.NoError(err)

	_, res := doRun(t, cost.DefaultNMC(), loaded)
	assert.Equal(REASON_PROGRAM_END, res.Reason)
	assert.Equal(uint16(5), res.Memory[0])
	assert.Equal(6, res.Instructions)
}

func TestEmulatorSelfJump(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"@5", "D=A", "@3", "0;JMP"})
	_, res := doRun(t, cost.Baseline{}, prog)
	assert.Equal(REASON_SELF_JUMP, res.Reason)
	assert.Equal(uint32(3), res.Pc)
	assert.Equal(4, res.Instructions)
	assert.Equal(uint16(5), res.D)

	prog = assemble(t, []string{"0;JMP"})
	_, res = doRun(t, cost.Baseline{}, prog)
	assert.Equal(REASON_SELF_JUMP, res.Reason)
	assert.Equal(uint32(0), res.Pc)
	assert.Equal(1, res.Instructions)

	// A conditional jump to itself is not a self-jump.
	prog = assemble(t, []string{"@1", "D;JEQ"})
	_, res = doRun(t, cost.Baseline{}, prog)
	assert.Equal(REASON_CYCLE_DETECTED, res.Reason)
}

func TestEmulatorCycleDetected(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"@0", "0;JMP"})
	_, res := doRun(t, cost.Baseline{}, prog)
	assert.Equal(REASON_CYCLE_DETECTED, res.Reason)
	assert.Equal(HISTORY_WINDOW-1, res.Instructions)
	assert.Equal(uint32(1), res.Pc)
}

func TestEmulatorCycleLimit(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"@0", "D=D+1", "0;JMP"})

	emu := NewEmulator(cost.Baseline{})
	emu.Program = prog
	emu.MaxCycles = 1000
	assert.NoError(emu.Reset())

	res, err := emu.Run()
	assert.NoError(err)
	assert.Equal(REASON_CYCLE_LIMIT, res.Reason)
	assert.Equal(1000, res.Instructions)
	assert.Equal(uint16(333), res.D)
	assert.Equal(uint32(1), res.Pc)
}

func TestEmulatorSum(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)

	_, base := doRun(t, cost.Baseline{}, prog)
	assert.Equal("baseline", base.Model)
	assert.Equal(REASON_CYCLE_DETECTED, base.Reason)
	assert.Equal(uint16(55), base.Memory[17])
	assert.Equal(uint16(0), base.Memory[16])
	assert.Equal(115, base.Instructions)
	assert.Equal(uint32(16), base.Pc)
	assert.Equal(uint16(15), base.A)
	assert.Equal(uint16(0), base.D)
	assert.Equal(115.0, base.Cost)
	assert.Equal(1.0, base.Speedup())

	_, nmc := doRun(t, cost.DefaultNMC(), prog)
	assert.Equal("nmc", nmc.Model)
	assert.True(base.SameState(nmc))
	assert.InDelta(101.0, nmc.Cost, 1e-9)
	assert.InDelta(115.0/101.0, nmc.Speedup(), 1e-9)
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)
	emu, first := doRun(t, cost.DefaultNMC(), prog)

	assert.NoError(emu.Reset())
	assert.Equal(REASON_RUNNING, emu.Reason)
	assert.Equal(0.0, emu.Cost)
	assert.Equal(0, emu.Instructions())

	second, err := emu.Run()
	assert.NoError(err)
	assert.True(first.SameState(second))
	assert.Equal(first.Cost, second.Cost)
}

func TestEmulatorModelsAgree(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)

	base := NewEmulator(cost.Baseline{})
	base.Program = prog
	assert.NoError(base.Reset())

	nmc := NewEmulator(cost.DefaultNMC())
	nmc.Program = prog
	assert.NoError(nmc.Reset())

	for {
		base_done, err := base.Tick()
		assert.NoError(err)
		nmc_done, err := nmc.Tick()
		assert.NoError(err)

		assert.Equal(base_done, nmc_done)
		assert.Equal(base.Cpu.A, nmc.Cpu.A)
		assert.Equal(base.Cpu.D, nmc.Cpu.D)
		assert.Equal(base.Cpu.Pc, nmc.Cpu.Pc)
		assert.True(base.Cpu.Memory == nmc.Cpu.Memory)

		if base_done || nmc_done {
			break
		}
	}

	assert.LessOrEqual(nmc.Cost, base.Cost)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{"D=-1", "A=D", "M=1"})

	emu := NewEmulator(cost.Baseline{})
	emu.Program = prog
	assert.NoError(emu.Reset())

	res, err := emu.Run()
	assert.Nil(res)
	assert.ErrorIs(err, cpu.ErrAddressRange)

	var er *ErrRuntime
	if assert.ErrorAs(err, &er) {
		assert.Equal(uint32(2), er.Pc)
		assert.Equal(3, er.LineNo)
	}

	assert.Equal(uint16(0xffff), emu.Cpu.A)
	assert.Equal(REASON_RUNNING, emu.Reason)

	// Undefined computations are fatal too.
	prog, err = cpu.ParseBinary(strings.NewReader("1111111111000000\n"))
	assert.NoError(err)

	emu.Program = prog
	assert.NoError(emu.Reset())
	_, err = emu.Run()
	assert.ErrorIs(err, cpu.ErrInstructionInvalid)
	assert.ErrorAs(err, &er)
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)

	results, err := Compare(prog, 0, false, cost.Baseline{}, cost.DefaultNMC())
	assert.NoError(err)
	if assert.Equal(2, len(results)) {
		assert.Equal("baseline", results[0].Model)
		assert.Equal("nmc", results[1].Model)
		assert.Equal(115.0, results[0].Cost)
		assert.InDelta(101.0, results[1].Cost, 1e-9)
	}

	results, err = Compare(prog, 50, false, cost.Baseline{}, cost.DefaultNMC())
	assert.NoError(err)
	for _, res := range results {
		assert.Equal(REASON_CYCLE_LIMIT, res.Reason)
		assert.Equal(50, res.Instructions)
	}

	results, err = Compare(prog, 0, false)
	assert.NoError(err)
	assert.Equal(0, len(results))

	bad := assemble(t, []string{"D=-1", "A=D", "M=1"})
	results, err = Compare(bad, 0, false, cost.Baseline{}, cost.DefaultNMC())
	assert.ErrorIs(err, cpu.ErrAddressRange)
	assert.Nil(results)
}

func TestCompareVerbose(t *testing.T) {
	assert := assert.New(t)

	hook := logtest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(level)
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(os.Stderr)

	prog := assemble(t, []string{"@0", "0;JMP"})
	_, err := Compare(prog, 0, true, cost.Baseline{}, cost.DefaultNMC())
	assert.NoError(err)

	var history []uint32
	for range HISTORY_WINDOW / 2 {
		history = append(history, 0, 1)
	}

	halts := 0
	traces := 0
	for _, entry := range hook.AllEntries() {
		if _, ok := entry.Data["word"]; ok {
			traces++
		}
		if strings.HasPrefix(entry.Message, "halt: cycle-detected") {
			halts++
			assert.Equal(history, entry.Data["history"])
			assert.Equal(HISTORY_WINDOW-1, entry.Data["instructions"])
			assert.Contains(entry.Message, "ticks: 19")
		}
	}
	assert.Equal(2, halts)
	assert.Equal(2*(HISTORY_WINDOW-1), traces)

	// Quiet runs log nothing.
	hook.Reset()
	_, err = Compare(prog, 0, false, cost.Baseline{}, cost.DefaultNMC())
	assert.NoError(err)
	assert.Equal(0, len(hook.AllEntries()))
}

func TestResultSameState(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, sumProgram)
	_, res := doRun(t, cost.Baseline{}, prog)

	other := *res
	other.Memory = append([]uint16{}, res.Memory...)
	other.Cost = 0
	other.Model = "other"
	assert.True(res.SameState(&other))

	other.Memory[17] = 1
	assert.False(res.SameState(&other))

	other = *res
	other.Reason = REASON_CYCLE_LIMIT
	assert.False(res.SameState(&other))
}

func TestReasonString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("running", REASON_RUNNING.String())
	assert.Equal("self-jump", REASON_SELF_JUMP.String())
	assert.Equal("cycle-detected", REASON_CYCLE_DETECTED.String())
	assert.Equal("cycle-limit", REASON_CYCLE_LIMIT.String())
	assert.Equal("program-end", REASON_PROGRAM_END.String())
}
