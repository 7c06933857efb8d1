// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives the Hack CPU over a program, charging a cost
// model per instruction and detecting termination.
package emulator

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/hackcpu/cost"
	"github.com/ezrec/hackcpu/cpu"
	"github.com/ezrec/hackcpu/internal"
)

const (
	MAX_CYCLES       = 10_000_000 // Default instruction cap.
	HISTORY_WINDOW   = 20         // Trailing program counters inspected for idle loops.
	HISTORY_DISTINCT = 2          // At most this many distinct PCs in a full window halts.
)

// Reason is why a run stopped.
type Reason int

//go:generate go tool stringer -linecomment -type=Reason
const (
	REASON_RUNNING        = Reason(0) // running
	REASON_SELF_JUMP      = Reason(1) // self-jump
	REASON_CYCLE_DETECTED = Reason(2) // cycle-detected
	REASON_CYCLE_LIMIT    = Reason(3) // cycle-limit
	REASON_PROGRAM_END    = Reason(4) // program-end
)

// Emulator state. CPU + program + cost model.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.
	Model    cost.Model   // Cost model charged per instruction.

	MaxCycles int // Instruction cap; reaching it is a normal halt.

	Cost   float64 // Weighted cost accumulated since reset.
	Reason Reason  // Why the emulator stopped, or REASON_RUNNING.

	history *internal.Window[uint32]
}

// NewEmulator creates a new emulator charging the given cost model.
func NewEmulator(model cost.Model) (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Program:   &cpu.Program{},
		Model:     model,
		MaxCycles: MAX_CYCLES,
		history:   internal.NewWindow[uint32](HISTORY_WINDOW),
	}

	return
}

// Reset the emulator state.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.history.Reset()
	emu.Cost = 0
	emu.Reason = REASON_RUNNING

	return
}

// Instructions returns the number of instructions executed since a reset.
func (emu *Emulator) Instructions() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number for the next instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// halt stops the emulator.
func (emu *Emulator) halt(reason Reason) {
	emu.Reason = reason

	if emu.Verbose {
		logrus.WithFields(logrus.Fields{
			"model":        emu.Model.Name(),
			"pc":           emu.Cpu.Pc,
			"instructions": emu.Instructions(),
			"history":      slices.Collect(emu.history.All()),
		}).Debugf("halt: %v\n%v", reason, emu.Cpu)
	}
}

// Tick performs a single instruction cycle of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Reason != REASON_RUNNING {
		done = true
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	code, ok := emu.Program.Fetch(pc)
	if !ok {
		emu.halt(REASON_PROGRAM_END)
		done = true
		return
	}

	if emu.Instructions() >= emu.MaxCycles {
		emu.halt(REASON_CYCLE_LIMIT)
		done = true
		return
	}

	emu.history.Push(pc)
	if emu.history.Full() && emu.history.Distinct() <= HISTORY_DISTINCT {
		emu.halt(REASON_CYCLE_DETECTED)
		done = true
		return
	}

	emu.Cost += emu.Model.Cost(code)

	err = emu.Cpu.Execute(code)
	if err != nil {
		return
	}

	if code.Class() == cpu.OP_COMPUTE {
		_, _, jump := code.ComputeDecode()
		if jump == cpu.JUMP_JMP && emu.Cpu.Pc == pc {
			emu.halt(REASON_SELF_JUMP)
			done = true
			return
		}
	}

	return
}

// Run ticks the emulator until it halts, and returns the result.
func (emu *Emulator) Run() (res *Result, err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	res = emu.Result()
	return
}
