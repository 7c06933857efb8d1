package cpu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Cpu is the simulation context for the Hack CPU.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A      uint16           // Address register.
	D      uint16           // Data register.
	Pc     uint32           // Current program counter.
	Memory [RAM_SIZE]uint16 // Data memory, addressed by A.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new, zeroed CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: 0x%04X (%d)\n", "a", cpu.A, int16(cpu.A))
	text += fmt.Sprintf("% 5s: 0x%04X (%d)\n", "d", cpu.D, int16(cpu.D))
	if int(cpu.A) < len(cpu.Memory) {
		m := cpu.Memory[cpu.A]
		text += fmt.Sprintf("% 5s: 0x%04X (%d)\n", "m", m, int16(m))
	} else {
		text += fmt.Sprintf("% 5s: ----\n", "m")
	}
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Sets the PC to zero.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		logrus.Debug("cpu: reset")
	}

	cpu.A = 0
	cpu.D = 0
	cpu.Pc = 0
	clear(cpu.Memory[:])
	cpu.Ticks = 0
}

// Read returns the memory cell at an address.
func (cpu *Cpu) Read(addr uint16) (value uint16, err error) {
	if int(addr) >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}

	value = cpu.Memory[addr]
	return
}

// Write sets the memory cell at an address.
func (cpu *Cpu) Write(addr uint16, value uint16) (err error) {
	if int(addr) >= len(cpu.Memory) {
		err = ErrAddress(addr)
		return
	}

	cpu.Memory[addr] = value
	return
}

// Execute executes a single instruction.
//
// All destinations of a compute instruction observe the operands as they
// were before the instruction, and M is always the cell addressed by the
// pre-instruction A. On error the CPU state is left unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	if cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"pc":   cpu.Pc,
			"word": code.Binary(),
			"a":    int16(cpu.A),
			"d":    int16(cpu.D),
		}).Debugf("%v", code)
	}

	if code.Class() == OP_LOAD {
		cpu.A = code.Value()
		cpu.Pc++
		cpu.Ticks++
		return
	}

	comp, dest, jump := code.ComputeDecode()
	if !comp.Valid() {
		err = errors.Join(ErrInstructionInvalid, ErrOpcodeComp)
		return
	}

	addr := cpu.A

	var m uint16
	if comp.ReadsM() {
		m, err = cpu.Read(addr)
		if err != nil {
			return
		}
	}

	result, err := Alu(comp, cpu.D, addr, m)
	if err != nil {
		return
	}

	// M first, so a range failure leaves A and D untouched.
	if dest.M() {
		err = cpu.Write(addr, result)
		if err != nil {
			return
		}
	}
	if dest.A() {
		cpu.A = result
	}
	if dest.D() {
		cpu.D = result
	}

	if jump.Taken(result) {
		cpu.Pc = uint32(cpu.A)
	} else {
		cpu.Pc++
	}
	cpu.Ticks++

	return
}
