package emulator

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/hackcpu/cost"
	"github.com/ezrec/hackcpu/cpu"
)

// Result is the terminal snapshot of a run.
type Result struct {
	Model        string   // Name of the cost model charged.
	A            uint16   // Final A register.
	D            uint16   // Final D register.
	Pc           uint32   // Final program counter.
	Memory       []uint16 // Final data memory.
	Instructions int      // Instructions executed.
	Cost         float64  // Weighted cost accumulated.
	Reason       Reason   // Why the run stopped.
}

// Result returns a snapshot of the current emulator state.
func (emu *Emulator) Result() (res *Result) {
	res = &Result{
		Model:        emu.Model.Name(),
		A:            emu.Cpu.A,
		D:            emu.Cpu.D,
		Pc:           emu.Cpu.Pc,
		Memory:       slices.Clone(emu.Cpu.Memory[:]),
		Instructions: emu.Instructions(),
		Cost:         emu.Cost,
		Reason:       emu.Reason,
	}

	return
}

// Speedup is the instruction count divided by the weighted cost.
// A run with no cost reports zero.
func (res *Result) Speedup() float64 {
	if res.Cost == 0 {
		return 0
	}

	return float64(res.Instructions) / res.Cost
}

// SameState returns true if both results ended in the same machine state
// after the same number of instructions.
func (res *Result) SameState(other *Result) bool {
	return res.A == other.A &&
		res.D == other.D &&
		res.Pc == other.Pc &&
		res.Instructions == other.Instructions &&
		res.Reason == other.Reason &&
		slices.Equal(res.Memory, other.Memory)
}

// Compare runs the program once per cost model, concurrently, and returns
// the results in model order. Every run must reach the same machine state.
// A maxCycles of zero or less selects MAX_CYCLES.
func Compare(prog *cpu.Program, maxCycles int, verbose bool, models ...cost.Model) (results []*Result, err error) {
	results = make([]*Result, len(models))

	var group errgroup.Group
	for n, model := range models {
		group.Go(func() (err error) {
			emu := NewEmulator(model)
			emu.Program = prog
			emu.Verbose = verbose
			if maxCycles > 0 {
				emu.MaxCycles = maxCycles
			}
			err = emu.Reset()
			if err != nil {
				return
			}
			results[n], err = emu.Run()
			return
		})
	}

	err = group.Wait()
	if err != nil {
		results = nil
		return
	}

	for _, res := range results[min(1, len(results)):] {
		if !res.SameState(results[0]) {
			err = ErrDiverged
			return
		}
	}

	return
}
