// Package cost provides the cycle cost models charged by the emulator.
//
// A Model maps a single instruction to a non-negative cost. Models hold no
// mutable state, so one instance may be shared by any number of concurrent
// emulators. The emulator loop is the same for every model; only the
// accumulated cost differs between runs of the same program.
package cost

import (
	"errors"

	"github.com/ezrec/hackcpu/cpu"
	"github.com/ezrec/hackcpu/translate"
)

var f = translate.From

var (
	ErrModelUnknown = errors.New(f("cost model unknown"))
)

// Model is a cost accounting strategy.
type Model interface {
	// Name identifies the model in reports.
	Name() string
	// Cost returns the weighted cycle cost of executing code.
	Cost(code cpu.Code) float64
}

const (
	BASE_COST   = 1.0 // Cost of any unaccelerated instruction.
	FUSED_COST  = 0.3 // NMC cost of M := D+M, M := M+1, M := M-1.
	MEMORY_COST = 0.5 // NMC cost of any other M-reading write to M.
)

// Baseline charges every instruction the same.
type Baseline struct{}

var _ Model = Baseline{}

func (Baseline) Name() string {
	return "baseline"
}

func (Baseline) Cost(code cpu.Code) float64 {
	return BASE_COST
}

// NMC models near-memory computing: read-modify-write operations on M are
// performed next to the memory array and are charged less.
type NMC struct {
	Base   float64 // Address-loads, and compute instructions not writing M.
	Fused  float64 // D+M, M+1, M-1 written to M.
	Memory float64 // Other computations reading M, written to M.
}

var _ Model = NMC{}

// DefaultNMC returns the NMC model with the standard weights.
func DefaultNMC() NMC {
	return NMC{
		Base:   BASE_COST,
		Fused:  FUSED_COST,
		Memory: MEMORY_COST,
	}
}

func (nmc NMC) Name() string {
	return "nmc"
}

func (nmc NMC) Cost(code cpu.Code) float64 {
	if code.Class() == cpu.OP_LOAD {
		return nmc.Base
	}

	comp, dest, _ := code.ComputeDecode()
	if !dest.M() {
		return nmc.Base
	}

	switch comp {
	case cpu.COMP_D_PLUS_M, cpu.COMP_M_PLUS_1, cpu.COMP_M_MINUS_1:
		return nmc.Fused
	}

	if comp.ReadsM() {
		return nmc.Memory
	}

	return nmc.Base
}

// ByName returns one of the built-in models.
func ByName(name string) (model Model, err error) {
	switch name {
	case Baseline{}.Name():
		model = Baseline{}
	case NMC{}.Name():
		model = DefaultNMC()
	default:
		err = ErrModelUnknown
	}

	return
}
