package cost

import (
	"errors"
	"math"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/ezrec/hackcpu/cpu"
)

var (
	ErrScriptCost   = errors.New(f("script must define cost(insn)"))
	ErrScriptResult = errors.New(f("cost(insn) must return a non-negative number"))
)

// ErrScript locates a failing cost evaluation.
type ErrScript struct {
	Code cpu.Code
	Err  error
}

func (err *ErrScript) Error() string {
	return f("cost(%v) %v", err.Code, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// Script is a cost model programmed in Starlark.
//
// The script must define a function cost(insn), where insn has the fields:
//
//	kind      "load" or "compute"
//	comp      comp mnemonic, e.g. "D+M" ("" for loads)
//	dest      dest mnemonic, e.g. "AM" ("null" for loads)
//	jump      jump mnemonic, e.g. "JNE" ("null" for loads)
//	reads_m   True if the computation reads M
//	writes_m  True if M is a destination
//
// An optional global string 'name' names the model.
//
// The function is evaluated once per distinct instruction when the script
// is loaded; the resulting table is immutable.
type Script struct {
	name    string
	load    float64
	compute [cpu.CODE_FIELDS + 1]float64
}

var _ Model = (*Script)(nil)

func (s *Script) Name() string {
	return s.name
}

func (s *Script) Cost(code cpu.Code) float64 {
	if code.Class() == cpu.OP_LOAD {
		return s.load
	}

	return s.compute[code.Fields()]
}

// insnOf builds the Starlark view of an instruction.
func insnOf(code cpu.Code) starlark.Value {
	fields := starlark.StringDict{
		"kind":     starlark.String(code.Class().String()),
		"comp":     starlark.String(""),
		"dest":     starlark.String(cpu.DEST_NULL.String()),
		"jump":     starlark.String(cpu.JUMP_NULL.String()),
		"reads_m":  starlark.False,
		"writes_m": starlark.False,
	}

	if code.Class() == cpu.OP_COMPUTE {
		comp, dest, jump := code.ComputeDecode()
		fields["comp"] = starlark.String(comp.String())
		fields["dest"] = starlark.String(dest.String())
		fields["jump"] = starlark.String(jump.String())
		fields["reads_m"] = starlark.Bool(comp.ReadsM())
		fields["writes_m"] = starlark.Bool(dest.M())
	}

	return starlarkstruct.FromStringDict(starlarkstruct.Default, fields)
}

// toCost converts a Starlark result to a cost.
func toCost(value starlark.Value) (cost float64, err error) {
	switch v := value.(type) {
	case starlark.Float:
		cost = float64(v)
	case starlark.Int:
		i64, ok := v.Int64()
		if !ok {
			err = ErrScriptResult
			return
		}
		cost = float64(i64)
	default:
		err = ErrScriptResult
		return
	}

	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		err = ErrScriptResult
	}

	return
}

// LoadScript compiles a Starlark cost model. If src is nil the file named
// by filename is read.
func LoadScript(filename string, src any) (s *Script, err error) {
	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, starlark.StringDict{})
	if err != nil {
		return
	}

	fn, ok := globals["cost"].(starlark.Callable)
	if !ok {
		err = ErrScriptCost
		return
	}

	eval := func(code cpu.Code) (cost float64, err error) {
		var value starlark.Value
		value, err = starlark.Call(thread, fn, starlark.Tuple{insnOf(code)}, nil)
		if err == nil {
			cost, err = toCost(value)
		}
		if err != nil {
			err = &ErrScript{Code: code, Err: err}
		}
		return
	}

	s = &Script{
		name: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
	}
	if name, ok := globals["name"].(starlark.String); ok {
		s.name = string(name)
	}

	s.load, err = eval(cpu.MakeCodeLoad(0))
	if err != nil {
		s = nil
		return
	}

	for fields := range len(s.compute) {
		code := cpu.CODE_COMPUTE | cpu.Code(fields)
		comp, _, _ := code.ComputeDecode()
		if !comp.Valid() {
			continue
		}
		s.compute[fields], err = eval(code)
		if err != nil {
			s = nil
			return
		}
	}

	return
}
