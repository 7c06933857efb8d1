package emulator

import (
	"errors"

	"github.com/ezrec/hackcpu/translate"
)

var f = translate.From

var (
	ErrDiverged = errors.New(f("cost models disagree on the final machine state"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     uint32
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
