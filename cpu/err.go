package cpu

import (
	"errors"

	"github.com/ezrec/hackcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrAddressRange = errors.New(f("memory address out of range"))

	// Instruction decode errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOpcodeComp         = errors.New(f("comp"))

	// Binary file errors
	ErrBinaryFormat = errors.New(f("binary word must be 16 characters of '0' or '1'"))

	// Assembler errors
	ErrSourceExtension = errors.New(f("source file must have the .asm extension"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrSymbolInvalid   = errors.New(f("symbol invalid"))
	ErrValueRange      = errors.New(f("value out of range"))
	ErrCompInvalid     = errors.New(f("comp invalid"))
	ErrDestInvalid     = errors.New(f("dest invalid"))
	ErrJumpInvalid     = errors.New(f("jump invalid"))
	ErrVariableFull    = errors.New(f("variable space exhausted"))
)

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrAddress uint16

func (ea ErrAddress) Error() string {
	return f("address 0x%04x beyond memory size 0x%04x", uint16(ea), RAM_SIZE)
}

func (ea ErrAddress) Unwrap() error {
	return ErrAddressRange
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrValueRange
}

type ErrMnemonic struct {
	Field string
	Text  string
	Err   error
}

func (err ErrMnemonic) Error() string {
	return f("unknown %v mnemonic '%v'", err.Field, err.Text)
}

func (err ErrMnemonic) Unwrap() error {
	return err.Err
}
