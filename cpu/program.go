package cpu

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Opcode represents a line of source with its generated instruction.
type Opcode struct {
	LineNo    int    // Source line number.
	Pc        int    // Address of the instruction.
	Line      string // Cleaned source text.
	Code      Code   // Encoded instruction word.
	LinkLabel string // Symbol to resolve into the address-load value.
}

// Program is an immutable instruction stream.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
}

// Debug returns the source opcode for an address, if any.
func (prog *Program) Debug(pc uint32) (dbg Debug) {
	if pc < uint32(len(prog.Opcodes)) {
		dbg.Opcode = &prog.Opcodes[pc]
	}

	return
}

// Len returns the number of instructions in the program.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// Fetch returns the instruction at a program counter.
func (prog *Program) Fetch(pc uint32) (code Code, ok bool) {
	if pc >= uint32(len(prog.Opcodes)) {
		return
	}

	return prog.Opcodes[pc].Code, true
}

// Codes iterates over every instruction, in address order.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(pc uint32, code Code) bool) {
		for n, op := range prog.Opcodes {
			if !yield(uint32(n), op.Code) {
				return
			}
		}
	}
}

// Binary returns the raw instruction words.
func (prog *Program) Binary() (bins []uint16) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint16(code))
	}

	return
}

// WriteBinary writes the program in the textual binary format.
func (prog *Program) WriteBinary(output io.Writer) (err error) {
	w := bufio.NewWriter(output)
	for _, code := range prog.Codes() {
		_, err = w.WriteString(code.Binary() + "\n")
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}

// parseWord parses a single 16 character binary word.
func parseWord(text string) (code Code, err error) {
	if len(text) != 16 {
		err = ErrBinaryFormat
		return
	}

	for _, ch := range []byte(text) {
		code <<= 1
		switch ch {
		case '0':
		case '1':
			code |= 1
		default:
			err = ErrBinaryFormat
			return
		}
	}

	return
}

// ParseBinary parses the textual binary format into a Program.
// Surrounding whitespace and blank lines are ignored.
func ParseBinary(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	for scanner.Scan() {
		lineno += 1
		line = strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		var code Code
		code, err = parseWord(line)
		if err != nil {
			prog = nil
			return
		}

		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: lineno,
			Pc:     len(prog.Opcodes),
			Line:   code.String(),
			Code:   code,
		})
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}
