// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/hackcpu/internal"
)

// Assembler is a two pass assembler for Hack assembly text.
//
// The first pass encodes every instruction and records label addresses.
// Address-loads naming a symbol are left for the link step, which resolves
// labels, hands out variable addresses from VAR_BASE in order of first
// appearance, and only then patches the pending words.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label    map[string]int // Map of labels to instruction addresses.
	Variable map[string]int // Map of variables to data addresses.
}

var compMap = reverseMap(compName)
var destMap = stringerMap(DEST_NULL, DEST_AMD)
var jumpMap = stringerMap(JUMP_NULL, JUMP_JMP)

func reverseMap[K comparable, V comparable](in map[K]V) (out map[V]K) {
	out = make(map[V]K, len(in))
	for k, v := range in {
		out[v] = k
	}
	return
}

func stringerMap[T interface {
	~int
	String() string
}](first, last T) (out map[string]T) {
	out = map[string]T{}
	for code := first; code <= last; code++ {
		out[code.String()] = code
	}
	return
}

var reSymbol = regexp.MustCompile(`^[A-Za-z_.$:][A-Za-z0-9_.$:]*$`)

// Symbols returns an iterator over the predefined symbols, the labels,
// and the variables, in that order.
func (asm *Assembler) Symbols() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(
		maps.All(sysSymbol),
		maps.All(asm.Label),
		maps.All(asm.Variable),
	)
}

// Lookup resolves a symbol. Labels shadow predefined symbols.
func (asm *Assembler) Lookup(symbol string) (value int, ok bool) {
	value, ok = asm.Label[symbol]
	if ok {
		return
	}
	value, ok = sysSymbol[symbol]
	if ok {
		return
	}
	value, ok = asm.Variable[symbol]
	return
}

// cleanLine removes comments and all whitespace.
func cleanLine(text string) string {
	text, _, _ = strings.Cut(text, "//")
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// currentPc gets the address of the next instruction.
func (asm *Assembler) currentPc() int {
	return len(asm.Opcode)
}

// parseLoad parses the text after '@'.
func (asm *Assembler) parseLoad(text string) (code Code, label string, err error) {
	if len(text) > 0 && strings.IndexFunc(text, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
		var value uint64
		value, err = strconv.ParseUint(text, 10, 16)
		if err != nil || value > VALUE_MAX {
			err = ErrParseNumber(text)
			return
		}
		code = MakeCodeLoad(uint16(value))
		return
	}

	if !reSymbol.MatchString(text) {
		err = ErrSymbolInvalid
		return
	}

	label = text
	return
}

// parseCompute parses dest=comp;jump.
func (asm *Assembler) parseCompute(text string) (code Code, err error) {
	dest_text := DEST_NULL.String()
	jump_text := JUMP_NULL.String()

	if before, after, ok := strings.Cut(text, "="); ok {
		dest_text = before
		text = after
	}
	if before, after, ok := strings.Cut(text, ";"); ok {
		text = before
		jump_text = after
	}

	comp, ok := compMap[text]
	if !ok {
		err = &ErrMnemonic{Field: "comp", Text: text, Err: ErrCompInvalid}
		return
	}
	dest, ok := destMap[dest_text]
	if !ok {
		err = &ErrMnemonic{Field: "dest", Text: dest_text, Err: ErrDestInvalid}
		return
	}
	jump, ok := jumpMap[jump_text]
	if !ok {
		err = &ErrMnemonic{Field: "jump", Text: jump_text, Err: ErrJumpInvalid}
		return
	}

	code = MakeCodeCompute(comp, dest, jump)
	return
}

// parseLine parses a single cleaned line into the opcode list.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	if len(line) == 0 {
		return
	}

	if strings.HasPrefix(line, "(") && strings.HasSuffix(line, ")") {
		label := line[1 : len(line)-1]
		if !reSymbol.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentPc()
		return
	}

	var code Code
	var label string
	if text, ok := strings.CutPrefix(line, "@"); ok {
		code, label, err = asm.parseLoad(text)
	} else {
		code, err = asm.parseCompute(line)
	}
	if err != nil {
		return
	}

	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:    lineno,
		Pc:        asm.currentPc(),
		Line:      line,
		Code:      code,
		LinkLabel: label,
	})

	return
}

// link resolves every pending symbol, then encodes the pending loads.
func (asm *Assembler) link() (err error) {
	next := VAR_BASE
	for _, op := range asm.Opcode {
		if len(op.LinkLabel) == 0 {
			continue
		}
		_, ok := asm.Lookup(op.LinkLabel)
		if ok {
			continue
		}
		if next > VALUE_MAX {
			err = &ErrSyntax{LineNo: op.LineNo, Line: op.Line, Err: ErrVariableFull}
			return
		}
		asm.Variable[op.LinkLabel] = next
		next++
	}

	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		if len(op.LinkLabel) == 0 {
			continue
		}
		value, _ := asm.Lookup(op.LinkLabel)
		op.Code = MakeCodeLoad(uint16(value))
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	asm.Opcode = asm.Opcode[:0]
	asm.Label = map[string]int{}
	asm.Variable = map[string]int{}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			logrus.WithField("line", lineno).Debug(text)
		}

		line = cleanLine(text)
		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: strings.TrimSpace(text), Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
