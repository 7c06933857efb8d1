package cpu

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	SOURCE_EXT = ".asm"  // Assembly source extension.
	BINARY_EXT = ".hack" // Textual binary extension.
)

// LoadBinaryFile reads a textual binary file.
func LoadBinaryFile(path string) (prog *Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = ParseBinary(inf)
	return
}

// BinaryPath returns the sibling binary path for a source file.
func BinaryPath(source string) (path string, err error) {
	if filepath.Ext(source) != SOURCE_EXT {
		err = ErrSourceExtension
		return
	}

	path = strings.TrimSuffix(source, SOURCE_EXT) + BINARY_EXT
	return
}

// AssembleFile assembles a source file and writes the binary to output.
// An empty output selects the sibling file with the binary extension.
func (asm *Assembler) AssembleFile(source string, output string) (prog *Program, path string, err error) {
	path = output
	if len(path) == 0 {
		path, err = BinaryPath(source)
	} else if filepath.Ext(source) != SOURCE_EXT {
		err = ErrSourceExtension
	}
	if err != nil {
		return
	}

	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = asm.Parse(inf)
	if err != nil {
		return
	}

	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	err = prog.WriteBinary(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()
	return
}
