package cost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hackcpu/cpu"
)

const nmcScript = `
name = "nmc-script"

def cost(insn):
    if insn.kind == "load" or not insn.writes_m:
        return 1
    if insn.comp in ("D+M", "M+1", "M-1"):
        return 0.3
    if insn.reads_m:
        return 0.5
    return 1.0
`

func TestScriptMatchesNMC(t *testing.T) {
	assert := assert.New(t)

	script, err := LoadScript("nmc.star", nmcScript)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal("nmc-script", script.Name())

	nmc := DefaultNMC()
	for word := range 0x10000 {
		code := cpu.Code(word)
		if code.Class() == cpu.OP_COMPUTE {
			comp, _, _ := code.ComputeDecode()
			if !comp.Valid() {
				continue
			}
		}
		if nmc.Cost(code) != script.Cost(code) {
			assert.Equal(nmc.Cost(code), script.Cost(code), code.String())
			return
		}
	}
}

func TestScriptFields(t *testing.T) {
	assert := assert.New(t)

	src := `
def cost(insn):
    if insn.kind == "load":
        return 7
    if insn.dest == "AM" and insn.jump == "JNE":
        return 3
    if insn.comp == "D&A":
        return 2
    return 0
`

	script, err := LoadScript("dir/fields.star", src)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal("fields", script.Name())
	assert.Equal(7.0, script.Cost(cpu.MakeCodeLoad(1234)))
	assert.Equal(3.0, script.Cost(cpu.MakeCodeCompute(cpu.COMP_M_PLUS_1, cpu.DEST_AM, cpu.JUMP_JNE)))
	assert.Equal(2.0, script.Cost(cpu.MakeCodeCompute(cpu.COMP_D_AND_A, cpu.DEST_D, cpu.JUMP_NULL)))
	assert.Equal(0.0, script.Cost(cpu.MakeCodeCompute(cpu.COMP_D_AND_A|cpu.COMP_READS_M, cpu.DEST_D, cpu.JUMP_NULL)))
}

func TestScriptFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "flat.star")
	err := os.WriteFile(path, []byte("def cost(insn):\n    return 0.25\n"), 0o644)
	assert.NoError(err)

	script, err := LoadScript(path, nil)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal("flat", script.Name())
	assert.Equal(0.25, script.Cost(cpu.MakeCodeLoad(0)))
	assert.Equal(0.25, script.Cost(cpu.MakeCodeCompute(cpu.COMP_ZERO, cpu.DEST_NULL, cpu.JUMP_JMP)))
}

func TestScriptErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadScript("none.star", "x = 1\n")
	assert.ErrorIs(err, ErrScriptCost)

	_, err = LoadScript("str.star", "def cost(insn):\n    return \"cheap\"\n")
	assert.ErrorIs(err, ErrScriptResult)

	_, err = LoadScript("neg.star", "def cost(insn):\n    return -1\n")
	assert.ErrorIs(err, ErrScriptResult)

	src := `
def cost(insn):
    if insn.comp == "M-D":
        return -0.5
    return 1
`
	_, err = LoadScript("late.star", src)
	assert.ErrorIs(err, ErrScriptResult)

	var es *ErrScript
	if assert.ErrorAs(err, &es) {
		comp, _, _ := es.Code.ComputeDecode()
		assert.Equal(cpu.COMP_M_MINUS_D, comp)
	}

	_, err = LoadScript("fail.star", "def cost(insn):\n    fail(\"no\")\n")
	assert.ErrorAs(err, &es)

	_, err = LoadScript("syntax.star", "def cost(insn)\n")
	assert.Error(err)
}
