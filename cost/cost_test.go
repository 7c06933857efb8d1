package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hackcpu/cpu"
)

func TestBaseline(t *testing.T) {
	assert := assert.New(t)

	model := Baseline{}
	assert.Equal("baseline", model.Name())

	for word := range 0x10000 {
		if word%97 != 0 {
			continue
		}
		assert.Equal(1.0, model.Cost(cpu.Code(word)))
	}
}

func TestNMC(t *testing.T) {
	assert := assert.New(t)

	model := DefaultNMC()
	assert.Equal("nmc", model.Name())

	compute := cpu.MakeCodeCompute

	table := [](struct {
		name string
		code cpu.Code
		cost float64
	}){
		{"@5", cpu.MakeCodeLoad(5), 1.0},
		{"M=M+1", compute(cpu.COMP_M_PLUS_1, cpu.DEST_M, cpu.JUMP_NULL), 0.3},
		{"AM=M+1", compute(cpu.COMP_M_PLUS_1, cpu.DEST_AM, cpu.JUMP_NULL), 0.3},
		{"MD=M-1;JGT", compute(cpu.COMP_M_MINUS_1, cpu.DEST_MD, cpu.JUMP_JGT), 0.3},
		{"M=D+M", compute(cpu.COMP_D_PLUS_M, cpu.DEST_M, cpu.JUMP_NULL), 0.3},
		{"M=!M", compute(cpu.COMP_NOT_M, cpu.DEST_M, cpu.JUMP_NULL), 0.5},
		{"M=M-D", compute(cpu.COMP_M_MINUS_D, cpu.DEST_M, cpu.JUMP_NULL), 0.5},
		{"AMD=D|M", compute(cpu.COMP_D_OR_M, cpu.DEST_AMD, cpu.JUMP_NULL), 0.5},
		{"M=D", compute(cpu.COMP_D, cpu.DEST_M, cpu.JUMP_NULL), 1.0},
		{"M=0", compute(cpu.COMP_ZERO, cpu.DEST_M, cpu.JUMP_NULL), 1.0},
		{"D=M", compute(cpu.COMP_M, cpu.DEST_D, cpu.JUMP_NULL), 1.0},
		{"D=D+M", compute(cpu.COMP_D_PLUS_M, cpu.DEST_D, cpu.JUMP_NULL), 1.0},
		{"0;JMP", compute(cpu.COMP_ZERO, cpu.DEST_NULL, cpu.JUMP_JMP), 1.0},
	}

	for _, entry := range table {
		assert.Equal(entry.name, entry.code.String())
		assert.Equal(entry.cost, model.Cost(entry.code), entry.name)
	}

	custom := NMC{Base: 2, Fused: 0, Memory: 1}
	assert.Equal(0.0, custom.Cost(compute(cpu.COMP_M_PLUS_1, cpu.DEST_M, cpu.JUMP_NULL)))
	assert.Equal(2.0, custom.Cost(cpu.MakeCodeLoad(0)))
}

func TestByName(t *testing.T) {
	assert := assert.New(t)

	model, err := ByName("baseline")
	assert.NoError(err)
	assert.Equal(Baseline{}, model)

	model, err = ByName("nmc")
	assert.NoError(err)
	assert.Equal(DefaultNMC(), model)

	_, err = ByName("quantum")
	assert.ErrorIs(err, ErrModelUnknown)
}
