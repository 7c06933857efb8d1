package cpu

// aluFunc computes in the signed domain; the caller reduces to 16 bits.
type aluFunc func(d, a, m int) int

var aluTable = [COMP_MASK + 1]aluFunc{
	COMP_ZERO:      func(d, a, m int) int { return 0 },
	COMP_ONE:       func(d, a, m int) int { return 1 },
	COMP_NEG_ONE:   func(d, a, m int) int { return -1 },
	COMP_D:         func(d, a, m int) int { return d },
	COMP_A:         func(d, a, m int) int { return a },
	COMP_M:         func(d, a, m int) int { return m },
	COMP_NOT_D:     func(d, a, m int) int { return ^d },
	COMP_NOT_A:     func(d, a, m int) int { return ^a },
	COMP_NOT_M:     func(d, a, m int) int { return ^m },
	COMP_NEG_D:     func(d, a, m int) int { return -d },
	COMP_NEG_A:     func(d, a, m int) int { return -a },
	COMP_NEG_M:     func(d, a, m int) int { return -m },
	COMP_D_PLUS_1:  func(d, a, m int) int { return d + 1 },
	COMP_A_PLUS_1:  func(d, a, m int) int { return a + 1 },
	COMP_M_PLUS_1:  func(d, a, m int) int { return m + 1 },
	COMP_D_MINUS_1: func(d, a, m int) int { return d - 1 },
	COMP_A_MINUS_1: func(d, a, m int) int { return a - 1 },
	COMP_M_MINUS_1: func(d, a, m int) int { return m - 1 },
	COMP_D_PLUS_A:  func(d, a, m int) int { return d + a },
	COMP_D_PLUS_M:  func(d, a, m int) int { return d + m },
	COMP_D_MINUS_A: func(d, a, m int) int { return d - a },
	COMP_D_MINUS_M: func(d, a, m int) int { return d - m },
	COMP_A_MINUS_D: func(d, a, m int) int { return a - d },
	COMP_M_MINUS_D: func(d, a, m int) int { return m - d },
	COMP_D_AND_A:   func(d, a, m int) int { return d & a },
	COMP_D_AND_M:   func(d, a, m int) int { return d & m },
	COMP_D_OR_A:    func(d, a, m int) int { return d | a },
	COMP_D_OR_M:    func(d, a, m int) int { return d | m },
}

// Alu evaluates a computation over D, A and M. Operands are treated as
// 16-bit two's-complement values and the result wraps modulo 2^16.
func Alu(comp CodeComp, d, a, m uint16) (result uint16, err error) {
	if comp < 0 || comp > COMP_MASK || aluTable[comp] == nil {
		err = ErrOpcodeComp
		return
	}

	out := aluTable[comp](int(int16(d)), int(int16(a)), int(int16(m)))
	result = uint16(out)

	return
}
