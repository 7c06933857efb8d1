package cpu

const (
	RAM_SIZE  = 32768 // Words of data memory.
	RAM_LAST  = RAM_SIZE - 1
	SCREEN    = 16384 // Base of the screen map. Ordinary memory here.
	KBD       = 24576 // Keyboard register. Ordinary memory here.
	VAR_BASE  = 16    // First address handed out to assembler variables.
	VALUE_MAX = 0x7fff
)

// Predefined assembler symbols.
var sysSymbol = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"R0":     0,
	"R1":     1,
	"R2":     2,
	"R3":     3,
	"R4":     4,
	"R5":     5,
	"R6":     6,
	"R7":     7,
	"R8":     8,
	"R9":     9,
	"R10":    10,
	"R11":    11,
	"R12":    12,
	"R13":    13,
	"R14":    14,
	"R15":    15,
	"SCREEN": SCREEN,
	"KBD":    KBD,
}
