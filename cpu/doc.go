// Package cpu implements the processor and assembler for the Hack computer.
//
// The CPU consists of a program counter (PC), two 16-bit registers (A and D),
// an ALU with a fixed 28-entry computation table, and 32K words of data memory
// addressed by A. There are two instruction classes: address-load (@value)
// and compute (dest=comp;jump).
//
// The assembler translates Hack assembly text into a Program, resolving labels
// and allocating variables before any instruction is encoded. Programs can also
// be loaded from, and written to, the textual binary format (one 16 character
// line of '0' and '1' per instruction word).
package cpu
