package chip8

import "fmt"

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Opcode is a raw 16-bit CHIP-8 instruction word.
// All field accessors are pure projections, every 16-bit value decodes.
type Opcode uint16

// Nibbles returns the four hexadecimal digits of the opcode,
// most significant first.
func (o Opcode) Nibbles() [4]uint8 {
	return [4]uint8{
		uint8((o & 0xF000) >> 12),
		uint8((o & 0x0F00) >> 8),
		uint8((o & 0x00F0) >> 4),
		uint8(o & 0x000F),
	}
}

// Kind returns the leading nibble that selects the instruction family.
func (o Opcode) Kind() uint8 {
	return uint8((o & 0xF000) >> 12)
}

// NNN returns the 12-bit address operand.
func (o Opcode) NNN() uint16 {
	return uint16(o & 0x0FFF)
}

// NN returns the 8-bit immediate operand.
func (o Opcode) NN() uint8 {
	return uint8(o & 0x00FF)
}

// N returns the 4-bit immediate operand.
func (o Opcode) N() uint8 {
	return uint8(o & 0x000F)
}

// X returns the first register index.
func (o Opcode) X() uint8 {
	return uint8((o & 0x0F00) >> 8)
}

// Y returns the second register index.
func (o Opcode) Y() uint8 {
	return uint8((o & 0x00F0) >> 4)
}

func (o Opcode) String() string {
	return fmt.Sprintf("$%04X", uint16(o))
}
