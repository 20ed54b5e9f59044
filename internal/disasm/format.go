// Package disasm formats CHIP-8 instruction words as assembly mnemonics
// and writes listings of program images.
package disasm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Format returns the assembly representation of an instruction word.
// Words that are not part of the instruction set are returned as .word directive.
func Format(op chip8.Opcode) string {
	ins, _, ok := chip8.Lookup(op)
	if !ok {
		return fmt.Sprintf(".word $%04X", uint16(op))
	}

	if params := formatInstruction(ins, op); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// formatInstruction formats the parameters of a CHIP-8 instruction.
func formatInstruction(ins *chip8.Instruction, op chip8.Opcode) string {
	switch ins {
	case chip8.Cls, chip8.Ret:
		return "" // No parameters
	case chip8.Jp:
		return formatJumpInstruction(op)
	case chip8.Call:
		return fmt.Sprintf("$%03X", op.NNN())
	case chip8.Se, chip8.Sne:
		return formatCompareInstruction(op)
	case chip8.Ld:
		return formatLoadInstruction(op)
	case chip8.Add:
		return formatAddInstruction(op)
	case chip8.Or, chip8.And, chip8.Xor, chip8.Sub, chip8.Subn, chip8.Shr, chip8.Shl:
		return formatBinaryInstruction(op)
	case chip8.Rnd:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	case chip8.Drw:
		return fmt.Sprintf("V%X, V%X, $%X", op.X(), op.Y(), op.N())
	case chip8.Skp, chip8.Sknp:
		return fmt.Sprintf("V%X", op.X())
	}
	return ""
}

// formatJumpInstruction formats jump instructions (JP addr, JP V0+addr).
func formatJumpInstruction(op chip8.Opcode) string {
	if op.Kind() == 0xB {
		return fmt.Sprintf("V0, $%03X", op.NNN())
	}
	return fmt.Sprintf("$%03X", op.NNN())
}

// formatCompareInstruction formats comparison instructions (SE, SNE).
func formatCompareInstruction(op chip8.Opcode) string {
	switch op.Kind() {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	default:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	}
}

// formatLoadInstruction formats all variants of the load instruction.
func formatLoadInstruction(op chip8.Opcode) string {
	x := op.X()
	switch op.Kind() {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", x, op.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, op.Y())
	case 0xA:
		return fmt.Sprintf("I, $%03X", op.NNN())
	}

	switch op.NN() {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

// formatAddInstruction formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAddInstruction(op chip8.Opcode) string {
	switch op.Kind() {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	default:
		return fmt.Sprintf("I, V%X", op.X())
	}
}

// formatBinaryInstruction formats register to register instructions.
// Shifts list Vy as well, since it is the source of the shifted value.
func formatBinaryInstruction(op chip8.Opcode) string {
	return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
}
