// Package chip8 implements a CHIP-8 virtual machine core.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for
// simple games on early microcomputers. The machine has:
//   - 4KB of memory, programs are loaded at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - a 16-bit index register I
//   - a call stack of StackSize return addresses
//   - delay and sound timers, decremented by the host at 60 Hz
//   - a 16 key hexadecimal keypad
//   - a 64x32 monochrome display
//
// # Execution
//
// The host creates a Processor, loads a program image and calls Step once
// per instruction. After each step it can read the Screen and DrawFlag to
// render the display and update the keypad state with SetKey:
//
//	p := chip8.New()
//	p.Load(rom)
//	for {
//		if err := p.Step(); err != nil {
//			return fmt.Errorf("running program: %w", err)
//		}
//		if p.DrawFlag() {
//			render(p.Screen())
//			p.ClearDrawFlag()
//		}
//	}
//
// # Instruction Set
//
// All instructions are 2 bytes wide and stored big-endian. The instruction
// table is indexed by the leading nibble of the word, families with sub
// opcodes are disambiguated by a mask over the trailing nibbles. Words that
// match no table entry fail with ErrUnsupportedInstruction.
//
// Where interpreters disagree on semantics, the original COSMAC VIP
// behavior is implemented: shifts read Vy, FX55 and FX65 increment I.
// Drawing wraps the sprite start position and clips the sprite at the
// screen edges.
package chip8
