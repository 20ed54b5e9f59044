package chip8

import "fmt"

// next returns the address of the instruction following the current one.
func (p *Processor) next() uint16 {
	return p.pc + opcodeSize
}

// skipIf returns the address after the next instruction if the condition holds.
func (p *Processor) skipIf(condition bool) uint16 {
	if condition {
		return p.pc + 2*opcodeSize
	}
	return p.pc + opcodeSize
}

// checkRange verifies that size bytes starting at address are addressable.
func checkRange(address uint16, size int) error {
	if int(address)+size > MemorySize {
		return fmt.Errorf("accessing %d bytes at address $%04X: %w", size, address, ErrOutOfBounds)
	}
	return nil
}

// 00E0: clear the screen.
func opCls(p *Processor, _ Opcode) (uint16, error) {
	p.screen.Clear()
	p.drawFlag = true
	return p.next(), nil
}

// 00EE: return from a subroutine.
func opRet(p *Processor, _ Opcode) (uint16, error) {
	if p.sp == 0 {
		return 0, ErrStackUnderflow
	}
	p.sp--
	return p.stack[p.sp] + opcodeSize, nil
}

// 1NNN: jump to address NNN.
func opJp(_ *Processor, op Opcode) (uint16, error) {
	return op.NNN(), nil
}

// 2NNN: call the subroutine at address NNN.
func opCall(p *Processor, op Opcode) (uint16, error) {
	if int(p.sp) >= StackSize {
		return 0, fmt.Errorf("calling $%03X with depth %d: %w", op.NNN(), p.sp, ErrStackOverflow)
	}
	p.stack[p.sp] = p.pc
	p.sp++
	return op.NNN(), nil
}

// 3XNN: skip the next instruction if Vx == NN.
func opSeImmediate(p *Processor, op Opcode) (uint16, error) {
	return p.skipIf(p.registers[op.X()] == op.NN()), nil
}

// 4XNN: skip the next instruction if Vx != NN.
func opSneImmediate(p *Processor, op Opcode) (uint16, error) {
	return p.skipIf(p.registers[op.X()] != op.NN()), nil
}

// 5XY0: skip the next instruction if Vx == Vy.
func opSeRegister(p *Processor, op Opcode) (uint16, error) {
	return p.skipIf(p.registers[op.X()] == p.registers[op.Y()]), nil
}

// 6XNN: Vx = NN.
func opLdImmediate(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] = op.NN()
	return p.next(), nil
}

// 7XNN: Vx += NN, VF is not affected.
func opAddImmediate(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] += op.NN()
	return p.next(), nil
}

// 8XY0: Vx = Vy.
func opLdRegister(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] = p.registers[op.Y()]
	return p.next(), nil
}

// 8XY1: Vx |= Vy.
func opOr(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] |= p.registers[op.Y()]
	return p.next(), nil
}

// 8XY2: Vx &= Vy.
func opAnd(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] &= p.registers[op.Y()]
	return p.next(), nil
}

// 8XY3: Vx ^= Vy.
func opXor(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] ^= p.registers[op.Y()]
	return p.next(), nil
}

// 8XY4: Vx += Vy, VF = carry.
func opAddRegister(p *Processor, op Opcode) (uint16, error) {
	sum := uint16(p.registers[op.X()]) + uint16(p.registers[op.Y()])
	p.registers[op.X()] = uint8(sum)
	p.registers[FlagRegister] = boolToFlag(sum > 0xFF)
	return p.next(), nil
}

// 8XY5: Vx -= Vy, VF = borrow.
func opSub(p *Processor, op Opcode) (uint16, error) {
	vx, vy := p.registers[op.X()], p.registers[op.Y()]
	p.registers[op.X()] = vx - vy
	p.registers[FlagRegister] = boolToFlag(vy > vx)
	return p.next(), nil
}

// 8XY6: Vx = Vy >> 1, VF = bit shifted out.
func opShr(p *Processor, op Opcode) (uint16, error) {
	vy := p.registers[op.Y()]
	p.registers[op.X()] = vy >> 1
	p.registers[FlagRegister] = vy & 0x01
	return p.next(), nil
}

// 8XY7: Vx = Vy - Vx, VF = borrow.
func opSubn(p *Processor, op Opcode) (uint16, error) {
	vx, vy := p.registers[op.X()], p.registers[op.Y()]
	p.registers[op.X()] = vy - vx
	p.registers[FlagRegister] = boolToFlag(vx > vy)
	return p.next(), nil
}

// 8XYE: Vx = Vy << 1, VF = bit shifted out.
func opShl(p *Processor, op Opcode) (uint16, error) {
	vy := p.registers[op.Y()]
	p.registers[op.X()] = vy << 1
	p.registers[FlagRegister] = vy >> 7
	return p.next(), nil
}

// 9XY0: skip the next instruction if Vx != Vy.
func opSneRegister(p *Processor, op Opcode) (uint16, error) {
	return p.skipIf(p.registers[op.X()] != p.registers[op.Y()]), nil
}

// ANNN: I = NNN.
func opLdIndex(p *Processor, op Opcode) (uint16, error) {
	p.index = op.NNN()
	return p.next(), nil
}

// BNNN: jump to address NNN + V0.
func opJpOffset(p *Processor, op Opcode) (uint16, error) {
	return op.NNN() + uint16(p.registers[0]), nil
}

// CXNN: Vx = random byte & NN.
func opRnd(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] = uint8(p.random.Uint32()) & op.NN()
	return p.next(), nil
}

// DXYN: draw an 8xN sprite from memory at I at position (Vx, Vy).
// The start position wraps around the screen, the sprite itself is clipped
// at the right and bottom edges. VF is set if a set pixel was erased.
func opDrw(p *Processor, op Opcode) (uint16, error) {
	height := int(op.N())
	if err := checkRange(p.index, height); err != nil {
		return 0, fmt.Errorf("reading sprite: %w", err)
	}

	x := p.registers[op.X()] % ScreenWidth
	y := int(p.registers[op.Y()] % ScreenHeight)

	var collision bool
	for row := range height {
		line := y + row
		if line >= ScreenHeight {
			break
		}

		bits := spriteRow(p.memory[int(p.index)+row], x)
		before := p.screen[line]
		after := before ^ bits
		if before|bits != after {
			collision = true
		}
		p.screen[line] = after
	}

	p.registers[FlagRegister] = boolToFlag(collision)
	p.drawFlag = true
	return p.next(), nil
}

// EX9E: skip the next instruction if the key in Vx is pressed.
func opSkp(p *Processor, op Opcode) (uint16, error) {
	return p.skipIf(p.KeyDown(p.registers[op.X()])), nil
}

// EXA1: skip the next instruction if the key in Vx is not pressed.
func opSknp(p *Processor, op Opcode) (uint16, error) {
	return p.skipIf(!p.KeyDown(p.registers[op.X()])), nil
}

// FX07: Vx = delay timer.
func opLdDelayTimer(p *Processor, op Opcode) (uint16, error) {
	p.registers[op.X()] = p.delayTimer
	return p.next(), nil
}

// FX0A: wait for a key press and store the key in Vx. While no key is
// pressed the program counter stays on this instruction.
func opLdKey(p *Processor, op Opcode) (uint16, error) {
	for key, down := range p.keypad {
		if down {
			p.registers[op.X()] = uint8(key)
			return p.next(), nil
		}
	}
	return p.pc, nil
}

// FX15: delay timer = Vx.
func opSetDelayTimer(p *Processor, op Opcode) (uint16, error) {
	p.delayTimer = p.registers[op.X()]
	return p.next(), nil
}

// FX18: sound timer = Vx.
func opSetSoundTimer(p *Processor, op Opcode) (uint16, error) {
	p.soundTimer = p.registers[op.X()]
	return p.next(), nil
}

// FX1E: I += Vx.
func opAddIndex(p *Processor, op Opcode) (uint16, error) {
	p.index += uint16(p.registers[op.X()])
	return p.next(), nil
}

// FX29: I = address of the font sprite for the digit in Vx.
func opLdFont(p *Processor, op Opcode) (uint16, error) {
	p.index = FontAddress(p.registers[op.X()])
	return p.next(), nil
}

// FX33: store the binary-coded decimal of Vx at I, I+1 and I+2.
func opLdBCD(p *Processor, op Opcode) (uint16, error) {
	if err := checkRange(p.index, 3); err != nil {
		return 0, fmt.Errorf("storing BCD: %w", err)
	}
	value := p.registers[op.X()]
	p.memory[p.index] = value / 100
	p.memory[p.index+1] = value / 10 % 10
	p.memory[p.index+2] = value % 10
	return p.next(), nil
}

// FX55: store V0 to Vx in memory starting at I, I is incremented by x+1.
func opStoreRegisters(p *Processor, op Opcode) (uint16, error) {
	count := int(op.X()) + 1
	if err := checkRange(p.index, count); err != nil {
		return 0, fmt.Errorf("storing registers: %w", err)
	}
	copy(p.memory[p.index:], p.registers[:count])
	p.index += uint16(count)
	return p.next(), nil
}

// FX65: load V0 to Vx from memory starting at I, I is incremented by x+1.
func opLoadRegisters(p *Processor, op Opcode) (uint16, error) {
	count := int(op.X()) + 1
	if err := checkRange(p.index, count); err != nil {
		return 0, fmt.Errorf("loading registers: %w", err)
	}
	copy(p.registers[:count], p.memory[p.index:])
	p.index += uint16(count)
	return p.next(), nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
