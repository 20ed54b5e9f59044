package chip8

import "fmt"

// Instruction contains information about a CHIP-8 instruction mnemonic.
// Several opcodes share an instruction, for example all ld variants.
type Instruction struct {
	Name string
}

// CHIP-8 instructions.
var (
	Cls  = &Instruction{Name: "cls"}
	Ret  = &Instruction{Name: "ret"}
	Jp   = &Instruction{Name: "jp"}
	Call = &Instruction{Name: "call"}
	Se   = &Instruction{Name: "se"}
	Sne  = &Instruction{Name: "sne"}
	Ld   = &Instruction{Name: "ld"}
	Add  = &Instruction{Name: "add"}
	Or   = &Instruction{Name: "or"}
	And  = &Instruction{Name: "and"}
	Xor  = &Instruction{Name: "xor"}
	Sub  = &Instruction{Name: "sub"}
	Shr  = &Instruction{Name: "shr"}
	Subn = &Instruction{Name: "subn"}
	Shl  = &Instruction{Name: "shl"}
	Rnd  = &Instruction{Name: "rnd"}
	Drw  = &Instruction{Name: "drw"}
	Skp  = &Instruction{Name: "skp"}
	Sknp = &Instruction{Name: "sknp"}
)

// OpcodeInfo describes how an instruction word is matched:
// a word matches if word & Mask == Value.
type OpcodeInfo struct {
	Mask  uint16
	Value uint16
}

// handler executes an opcode and returns the next program counter.
type handler func(p *Processor, op Opcode) (uint16, error)

type opcodeEntry struct {
	Info        OpcodeInfo
	Instruction *Instruction
	execute     handler
}

// opcodes maps the leading nibble of an instruction word to all opcodes of that family.
var opcodes = [16][]opcodeEntry{
	0x0: {
		{OpcodeInfo{0xFFFF, 0x00E0}, Cls, opCls},
		{OpcodeInfo{0xFFFF, 0x00EE}, Ret, opRet},
	},
	0x1: {{OpcodeInfo{0xF000, 0x1000}, Jp, opJp}},
	0x2: {{OpcodeInfo{0xF000, 0x2000}, Call, opCall}},
	0x3: {{OpcodeInfo{0xF000, 0x3000}, Se, opSeImmediate}},
	0x4: {{OpcodeInfo{0xF000, 0x4000}, Sne, opSneImmediate}},
	0x5: {{OpcodeInfo{0xF00F, 0x5000}, Se, opSeRegister}},
	0x6: {{OpcodeInfo{0xF000, 0x6000}, Ld, opLdImmediate}},
	0x7: {{OpcodeInfo{0xF000, 0x7000}, Add, opAddImmediate}},
	0x8: {
		{OpcodeInfo{0xF00F, 0x8000}, Ld, opLdRegister},
		{OpcodeInfo{0xF00F, 0x8001}, Or, opOr},
		{OpcodeInfo{0xF00F, 0x8002}, And, opAnd},
		{OpcodeInfo{0xF00F, 0x8003}, Xor, opXor},
		{OpcodeInfo{0xF00F, 0x8004}, Add, opAddRegister},
		{OpcodeInfo{0xF00F, 0x8005}, Sub, opSub},
		{OpcodeInfo{0xF00F, 0x8006}, Shr, opShr},
		{OpcodeInfo{0xF00F, 0x8007}, Subn, opSubn},
		{OpcodeInfo{0xF00F, 0x800E}, Shl, opShl},
	},
	0x9: {{OpcodeInfo{0xF00F, 0x9000}, Sne, opSneRegister}},
	0xA: {{OpcodeInfo{0xF000, 0xA000}, Ld, opLdIndex}},
	0xB: {{OpcodeInfo{0xF000, 0xB000}, Jp, opJpOffset}},
	0xC: {{OpcodeInfo{0xF000, 0xC000}, Rnd, opRnd}},
	0xD: {
		// DXY0 draws 16x16 sprites in extended instruction sets only
		{OpcodeInfo{0xF00F, 0xD000}, nil, nil},
		{OpcodeInfo{0xF000, 0xD000}, Drw, opDrw},
	},
	0xE: {
		{OpcodeInfo{0xF0FF, 0xE09E}, Skp, opSkp},
		{OpcodeInfo{0xF0FF, 0xE0A1}, Sknp, opSknp},
	},
	0xF: {
		{OpcodeInfo{0xF0FF, 0xF007}, Ld, opLdDelayTimer},
		{OpcodeInfo{0xF0FF, 0xF00A}, Ld, opLdKey},
		{OpcodeInfo{0xF0FF, 0xF015}, Ld, opSetDelayTimer},
		{OpcodeInfo{0xF0FF, 0xF018}, Ld, opSetSoundTimer},
		{OpcodeInfo{0xF0FF, 0xF01E}, Add, opAddIndex},
		{OpcodeInfo{0xF0FF, 0xF029}, Ld, opLdFont},
		{OpcodeInfo{0xF0FF, 0xF033}, Ld, opLdBCD},
		{OpcodeInfo{0xF0FF, 0xF055}, Ld, opStoreRegisters},
		{OpcodeInfo{0xF0FF, 0xF065}, Ld, opLoadRegisters},
	},
}

// lookup returns the opcode table entry matching the instruction word.
func lookup(op Opcode) (opcodeEntry, bool) {
	w := uint16(op)
	for _, entry := range opcodes[op.Kind()] {
		if entry.Info.Mask&w != entry.Info.Value {
			continue
		}
		if entry.execute == nil {
			return opcodeEntry{}, false
		}
		return entry, true
	}
	return opcodeEntry{}, false
}

// Lookup returns the instruction and matching info of an instruction word.
// It returns false for words that are not part of the instruction set.
func Lookup(op Opcode) (*Instruction, OpcodeInfo, bool) {
	entry, ok := lookup(op)
	if !ok {
		return nil, OpcodeInfo{}, false
	}
	return entry.Instruction, entry.Info, true
}

// execute decodes the opcode and runs its handler.
func (p *Processor) execute(op Opcode) (uint16, error) {
	entry, ok := lookup(op)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedInstruction, op)
	}
	return entry.execute(p, op)
}
