package chip8

import (
	"fmt"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, the font is stored at FontStart
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64x32 pixels) and stack are maintained separately
// from the 4KB main memory address space.
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs are loaded
	// and begin execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// FontStart is the memory address of the built-in hexadecimal font.
	FontStart = 0x050

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, used as carry, borrow and collision flag.
	FlagRegister = 0xF

	// StackSize is the maximum call depth.
	StackSize = 12

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	// ScreenWidth is the display width in pixels.
	ScreenWidth = 64

	// ScreenHeight is the display height in pixels.
	ScreenHeight = 32
)

// Processor holds the complete state of a CHIP-8 virtual machine.
// It is not safe for concurrent use, hosts that run multiple machines
// need one Processor per machine.
type Processor struct {
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16
	sp        uint8
	memory    [MemorySize]byte
	stack     [StackSize]uint16

	delayTimer uint8
	soundTimer uint8

	keypad   [KeyCount]bool
	screen   Screen
	drawFlag bool

	random RandomSource
}

// Option configures a Processor.
type Option func(*Processor)

// WithRandom sets the random source used by the rnd instruction.
func WithRandom(random RandomSource) Option {
	return func(p *Processor) {
		p.random = random
	}
}

// New returns a processor in reset state, with the font loaded and the
// program counter set to ProgramStart.
func New(options ...Option) *Processor {
	p := &Processor{
		random: globalRandom{},
	}
	for _, option := range options {
		option(p)
	}
	p.Reset()
	return p
}

// Reset clears all state and reloads the font. The random source is kept.
func (p *Processor) Reset() {
	random := p.random
	*p = Processor{
		pc:     ProgramStart,
		random: random,
	}
	copy(p.memory[FontStart:], fontSet[:])
}

// Load copies a program image into memory starting at ProgramStart.
// Data that does not fit into memory is ignored, the number of copied
// bytes is returned.
func (p *Processor) Load(data []byte) int {
	return copy(p.memory[ProgramStart:], data)
}

// Step executes a single instruction. On failure a *StepError is returned
// and the program counter is not advanced.
func (p *Processor) Step() error {
	address := p.pc
	op, err := p.OpcodeAt(address)
	if err != nil {
		return &StepError{Address: address, Err: err}
	}

	next, err := p.execute(op)
	if err != nil {
		return &StepError{Address: address, Opcode: op, Fetched: true, Err: err}
	}

	p.pc = next
	return nil
}

// OpcodeAt fetches the big-endian instruction word at the given address.
func (p *Processor) OpcodeAt(address uint16) (Opcode, error) {
	if int(address)+opcodeSize > MemorySize {
		return 0, fmt.Errorf("reading opcode at address $%04X: %w", address, ErrOutOfBounds)
	}
	high := uint16(p.memory[address])
	low := uint16(p.memory[address+1])
	return Opcode(high<<8 | low), nil
}

// ReadMemory returns the byte at the given address.
func (p *Processor) ReadMemory(address uint16) (byte, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("reading address $%04X: %w", address, ErrOutOfBounds)
	}
	return p.memory[address], nil
}

// WriteMemory sets the byte at the given address.
func (p *Processor) WriteMemory(address uint16, value byte) error {
	if int(address) >= MemorySize {
		return fmt.Errorf("writing address $%04X: %w", address, ErrOutOfBounds)
	}
	p.memory[address] = value
	return nil
}

// Register returns the value of register Vx. The index is masked to 0-F.
func (p *Processor) Register(x uint8) uint8 {
	return p.registers[x&0x0F]
}

// SetRegister sets the value of register Vx. The index is masked to 0-F.
func (p *Processor) SetRegister(x, value uint8) {
	p.registers[x&0x0F] = value
}

// Index returns the index register I.
func (p *Processor) Index() uint16 {
	return p.index
}

// SetIndex sets the index register I.
func (p *Processor) SetIndex(value uint16) {
	p.index = value
}

// ProgramCounter returns the address of the next instruction to execute.
func (p *Processor) ProgramCounter() uint16 {
	return p.pc
}

// SetProgramCounter sets the address of the next instruction to execute.
func (p *Processor) SetProgramCounter(address uint16) {
	p.pc = address
}

// StackDepth returns the number of active subroutine calls.
func (p *Processor) StackDepth() int {
	return int(p.sp)
}

// DelayTimer returns the delay timer value.
func (p *Processor) DelayTimer() uint8 {
	return p.delayTimer
}

// SetDelayTimer sets the delay timer value.
func (p *Processor) SetDelayTimer(value uint8) {
	p.delayTimer = value
}

// SoundTimer returns the sound timer value. A host should play a tone
// while it is not zero.
func (p *Processor) SoundTimer() uint8 {
	return p.soundTimer
}

// SetSoundTimer sets the sound timer value.
func (p *Processor) SetSoundTimer(value uint8) {
	p.soundTimer = value
}

// DecrementTimers counts both timers down by one if they are not zero.
// The host calls it at a rate of 60 Hz, independent of instruction throughput.
func (p *Processor) DecrementTimers() {
	if p.delayTimer > 0 {
		p.delayTimer--
	}
	if p.soundTimer > 0 {
		p.soundTimer--
	}
}

// SetKey sets the pressed state of a keypad key. The key is masked to 0-F.
func (p *Processor) SetKey(key uint8, down bool) {
	p.keypad[key&0x0F] = down
}

// KeyDown returns whether the given keypad key is pressed.
func (p *Processor) KeyDown(key uint8) bool {
	return p.keypad[key&0x0F]
}

// Screen returns the framebuffer.
func (p *Processor) Screen() *Screen {
	return &p.screen
}

// DrawFlag returns whether the framebuffer changed since the last ClearDrawFlag call.
func (p *Processor) DrawFlag() bool {
	return p.drawFlag
}

// ClearDrawFlag is called by the host after it rendered the framebuffer.
func (p *Processor) ClearDrawFlag() {
	p.drawFlag = false
}

// State is a read-only copy of the processor registers for debugging output.
type State struct {
	Registers      [RegisterCount]uint8
	Index          uint16
	ProgramCounter uint16
	Stack          []uint16
	DelayTimer     uint8
	SoundTimer     uint8
	DrawFlag       bool
}

// State returns a copy of the current register state.
func (p *Processor) State() State {
	stack := make([]uint16, p.sp)
	copy(stack, p.stack[:p.sp])

	return State{
		Registers:      p.registers,
		Index:          p.index,
		ProgramCounter: p.pc,
		Stack:          stack,
		DelayTimer:     p.delayTimer,
		SoundTimer:     p.soundTimer,
		DrawFlag:       p.drawFlag,
	}
}
