// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // ROM file to load
	Output string // output file, stdout if empty
	Batch  string // batch process files matching pattern (e.g. *.ch8)
}

// Flags contains behavior options.
type Flags struct {
	Debug bool // enable debug logging
	Quiet bool // only log errors
	Trace bool // log every executed instruction
}

// RunFlags contains options for executing a ROM.
type RunFlags struct {
	Cycles               int    // maximum number of instructions, 0 runs until halt
	InstructionsPerFrame int    // instructions per 60 Hz timer frame
	Seed                 uint64 // random seed, 0 uses a random seed
	Keys                 string // hexadecimal keys held down during the run
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Disasm        bool // write a listing instead of running the ROM
	Dump          bool // dump the processor state after the run
	NoHexComments bool // omit instruction bytes in listing comments
	NoOffsets     bool // omit addresses in listing comments
	ZeroBytes     bool // include trailing zero bytes in listings
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	RunFlags
	OutputFlags
}

// KeyList returns the keypad keys parsed from the Keys option.
// Invalid characters are ignored, the option is validated by the cli package.
func (p Program) KeyList() []uint8 {
	var keys []uint8
	for _, c := range p.Keys {
		switch {
		case c >= '0' && c <= '9':
			keys = append(keys, uint8(c-'0'))
		case c >= 'a' && c <= 'f':
			keys = append(keys, uint8(c-'a'+10))
		case c >= 'A' && c <= 'F':
			keys = append(keys, uint8(c-'A'+10))
		}
	}
	return keys
}
