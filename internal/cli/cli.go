// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/options"
)

const (
	defaultCycles               = 100000
	defaultInstructionsPerFrame = 10
)

// ParseFlags parses command line flags and returns program and listing options
func ParseFlags() (options.Program, disasm.Options, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	listingOptions := readListingOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, disasm.Options{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasm.Options{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, disasm.Options{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	return opts, listingOptions(), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d, must not be negative", opts.Cycles)
	}
	if opts.InstructionsPerFrame <= 0 {
		return fmt.Errorf("invalid instructions per frame %d, must be positive", opts.InstructionsPerFrame)
	}

	opts.Keys = strings.ToUpper(opts.Keys)
	for _, c := range opts.Keys {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			return fmt.Errorf("invalid key '%c', valid keys are 0-9 and A-F", c)
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.ch8")
	flags.IntVar(&opts.Cycles, "cycles", defaultCycles, "maximum number of instructions to execute, 0 runs until the program halts")
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", defaultInstructionsPerFrame, "instructions to execute per 60 Hz timer frame")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, 0 uses a random seed")
	flags.StringVar(&opts.Keys, "keys", "", "hexadecimal keypad keys to hold down during the run, for example 5A")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Disasm, "disasm", false, "output a disassembly listing instead of running the ROM")
	flags.BoolVar(&opts.Dump, "dump", false, "dump the processor state after the run")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// readListingOptionFlags registers the listing flags and returns a function
// that creates the listing options after the flags have been parsed.
func readListingOptionFlags(flags *flag.FlagSet, opts *options.Program) func() disasm.Options {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM")

	return func() disasm.Options {
		// Apply inverse logic for hex comments and offsets
		return disasm.Options{
			HexComments:    !opts.NoHexComments,
			OffsetComments: !opts.NoOffsets,
			ZeroBytes:      opts.ZeroBytes,
		}
	}
}
