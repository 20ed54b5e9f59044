// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/k0kubun/pp/v3"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// glyphs used to render the screen
const (
	terminalPixelOn  = "█"
	terminalPixelOff = " "
	filePixelOn      = "#"
	filePixelOff     = "."
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, listingOptions disasm.Options) error {
	data, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	writer, isTerminal, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if writer != os.Stdout {
			_ = writer.Close()
		}
	}()

	if opts.Disasm {
		if err := disasm.New(writer, listingOptions).Write(data); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	return runROM(ctx, logger, opts, data, writer, isTerminal)
}

func runROM(ctx context.Context, logger *log.Logger, opts options.Program,
	data []byte, writer io.Writer, isTerminal bool) error {

	var processorOptions []chip8.Option
	if opts.Seed != 0 {
		processorOptions = append(processorOptions, chip8.WithRandom(chip8.NewSeededRandom(opts.Seed)))
	}
	proc := chip8.New(processorOptions...)

	if loaded := proc.Load(data); loaded < len(data) {
		logger.Warn("ROM exceeds program memory and was truncated",
			log.String("file", opts.Input),
			log.String("size", strconv.Itoa(len(data))),
			log.String("loaded", strconv.Itoa(loaded)))
	}
	for _, key := range opts.KeyList() {
		proc.SetKey(key, true)
	}

	r := runner.New(logger, proc, runner.Config{
		Cycles:               opts.Cycles,
		InstructionsPerFrame: opts.InstructionsPerFrame,
		Trace:                opts.Trace,
	})
	result, err := r.Run(ctx)
	if err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}

	logger.Info("Run finished",
		log.String("file", opts.Input),
		log.String("cycles", strconv.Itoa(result.Cycles)),
		log.String("frames", strconv.Itoa(result.Frames)),
		log.String("redraws", strconv.Itoa(result.Redraws)),
		log.String("checksum", fmt.Sprintf("%016x", result.Checksum)))

	on, off := filePixelOn, filePixelOff
	if isTerminal {
		on, off = terminalPixelOn, terminalPixelOff
	}
	if err := proc.Screen().Render(writer, on, off); err != nil {
		return fmt.Errorf("rendering screen: %w", err)
	}

	if opts.Dump {
		printer := pp.New()
		printer.SetOutput(writer)
		printer.SetColoringEnabled(isTerminal)
		if _, err := printer.Println(proc.State()); err != nil {
			return fmt.Errorf("dumping state: %w", err)
		}
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string, disassemble bool) string {
	ext := filepath.Ext(inputFile)
	if disassemble {
		return inputFile[:len(inputFile)-len(ext)] + ".asm"
	}
	return inputFile[:len(inputFile)-len(ext)] + ".txt"
}

// createWriter returns the output writer and whether it is an interactive terminal.
func createWriter(opts options.Program) (*os.File, bool, error) {
	if opts.Output == "" {
		return os.Stdout, term.IsTerminal(int(os.Stdout.Fd())), nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, false, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, false, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("chip8vm - CHIP-8 virtual machine",
		log.String("version", buildinfo.Version(version, commit, date)))
}
