// Package runner implements a headless host loop for the CHIP-8 processor.
package runner

import (
	"context"
	"fmt"
	"strconv"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Config controls the run loop.
// Timers tick once per complete frame only, a final frame that is cut short
// by the cycle limit or a halt leaves them untouched.
type Config struct {
	Cycles               int  // maximum number of instructions, 0 runs until halt or cancellation
	InstructionsPerFrame int  // instructions executed per 60 Hz timer frame
	Trace                bool // log every executed instruction at debug level
}

// Result contains statistics of a finished run.
type Result struct {
	Cycles   int    // executed instructions
	Frames   int    // complete timer frames
	Redraws  int    // frames that changed the screen content
	Halted   bool   // the program entered a jump to itself
	Checksum uint64 // checksum of the final screen
}

// Runner steps a processor in frames and owns the timer decrement.
type Runner struct {
	logger *log.Logger
	proc   *chip8.Processor
	cfg    Config

	lastChecksum uint64
}

// New returns a runner for the processor.
func New(logger *log.Logger, proc *chip8.Processor, cfg Config) *Runner {
	if cfg.InstructionsPerFrame <= 0 {
		cfg.InstructionsPerFrame = 10
	}
	return &Runner{
		logger:       logger,
		proc:         proc,
		cfg:          cfg,
		lastChecksum: proc.Screen().Checksum(),
	}
}

// Run executes the program until the cycle limit is reached, the program
// halts, the context is cancelled or an instruction fails.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	for r.cfg.Cycles == 0 || result.Cycles < r.cfg.Cycles {
		if err := ctx.Err(); err != nil {
			return r.finish(result), fmt.Errorf("running frame %d: %w", result.Frames, err)
		}

		halted, err := r.runFrame(&result)
		if err != nil {
			return r.finish(result), fmt.Errorf("after %d cycles: %w", result.Cycles, err)
		}
		if halted {
			result.Halted = true
			r.logger.Info("Program halted",
				log.String("address", fmt.Sprintf("$%04X", r.proc.ProgramCounter())),
				log.String("cycles", strconv.Itoa(result.Cycles)))
			break
		}
	}

	return r.finish(result), nil
}

// runFrame executes the instructions of one timer frame.
func (r *Runner) runFrame(result *Result) (bool, error) {
	for executed := 1; executed <= r.cfg.InstructionsPerFrame; executed++ {
		if r.cfg.Cycles > 0 && result.Cycles >= r.cfg.Cycles {
			r.endFrame(result, false)
			return false, nil
		}

		address := r.proc.ProgramCounter()
		op, err := r.proc.OpcodeAt(address)
		if err == nil && r.cfg.Trace {
			r.logger.Debug(disasm.Format(op),
				log.String("address", fmt.Sprintf("$%04X", address)),
				log.String("opcode", op.String()))
		}

		if err := r.proc.Step(); err != nil {
			return false, err
		}
		result.Cycles++

		if isSelfJump(op, address) {
			r.endFrame(result, executed == r.cfg.InstructionsPerFrame)
			return true, nil
		}
	}

	r.endFrame(result, true)
	return false, nil
}

// endFrame decrements the timers of a complete frame and tracks screen changes.
func (r *Runner) endFrame(result *Result, complete bool) {
	if complete {
		result.Frames++
		r.proc.DecrementTimers()
	}

	if !r.proc.DrawFlag() {
		return
	}
	r.proc.ClearDrawFlag()

	checksum := r.proc.Screen().Checksum()
	if checksum == r.lastChecksum {
		return
	}
	r.lastChecksum = checksum
	result.Redraws++

	r.logger.Debug("Screen updated",
		log.String("frame", strconv.Itoa(result.Frames)),
		log.String("checksum", fmt.Sprintf("%016x", checksum)))
}

func (r *Runner) finish(result Result) Result {
	result.Checksum = r.proc.Screen().Checksum()
	return result
}

// isSelfJump returns whether the instruction is a jump to its own address,
// the idiom used by CHIP-8 programs to stop execution.
func isSelfJump(op chip8.Opcode, address uint16) bool {
	return op.Kind() == 0x1 && op.NNN() == address
}
