package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newProcessor(t *testing.T, words ...uint16) *chip8.Processor {
	t.Helper()

	data := make([]byte, 0, len(words)*2)
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	proc := chip8.New(chip8.WithRandom(chip8.NewSeededRandom(1)))
	proc.Load(data)
	return proc
}

func TestRun_Halt(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x6005, // ld V0, $05
		0xF029, // ld F, V0
		0xD015, // drw V0, V1, $5
		0x1206, // jp $206
	)

	r := New(logger, proc, Config{InstructionsPerFrame: 2})
	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Halted)
	assert.Equal(t, 4, result.Cycles)
	assert.Equal(t, 2, result.Frames)
	assert.Equal(t, 1, result.Redraws)
	assert.Equal(t, proc.Screen().Checksum(), result.Checksum)
	assert.False(t, proc.DrawFlag())
	assert.Equal(t, uint16(0x206), proc.ProgramCounter())
}

func TestRun_CycleLimit(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x7001, // add V0, $01
		0x1200, // jp $200
	)

	r := New(logger, proc, Config{Cycles: 25, InstructionsPerFrame: 10})
	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.False(t, result.Halted)
	assert.Equal(t, 25, result.Cycles)
	assert.Equal(t, 2, result.Frames)
	assert.Equal(t, uint8(13), proc.Register(0))
}

func TestRun_DecrementsTimersPerFrame(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x603C, // ld V0, $3C
		0xF015, // ld DT, V0
		0xF107, // ld V1, DT
		0x1204, // jp $204
	)

	r := New(logger, proc, Config{Cycles: 2 + 10*5, InstructionsPerFrame: 10})
	_, err := r.Run(context.Background())
	assert.NoError(t, err)
	// 5 complete frames, the partial sixth one does not tick
	assert.Equal(t, uint8(60-5), proc.DelayTimer())
	assert.Equal(t, uint8(60-5), proc.Register(1))
}

func TestRun_PartialFrameKeepsTimers(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x603C, // ld V0, $3C
		0xF015, // ld DT, V0
		0xF018, // ld ST, V0
		0x1206, // jp $206
	)

	r := New(logger, proc, Config{Cycles: 3, InstructionsPerFrame: 10})
	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Cycles)
	assert.Equal(t, 0, result.Frames)
	assert.Equal(t, uint8(60), proc.DelayTimer())
	assert.Equal(t, uint8(60), proc.SoundTimer())

	r = New(logger, proc, Config{InstructionsPerFrame: 10})
	result, err = r.Run(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Halted)
	assert.Equal(t, 0, result.Frames)
	assert.Equal(t, uint8(60), proc.DelayTimer())
}

func TestRun_UnchangedScreenIsNoRedraw(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x00E0, // cls
		0x1200, // jp $200
	)

	r := New(logger, proc, Config{Cycles: 100, InstructionsPerFrame: 10})
	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Frames)
	assert.Equal(t, 0, result.Redraws)
}

func TestRun_StepError(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x6001, // ld V0, $01
		0x00EE, // ret without call
	)

	r := New(logger, proc, Config{InstructionsPerFrame: 10})
	result, err := r.Run(context.Background())
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Equal(t, 1, result.Cycles)

	var stepErr *chip8.StepError
	assert.True(t, errors.As(err, &stepErr))
	assert.Equal(t, uint16(0x202), stepErr.Address)
}

func TestRun_Cancelled(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t, 0x1202, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(logger, proc, Config{})
	result, err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, result.Cycles)
}

func TestRun_Trace(t *testing.T) {
	logger := log.NewTestLogger(t)
	proc := newProcessor(t,
		0x6099, // ld V0, $99
		0x1202, // jp $202
	)

	r := New(logger, proc, Config{InstructionsPerFrame: 10, Trace: true})
	result, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.True(t, result.Halted)
	assert.Equal(t, 2, result.Cycles)
	assert.Equal(t, uint8(0x99), proc.Register(0))
}
