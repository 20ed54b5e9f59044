package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

// setArgs replaces the process arguments for the duration of the test.
func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = args
}

func TestParseFlags_ListingOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want disasm.Options
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: disasm.Options{HexComments: true, OffsetComments: true},
		},
		{
			name: "nohexcomments flag",
			args: []string{"prog", "-nohexcomments", "test.ch8"},
			want: disasm.Options{OffsetComments: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"prog", "-nooffsets", "test.ch8"},
			want: disasm.Options{HexComments: true},
		},
		{
			name: "z flag",
			args: []string{"prog", "-z", "test.ch8"},
			want: disasm.Options{HexComments: true, OffsetComments: true, ZeroBytes: true},
		},
		{
			name: "all listing flags",
			args: []string{"prog", "-nohexcomments", "-nooffsets", "-z", "test.ch8"},
			want: disasm.Options{ZeroBytes: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_RunOptions(t *testing.T) {
	setArgs(t, "prog", "-cycles", "500", "-ipf", "20", "-seed", "7", "-keys", "5a", "-trace", "-dump", "game.ch8")

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, 500, opts.Cycles)
	assert.Equal(t, 20, opts.InstructionsPerFrame)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, "5A", opts.Keys)
	assert.Equal(t, []uint8{0x5, 0xA}, opts.KeyList())
	assert.True(t, opts.Trace)
	assert.True(t, opts.Dump)
	assert.False(t, opts.Disasm)
}

func TestParseFlags_Defaults(t *testing.T) {
	setArgs(t, "prog", "game.ch8")

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, defaultCycles, opts.Cycles)
	assert.Equal(t, defaultInstructionsPerFrame, opts.InstructionsPerFrame)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.Equal(t, "", opts.Output)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no file", []string{"prog"}, true},
		{"unknown flag", []string{"prog", "-unknown", "game.ch8"}, true},
		{"flag after file", []string{"prog", "game.ch8", "-q"}, true},
		{"negative cycles", []string{"prog", "-cycles", "-1", "game.ch8"}, false},
		{"zero instructions per frame", []string{"prog", "-ipf", "0", "game.ch8"}, false},
		{"invalid key", []string{"prog", "-keys", "1G", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			_, _, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_Batch(t *testing.T) {
	setArgs(t, "prog", "-batch", "*.ch8")

	opts, _, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "*.ch8", opts.Batch)
	assert.Equal(t, "", opts.Input)
}

func TestNormalizeOptions(t *testing.T) {
	opts := options.Program{
		RunFlags: options.RunFlags{InstructionsPerFrame: 1, Keys: "abc"},
	}
	assert.NoError(t, normalizeOptions(&opts))
	assert.Equal(t, "ABC", opts.Keys)
}
