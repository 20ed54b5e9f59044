package disasm

import (
	"bytes"
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		word     uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1234, "jp $234"},
		{0x2300, "call $300"},
		{0x3234, "se V2, $34"},
		{0x4A01, "sne VA, $01"},
		{0x5120, "se V1, V2"},
		{0x6099, "ld V0, $99"},
		{0x7F01, "add VF, $01"},
		{0x8120, "ld V1, V2"},
		{0x8121, "or V1, V2"},
		{0x8122, "and V1, V2"},
		{0x8123, "xor V1, V2"},
		{0x8124, "add V1, V2"},
		{0x8125, "sub V1, V2"},
		{0x8126, "shr V1, V2"},
		{0x8127, "subn V1, V2"},
		{0x812E, "shl V1, V2"},
		{0x9120, "sne V1, V2"},
		{0xA300, "ld I, $300"},
		{0xB300, "jp V0, $300"},
		{0xC10F, "rnd V1, $0F"},
		{0xD125, "drw V1, V2, $5"},
		{0xE39E, "skp V3"},
		{0xE3A1, "sknp V3"},
		{0xF307, "ld V3, DT"},
		{0xF30A, "ld V3, K"},
		{0xF315, "ld DT, V3"},
		{0xF318, "ld ST, V3"},
		{0xF31E, "add I, V3"},
		{0xF329, "ld F, V3"},
		{0xF333, "ld B, V3"},
		{0xF355, "ld [I], V3"},
		{0xF365, "ld V3, [I]"},
		{0x0123, ".word $0123"},
		{0xD120, ".word $D120"},
		{0xFFFF, ".word $FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(chip8.Opcode(tt.word)))
		})
	}
}

func TestWriter(t *testing.T) {
	data := []byte{
		0x60, 0x99, // ld V0, $99
		0x12, 0x00, // jp $200
		0xFF, 0xFF, // data
		0x00, 0x00,
	}

	tests := []struct {
		name     string
		options  Options
		expected string
	}{
		{
			name:    "no comments",
			options: Options{},
			expected: `; CHIP-8 ROM Disassembly
.org $200

    ld V0, $99
    jp $200
    .word $FFFF
`,
		},
		{
			name:    "all comments",
			options: Options{HexComments: true, OffsetComments: true},
			expected: `; CHIP-8 ROM Disassembly
.org $200

    ld V0, $99                   ; $0200 60 99
    jp $200                      ; $0202 12 00
    .word $FFFF                  ; $0204 FF FF
`,
		},
		{
			name:    "zero bytes",
			options: Options{ZeroBytes: true},
			expected: `; CHIP-8 ROM Disassembly
.org $200

    ld V0, $99
    jp $200
    .word $FFFF
    .word $0000
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, New(&buf, tt.options).Write(data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriter_OddLength(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{}).Write([]byte{0x00, 0xE0, 0x7A}))

	expected := `; CHIP-8 ROM Disassembly
.org $200

    cls
    .byte $7A
`
	assert.Equal(t, expected, buf.String())
}

func TestWriter_TrailingZeroInWord(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, Options{}).Write([]byte{0x61, 0x00, 0x00, 0x00}))

	expected := `; CHIP-8 ROM Disassembly
.org $200

    ld V1, $00
`
	assert.Equal(t, expected, buf.String())
}
