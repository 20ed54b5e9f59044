package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Options controls the listing output.
type Options struct {
	HexComments    bool // output the instruction bytes as comment
	OffsetComments bool // output the memory address as comment
	ZeroBytes      bool // output trailing zero bytes
}

// Writer writes assembly listings of CHIP-8 program images.
type Writer struct {
	w       io.Writer
	options Options
}

// New returns a new listing writer.
func New(w io.Writer, options Options) *Writer {
	return &Writer{
		w:       w,
		options: options,
	}
}

// Write disassembles the program image, which is assumed to be loaded at
// chip8.ProgramStart. Every word is decoded linearly, words that are not
// instructions are written as data.
func (w *Writer) Write(data []byte) error {
	if _, err := fmt.Fprintf(w.w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.w, ".org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	end := w.endIndex(data)
	for i := 0; i < end; i += 2 {
		address := uint16(chip8.ProgramStart + i)

		if i+1 >= end {
			line := fmt.Sprintf("    .byte $%02X", data[i])
			if err := w.writeLine(line, address, data[i:i+1]); err != nil {
				return err
			}
			break
		}

		op := chip8.Opcode(uint16(data[i])<<8 | uint16(data[i+1]))
		if err := w.writeLine("    "+Format(op), address, data[i:i+2]); err != nil {
			return err
		}
	}
	return nil
}

// writeLine writes a code or data line with the optional comments.
func (w *Writer) writeLine(line string, address uint16, data []byte) error {
	comment := w.comment(address, data)

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.w, "%s\n", line)
	} else {
		_, err = fmt.Fprintf(w.w, "%-32s ; %s\n", line, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line for address $%04X: %w", address, err)
	}
	return nil
}

func (w *Writer) comment(address uint16, data []byte) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", address))
	}
	if w.options.HexComments {
		var buf strings.Builder
		for i, b := range data {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%02X", b)
		}
		parts = append(parts, buf.String())
	}
	return strings.Join(parts, " ")
}

// endIndex finds the end of the word containing the last non zero byte
// of the program.
func (w *Writer) endIndex(data []byte) int {
	if w.options.ZeroBytes {
		return len(data)
	}

	for i := len(data) - 1; i >= 0; i-- {
		if data[i] == 0 {
			continue
		}
		end := i + 1
		if end%2 == 1 && end < len(data) {
			end++
		}
		return end
	}
	return 0
}
