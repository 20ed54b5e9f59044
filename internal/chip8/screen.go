package chip8

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash"
)

// Screen is the 64x32 monochrome framebuffer. Each row is a bitmask where
// the most significant bit is the leftmost pixel, column c maps to bit 63-c.
type Screen [ScreenHeight]uint64

// Clear unsets all pixels.
func (s *Screen) Clear() {
	*s = Screen{}
}

// Pixel returns whether the pixel at the given column and row is set.
// Coordinates outside of the screen are reported as unset.
func (s *Screen) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return s[y]&(1<<(ScreenWidth-1-x)) != 0
}

// Row returns the bitmask of the given row, column 0 is the most significant bit.
// Rows outside of the screen are reported as empty.
func (s *Screen) Row(y int) uint64 {
	if y < 0 || y >= ScreenHeight {
		return 0
	}
	return s[y]
}

// Checksum returns a hash of the framebuffer content, it is used by hosts
// to detect frames that did not change visually.
func (s *Screen) Checksum() uint64 {
	var buf [ScreenHeight * 8]byte
	for i, row := range s {
		binary.BigEndian.PutUint64(buf[i*8:], row)
	}
	return xxhash.Sum64(buf[:])
}

// Render writes the framebuffer as text, one line per row, using the
// given strings for set and unset pixels.
func (s *Screen) Render(w io.Writer, on, off string) error {
	var sb strings.Builder
	for y := range ScreenHeight {
		sb.Reset()
		for x := range ScreenWidth {
			if s.Pixel(x, y) {
				sb.WriteString(on)
			} else {
				sb.WriteString(off)
			}
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("writing screen row %d: %w", y, err)
		}
	}
	return nil
}

// spriteRow widens a sprite byte into a row bitmask starting at column x.
// Pixels that would end up right of the last column are clipped.
func spriteRow(b byte, x uint8) uint64 {
	if x <= ScreenWidth-8 {
		return uint64(b) << (ScreenWidth - 8 - x)
	}
	return uint64(b) >> (x - (ScreenWidth - 8))
}
