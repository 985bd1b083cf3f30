package st7735

import (
	"fmt"

	"github.com/luweiqi/CH32V003-ST7735-Driver/pixel"
)

func (d *Device) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.width && y < d.height
}

// fillRow expands n copies of the color into the scratch buffer, high byte
// first, and returns the filled prefix. Callers bound n by the panel extent
// they validated, which keeps the buffer capacity invariant by construction.
func (d *Device) fillRow(c pixel.CRGB16, n int) []byte {
	var (
		row = d.row[:2*n]
		hi  = byte(c.V >> 8)
		lo  = byte(c.V)
	)
	for i := 0; i < len(row); i += 2 {
		row[i] = hi
		row[i+1] = lo
	}
	return row
}

// DrawPixel sets the pixel at (x, y). A single pixel is written as one 16-bit
// data value; it does not warrant the scratch buffer.
func (d *Device) DrawPixel(x, y int, c pixel.CRGB16) (err error) {
	if !d.inBounds(x, y) {
		return ErrBounds
	}
	x += d.colOffset
	y += d.rowOffset

	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.setWindow(x, y, x, y); err != nil {
		return
	}
	if err = d.data16(c.V); err != nil {
		return
	}
	return d.c.End()
}

// FillRectangle fills the w by h rectangle at (x, y). The scratch buffer is
// expanded once for a single row and streamed h times, so the cost of the
// fill does not grow with the height.
func (d *Device) FillRectangle(x, y, w, h int, c pixel.CRGB16) (err error) {
	if w < 1 || h < 1 || x < 0 || y < 0 || x+w > d.width || y+h > d.height {
		return ErrBounds
	}
	row := d.fillRow(c, w)
	x += d.colOffset
	y += d.rowOffset

	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(row, h); err != nil {
		return
	}
	return d.c.End()
}

// Clear fills the whole panel with the background color.
func (d *Device) Clear() error {
	return d.FillRectangle(0, 0, d.width, d.height, d.background)
}

// fastHLine draws a horizontal line of w pixels starting at the logical
// coordinate (x, y) using a single block transfer.
func (d *Device) fastHLine(x, y, w int, c pixel.CRGB16) (err error) {
	row := d.fillRow(c, w)
	x += d.colOffset
	y += d.rowOffset

	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.setWindow(x, y, x+w-1, y); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(row, 1); err != nil {
		return
	}
	return d.c.End()
}

// fastVLine draws a vertical line of h pixels starting at the logical
// coordinate (x, y) using a single block transfer.
func (d *Device) fastVLine(x, y, h int, c pixel.CRGB16) (err error) {
	row := d.fillRow(c, h)
	x += d.colOffset
	y += d.rowOffset

	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.setWindow(x, y, x, y+h-1); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(row, 1); err != nil {
		return
	}
	return d.c.End()
}

// DrawLine draws a line between (x0, y0) and (x1, y1). Exactly vertical and
// exactly horizontal lines are drawn with one block transfer each; everything
// else is plotted pixel by pixel.
func (d *Device) DrawLine(x0, y0, x1, y1 int, c pixel.CRGB16) error {
	if !d.inBounds(x0, y0) || !d.inBounds(x1, y1) {
		return ErrBounds
	}
	switch {
	case x0 == x1:
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		return d.fastVLine(x0, y0, y1-y0+1, c)
	case y0 == y1:
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		return d.fastHLine(x0, y0, x1-x0+1, c)
	default:
		return d.drawLine(x0, y0, x1, y1, c)
	}
}

// drawLine is the Bresenham integer error-accumulator walk for lines that are
// neither vertical nor horizontal. One pixel per transfer; diagonal lines are
// rare next to axis-aligned drawing and not worth batching.
func (d *Device) drawLine(x0, y0, x1, y1 int, c pixel.CRGB16) error {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	var (
		dx   = x1 - x0
		dy   = abs(y1 - y0)
		e    = dx / 2
		step = -1
	)
	if y0 < y1 {
		step = 1
	}

	for ; x0 <= x1; x0++ {
		var err error
		if steep {
			err = d.DrawPixel(y0, x0, c)
		} else {
			err = d.DrawPixel(x0, y0, c)
		}
		if err != nil {
			return err
		}
		e -= dy
		if e < 0 {
			e += dx
			y0 += step
		}
	}
	return nil
}

// DrawRectangle draws the outline of the w by h rectangle at (x, y).
func (d *Device) DrawRectangle(x, y, w, h int, c pixel.CRGB16) (err error) {
	if w < 1 || h < 1 || x < 0 || y < 0 || x+w > d.width || y+h > d.height {
		return ErrBounds
	}
	if err = d.fastHLine(x, y, w, c); err != nil {
		return
	}
	if err = d.fastHLine(x, y+h-1, w, c); err != nil {
		return
	}
	if err = d.fastVLine(x, y, h, c); err != nil {
		return
	}
	return d.fastVLine(x+w-1, y, h, c)
}

// DrawBitmap streams caller-supplied pixel data into the w by h rectangle at
// (x, y). pix holds 16-bit 5-6-5 colors in row-major order, high byte first;
// the data goes out in one transfer without touching the scratch buffer.
func (d *Device) DrawBitmap(x, y, w, h int, pix []byte) (err error) {
	if w < 1 || h < 1 || x < 0 || y < 0 || x+w > d.width || y+h > d.height {
		return ErrBounds
	}
	if len(pix) != 2*w*h {
		return fmt.Errorf("st7735: bitmap of %dx%d needs %d bytes, got %d", w, h, 2*w*h, len(pix))
	}
	x += d.colOffset
	y += d.rowOffset

	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(pix, 1); err != nil {
		return
	}
	return d.c.End()
}

// DrawImage draws a pre-encoded image with its top-left corner at (x, y).
func (d *Device) DrawImage(x, y int, img *pixel.CRGB16Image) error {
	bounds := img.Bounds()
	return d.DrawBitmap(x, y, bounds.Dx(), bounds.Dy(), img.Pix)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
