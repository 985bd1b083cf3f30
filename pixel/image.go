package pixel

import (
	"image"
	"image/color"
)

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
//
// Pixels are stored big-endian, high byte first, which is the order the
// display controller consumes them in. Pix can therefore be handed to the
// driver as-is.
type CRGB16Image struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels in wire order.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, w*2*h),
		Stride: w * 2,
	}
}

func (p *CRGB16Image) Bounds() image.Rectangle {
	return p.Rect
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	i := x*2 + y*p.Stride
	return CRGB16{uint16(p.Pix[i])<<8 | uint16(p.Pix[i+1])}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	i := x*2 + y*p.Stride
	p.Pix[i] = byte(v >> 8)
	p.Pix[i+1] = byte(v)
}

// Fill sets every pixel to the given color.
func (p *CRGB16Image) Fill(c color.Color) {
	var (
		v  = crgb16Model(c).(CRGB16).V
		hi = byte(v >> 8)
		lo = byte(v)
	)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		p.Pix[i] = hi
		p.Pix[i+1] = lo
	}
}

// Clear sets every pixel to black.
func (p *CRGB16Image) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// Interface check.
var _ image.Image = (*CRGB16Image)(nil)
