package pixel

import "image/color"

// CRGB16Model converts any color.Color to a CRGB16 color.
var CRGB16Model color.Model = color.ModelFunc(crgb16Model)

// Common panel colors, packed 5-6-5.
var (
	Black   = CRGB16{0x0000}
	White   = CRGB16{0xFFFF}
	Red     = CRGB16{0xF800}
	Green   = CRGB16{0x07E0}
	Blue    = CRGB16{0x001F}
	Yellow  = CRGB16{0xFFE0}
	Cyan    = CRGB16{0x07FF}
	Magenta = CRGB16{0xF81F}
)

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

// RGB packs 8-bit red, green and blue components into a CRGB16 color,
// discarding the low bits of each component.
func RGB(r, g, b uint8) CRGB16 {
	return CRGB16{uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3}
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func crgb16Model(c color.Color) color.Color {
	if c, ok := c.(CRGB16); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	r = r & 0xF800
	g = (g & 0xFC00) >> 5
	b = (b & 0xF800) >> 11
	return CRGB16{uint16(r | g | b)}
}
