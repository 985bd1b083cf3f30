// Package pixel implements the 16-bit 5-6-5 RGB color model used by the
// display controller, compatible with Go's native [color.Color] and
// [image.Image] interfaces, plus an image type whose pixels are stored
// pre-encoded in wire order.
package pixel
