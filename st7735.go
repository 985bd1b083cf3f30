// Package st7735 implements a driver for ST7735 TFT display controllers over
// a serial command/data bus.
//
// The driver holds no frame buffer: every primitive converts its arguments
// into an addressing-window setup followed by a stream of pixel data, reusing
// one scratch buffer sized for a full display row. A Device is owned by a
// single goroutine; concurrent calls would interleave command and data bytes
// and corrupt the controller's write pointer.
package st7735

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/luweiqi/CH32V003-ST7735-Driver/font"
	"github.com/luweiqi/CH32V003-ST7735-Driver/pixel"
)

// Errors
var (
	ErrBounds = errors.New("st7735: out of display bounds")
)

// Default panel geometry: the 0.96" 160x80 panel, mounted with a fixed
// offset inside the controller's 162x132 addressable RAM.
const (
	defaultWidth   = 160
	defaultHeight  = 80
	defaultXOffset = 1
	defaultYOffset = 26
)

// Registers (from st7735.pdf).
const (
	st7735SLPIN   = 0x10
	st7735SLPOUT  = 0x11
	st7735NORON   = 0x13
	st7735INVOFF  = 0x20
	st7735INVON   = 0x21
	st7735DISPOFF = 0x28
	st7735DISPON  = 0x29
	st7735CASET   = 0x2A
	st7735RASET   = 0x2B
	st7735RAMWR   = 0x2C
	st7735RAMRD   = 0x2E
	st7735MADCTL  = 0x36
	st7735COLMOD  = 0x3A
	st7735GMCTRP1 = 0xE0
	st7735GMCTRN1 = 0xE1
)

// Memory Data Access Control (MADCTL) bit fields.
const (
	_                           byte = 1 << iota // D0: reserved
	_                                            // D1: reserved
	st7735DisplayDataLatchOrder                  // D2: MH
	st7735BGROrder                               // D3: BGR
	st7735LineAddressOrder                       // D4: ML
	st7735PageColumnOrder                        // D5: MV
	st7735ColumnAddressOrder                     // D6: MX
	st7735PageAddressOrder                       // D7: MY
)

// COLMOD interface pixel format: 16 bits per pixel.
const st7735ColorMode16bit = 0x05

// Settling delays of the initialization sequence. These are lower bounds the
// controller needs to reach a usable state, not advisory.
const (
	st7735ResetDelay    = 50 * time.Millisecond
	st7735SleepOutDelay = 120 * time.Millisecond
	st7735SettleDelay   = 10 * time.Millisecond
)

// Gamma adjustment tables, positive and negative polarity. Not strictly
// required by the controller, but without them colors are visibly off.
var (
	st7735GammaP = []byte{
		0x09, 0x16, 0x09, 0x20, 0x21, 0x1B, 0x13, 0x19,
		0x17, 0x15, 0x1E, 0x2B, 0x04, 0x05, 0x02, 0x0E,
	}
	st7735GammaN = []byte{
		0x0B, 0x14, 0x08, 0x1E, 0x22, 0x1D, 0x18, 0x1E,
		0x1B, 0x1A, 0x24, 0x2B, 0x06, 0x06, 0x02, 0x0F,
	}
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

func (r Rotation) madctl() byte {
	switch r % 4 {
	case Rotate90:
		return st7735BGROrder
	case Rotate180:
		return st7735ColumnAddressOrder | st7735PageColumnOrder | st7735BGROrder
	case Rotate270:
		return st7735ColumnAddressOrder | st7735PageAddressOrder | st7735BGROrder
	default:
		return st7735PageAddressOrder | st7735PageColumnOrder | st7735BGROrder
	}
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// XOffset and YOffset locate the panel inside the controller's
	// addressable RAM. They are added to all logical coordinates before
	// any addressing-window computation.
	XOffset int
	YOffset int

	// Rotation of the display.
	Rotation Rotation
}

// Device is a single ST7735 display.
//
// A Device is not safe for concurrent use: all primitives share the one
// scratch buffer and the one addressing-window sequence on the bus.
type Device struct {
	c         Conn
	width     int
	height    int
	colOffset int
	rowOffset int
	rotation  Rotation

	// cursor position, stored offset-corrected
	cursorX int
	cursorY int

	color      pixel.CRGB16
	background pixel.CRGB16

	// row is the scratch buffer every drawing primitive expands pixel
	// data into. Sized for a full run of the panel's longer axis so both
	// row and column fills fit.
	row []byte
}

// New initializes an ST7735 display on the given connection and runs the
// fixed startup sequence. The display comes up cleared to the controller's
// power-on contents; callers typically Clear it first.
func New(c Conn, config *Config) (*Device, error) {
	if config == nil {
		config = &Config{}
	}

	d := &Device{
		c:          c,
		width:      config.Width,
		height:     config.Height,
		colOffset:  config.XOffset,
		rowOffset:  config.YOffset,
		rotation:   config.Rotation,
		color:      pixel.Black,
		background: pixel.White,
	}
	if d.width == 0 && d.height == 0 {
		if config.Rotation == Rotate90 || config.Rotation == Rotate270 {
			d.width, d.height = defaultHeight, defaultWidth
			d.colOffset, d.rowOffset = defaultYOffset, defaultXOffset
		} else {
			d.width, d.height = defaultWidth, defaultHeight
			d.colOffset, d.rowOffset = defaultXOffset, defaultYOffset
		}
	}
	if d.width < 1 || d.height < 1 {
		return nil, fmt.Errorf("st7735: invalid size %dx%d", d.width, d.height)
	}

	size := d.width
	if d.height > size {
		size = d.height
	}
	if size < font.Width*font.Height {
		// never smaller than one rendered glyph cell
		size = font.Width * font.Height
	}
	d.row = make([]byte, 2*size)

	if err := d.initDisplay(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("ST7735 %dx%d", d.width, d.height)
}

// Close releases the connection. The panel keeps showing its last contents.
func (d *Device) Close() error {
	return d.c.Close()
}

// Size returns the panel dimensions in pixels.
func (d *Device) Size() (w, h int) {
	return d.width, d.height
}

// command switches the controller to command mode and sends one byte.
func (d *Device) command(code byte) (err error) {
	if err = d.c.CommandMode(); err != nil {
		return
	}
	return d.c.SendByte(code)
}

// data8 switches the controller to data mode and sends one byte.
func (d *Device) data8(v byte) (err error) {
	if err = d.c.DataMode(); err != nil {
		return
	}
	return d.c.SendByte(v)
}

// data16 switches the controller to data mode and sends a 16-bit value,
// high byte first.
func (d *Device) data16(v uint16) (err error) {
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendByte(byte(v >> 8)); err != nil {
		return
	}
	return d.c.SendByte(byte(v))
}

// setWindow primes the controller to accept a stream of pixel data into the
// inclusive rectangle (x0,y0)-(x1,y1), advancing row-major. Coordinates are
// already offset-corrected by the caller, which also owns the transaction
// bracketing.
func (d *Device) setWindow(x0, y0, x1, y1 int) (err error) {
	if err = d.command(st7735CASET); err != nil {
		return
	}
	if err = d.data16(uint16(x0)); err != nil {
		return
	}
	if err = d.data16(uint16(x1)); err != nil {
		return
	}
	if err = d.command(st7735RASET); err != nil {
		return
	}
	if err = d.data16(uint16(y0)); err != nil {
		return
	}
	if err = d.data16(uint16(y1)); err != nil {
		return
	}
	return d.command(st7735RAMWR)
}

// initDisplay runs the fixed startup sequence. Order and delays must not
// change; the delays are what the panel needs, not round numbers.
func (d *Device) initDisplay() (err error) {
	// hardware reset
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(st7735ResetDelay)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(st7735ResetDelay)

	if err = d.c.Begin(); err != nil {
		return
	}

	// out of sleep mode
	if err = d.command(st7735SLPOUT); err != nil {
		return
	}
	time.Sleep(st7735SleepOutDelay)

	// rotation and color order
	if err = d.command(st7735MADCTL); err != nil {
		return
	}
	if err = d.data8(d.rotation.madctl()); err != nil {
		return
	}

	// 16-bit color
	if err = d.command(st7735COLMOD); err != nil {
		return
	}
	if err = d.data8(st7735ColorMode16bit); err != nil {
		return
	}

	// gamma adjustment, positive then negative polarity
	if err = d.command(st7735GMCTRP1); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(st7735GammaP, 1); err != nil {
		return
	}
	if err = d.command(st7735GMCTRN1); err != nil {
		return
	}
	if err = d.c.DataMode(); err != nil {
		return
	}
	if err = d.c.SendBlock(st7735GammaN, 1); err != nil {
		return
	}
	time.Sleep(st7735SettleDelay)

	// these panels are wired inverted
	if err = d.command(st7735INVON); err != nil {
		return
	}

	if err = d.command(st7735NORON); err != nil {
		return
	}
	time.Sleep(st7735SettleDelay)

	if err = d.command(st7735DISPON); err != nil {
		return
	}
	time.Sleep(st7735SettleDelay)

	return d.c.End()
}

// SetRotation adjusts the pixel rotation.
func (d *Device) SetRotation(rotation Rotation) (err error) {
	d.rotation = rotation % 4
	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.command(st7735MADCTL); err != nil {
		return
	}
	if err = d.data8(d.rotation.madctl()); err != nil {
		return
	}
	return d.c.End()
}

// Show toggles the display panel on or off.
func (d *Device) Show(show bool) (err error) {
	command := byte(st7735DISPOFF)
	if show {
		command = st7735DISPON
	}
	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.command(command); err != nil {
		return
	}
	return d.c.End()
}

// Invert toggles display color inversion.
func (d *Device) Invert(invert bool) (err error) {
	command := byte(st7735INVOFF)
	if invert {
		command = st7735INVON
	}
	if err = d.c.Begin(); err != nil {
		return
	}
	if err = d.command(command); err != nil {
		return
	}
	return d.c.End()
}
