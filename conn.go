package st7735

import (
	"errors"
	"fmt"
	"log"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/luweiqi/CH32V003-ST7735-Driver/conn"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Conn errors.
var (
	ErrResetPin = errors.New("st7735: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("st7735: data/command (DC) GPIO pin is invalid")
)

// Conn is the byte-level connection to the display controller.
//
// A single drawing operation issues several commands that must not interleave
// with other transfers on the bus; callers bracket those sequences in Begin
// and End. All transfers are synchronous and block until completion.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset line to the provided level.
	Reset(gpio.Level) error

	// CommandMode makes the controller interpret subsequent bytes as commands.
	CommandMode() error

	// DataMode makes the controller interpret subsequent bytes as data.
	DataMode() error

	// Begin asserts the chip select line.
	Begin() error

	// End releases the chip select line.
	End() error

	// SendByte sends a single byte.
	SendByte(b byte) error

	// SendBlock sends p repeat times. Every repetition transfers the same
	// source bytes; p is not modified.
	SendBlock(p []byte, repeat int) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus       int
	Device    int
	Mode      uint8
	SpeedHz   uint32
	BatchSize uint
	Reset     gpio.PinOut
	DC        gpio.PinOut
	CE        gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:       0,
	Device:    0,
	Mode:      0,
	SpeedHz:   8_000_000,
	BatchSize: 4096,
	Reset:     gpioreg.ByName("GPIO25"),
	DC:        gpioreg.ByName("GPIO24"),
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	28_000_000,
	32_000_000,
	36_000_000,
	40_000_000,
	48_000_000,
	50_000_000,
	52_000_000,
}

type spiConn struct {
	bus       *conn.SPI
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	cs        gpio.PinOut
	batchSize uint
	one       [1]byte
}

// OpenSPI opens and configures the SPI bus and the GPIO lines the display is
// wired to. This is the one-time bus setup; the returned Conn is ready for
// use by a Device.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.Reset == nil || config.Reset == gpio.INVALID {
		return nil, ErrResetPin
	}
	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if config.BatchSize == 0 {
		config.BatchSize = DefaultSPIConfig.BatchSize
	}

	c, err := conn.OpenSPI(config.Bus, config.Device)
	if err != nil {
		return nil, err
	}

	if err = c.SetMode(conn.SPIMode(config.Mode)); err != nil {
		_ = c.Close()
		return nil, err
	}

	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		_ = c.Close()
		return nil, fmt.Errorf("st7735: invalid SPI speed %dHz", config.SpeedHz)
	}
	if err = c.SetMaxSpeed(int(config.SpeedHz)); err != nil {
		_ = c.Close()
		return nil, err
	}

	// drive DC to a known level so the cached state starts out correct
	if err = config.DC.Out(gpio.Low); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &spiConn{
		bus:       c,
		batchSize: config.BatchSize,
		reset:     config.Reset,
		dc:        config.DC,
		cs:        config.CE,
	}, nil
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) Reset(level gpio.Level) error {
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) CommandMode() error {
	return c.updateDC(gpio.Low)
}

func (c *spiConn) DataMode() error {
	return c.updateDC(gpio.High)
}

func (c *spiConn) Begin() error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(gpio.Low)
}

func (c *spiConn) End() error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(gpio.High)
}

func (c *spiConn) SendByte(b byte) error {
	c.one[0] = b
	_, err := c.bus.Write(c.one[:])
	return err
}

func (c *spiConn) SendBlock(p []byte, repeat int) error {
	for ; repeat > 0; repeat-- {
		if err := c.writeChunked(p); err != nil {
			return err
		}
	}
	return nil
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	if len(data) < int(c.batchSize) {
		_, err = c.bus.Write(data)
		return
	}

	if debug {
		log.Printf("write %d bytes of data in %d chunks", len(data), (len(data)+int(c.batchSize)-1)/int(c.batchSize))
	}
	buffer := data
	for len(buffer) > 0 {
		if len(buffer) > int(c.batchSize) {
			if _, err = c.bus.Write(buffer[:c.batchSize]); err != nil {
				return
			}
			buffer = buffer[c.batchSize:]
		} else {
			if _, err = c.bus.Write(buffer); err != nil {
				return
			}
			buffer = nil
		}
	}
	return
}
