package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/golang/freetype"
	xfont "golang.org/x/image/font"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	st7735 "github.com/luweiqi/CH32V003-ST7735-Driver"
	"github.com/luweiqi/CH32V003-ST7735-Driver/pixel"
)

func main() {
	widthFlag := flag.Int("width", 0, "Display width (0: panel default)")
	heightFlag := flag.Int("height", 0, "Display height (0: panel default)")
	xOffsetFlag := flag.Int("x-offset", 0, "Panel X offset in controller RAM")
	yOffsetFlag := flag.Int("y-offset", 0, "Panel Y offset in controller RAM")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	speedFlag := flag.Uint("speed", 8_000_000, "SPI speed in Hz")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "", "Chip enable GPIO pin (optional)")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	fontFlag := flag.String("font", "", "TrueType font for the banner (optional)")
	flag.Parse()

	var rotation st7735.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = st7735.NoRotation
	case "90", "right", "cw":
		rotation = st7735.Rotate90
	case "180", "flip":
		rotation = st7735.Rotate180
	case "270", "left", "ccw":
		rotation = st7735.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	config := &st7735.SPIConfig{
		Bus:     *spiBusFlag,
		Device:  *spiDeviceFlag,
		SpeedHz: uint32(*speedFlag),
		Reset:   gpioreg.ByName(*resetPinFlag),
		DC:      gpioreg.ByName(*dcPinFlag),
	}
	if *cePinFlag != "" {
		config.CE = gpioreg.ByName(*cePinFlag)
	}

	conn, err := st7735.OpenSPI(config)
	if err != nil {
		fatal(err)
	}
	defer conn.Close()
	fmt.Printf("using connection: %s\n", conn)

	output, err := st7735.New(conn, &st7735.Config{
		Width:    *widthFlag,
		Height:   *heightFlag,
		XOffset:  *xOffsetFlag,
		YOffset:  *yOffsetFlag,
		Rotation: rotation,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s at rotation %s\n", output, rotation)

	w, h := output.Size()

	output.SetBackgroundColor(pixel.Black)
	if err = output.Clear(); err != nil {
		fatal(err)
	}

	// border and diagonals
	if err = output.DrawRectangle(0, 0, w, h, pixel.White); err != nil {
		fatal(err)
	}
	if err = output.DrawLine(0, 0, w-1, h-1, pixel.Blue); err != nil {
		fatal(err)
	}
	if err = output.DrawLine(0, h-1, w-1, 0, pixel.Blue); err != nil {
		fatal(err)
	}

	// color bars
	bars := []pixel.CRGB16{pixel.Red, pixel.Green, pixel.Blue, pixel.Yellow, pixel.Cyan, pixel.Magenta}
	bw := (w - 4) / len(bars)
	for i, c := range bars {
		if err = output.FillRectangle(2+i*bw, 2, bw, 10, c); err != nil {
			fatal(err)
		}
	}

	if *fontFlag != "" {
		if err = drawBanner(output, *fontFlag, w); err != nil {
			fatal(err)
		}
	}

	output.SetColor(pixel.White)
	output.SetCursor(4, 16)
	if err = output.Print("Hello, World!"); err != nil {
		fatal(err)
	}

	// live-updating counter on a stable digit grid
	fmt.Println("hit control-c to stop...")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for count := int32(-50); ; count++ {
		output.SetCursor(4, 26)
		if err = output.PrintNumber(count); err != nil {
			fatal(err)
		}
		<-ticker.C
	}
}

// drawBanner rasterizes a TrueType banner on the host and pushes the finished
// pixels to the panel in one bitmap transfer.
func drawBanner(output *st7735.Device, path string, w int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return err
	}

	const size = 18
	banner := image.NewRGBA(image.Rect(0, 0, w-8, 24))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(banner.Bounds())
	ctx.SetDst(banner)
	ctx.SetSrc(image.NewUniform(color.White))
	ctx.SetHinting(xfont.HintingFull)
	if _, err = ctx.DrawString("ST7735", freetype.Pt(0, int(ctx.PointToFixed(size)>>6))); err != nil {
		return err
	}

	img := pixel.NewCRGB16Image(banner.Bounds().Dx(), banner.Bounds().Dy())
	for y := 0; y < banner.Bounds().Dy(); y++ {
		for x := 0; x < banner.Bounds().Dx(); x++ {
			img.Set(x, y, banner.At(x, y))
		}
	}
	return output.DrawImage(4, 40, img)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
