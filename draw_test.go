package st7735

import (
	"testing"

	"github.com/luweiqi/CH32V003-ST7735-Driver/pixel"
)

func TestDrawPixel(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.DrawPixel(3, 4, pixel.Red); err != nil {
		t.Fatal(err)
	}

	wins := rec.windows(t)
	if len(wins) != 1 {
		t.Fatalf("expected 1 window, got %d", len(wins))
	}
	want := [4]int{3 + defaultXOffset, 4 + defaultYOffset, 3 + defaultXOffset, 4 + defaultYOffset}
	if wins[0] != want {
		t.Errorf("expected window %v, got %v", want, wins[0])
	}

	// a single pixel is one 16-bit data write, no block transfer
	if blocks := rec.blocks(); len(blocks) != 0 {
		t.Errorf("expected no block transfers, got %d", len(blocks))
	}
	var pix []byte
	for _, ev := range rec.events[len(rec.events)-3:] {
		if ev.kind == "data" {
			pix = append(pix, ev.b)
		}
	}
	if len(pix) != 2 || pix[0] != 0xf8 || pix[1] != 0x00 {
		t.Errorf("expected pixel bytes f8 00, got % 02x", pix)
	}
}

func TestDrawPixelBounds(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {160, 0}, {0, 80}} {
		if err := d.DrawPixel(p[0], p[1], pixel.Red); err != ErrBounds {
			t.Errorf("DrawPixel(%d, %d): expected ErrBounds, got %v", p[0], p[1], err)
		}
	}
	if len(rec.events) != 0 {
		t.Error("rejected calls must not touch the bus")
	}
}

func TestFillRectangle(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.FillRectangle(2, 3, 10, 5, pixel.Blue); err != nil {
		t.Fatal(err)
	}

	wins := rec.windows(t)
	if len(wins) != 1 {
		t.Fatalf("expected 1 window, got %d", len(wins))
	}
	want := [4]int{2 + defaultXOffset, 3 + defaultYOffset, 11 + defaultXOffset, 7 + defaultYOffset}
	if wins[0] != want {
		t.Errorf("expected window %v, got %v", want, wins[0])
	}

	// one row expansion, streamed h times
	blocks := rec.blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block transfer, got %d", len(blocks))
	}
	if len(blocks[0].data) != 2*10 || blocks[0].repeat != 5 {
		t.Errorf("expected 20-byte block repeated 5 times, got %d bytes repeated %d",
			len(blocks[0].data), blocks[0].repeat)
	}
	for i := 0; i < len(blocks[0].data); i += 2 {
		if blocks[0].data[i] != 0x00 || blocks[0].data[i+1] != 0x1f {
			t.Fatalf("expected row of 00 1f pairs, got % 02x", blocks[0].data)
		}
	}
}

func TestFillRectangleBounds(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"zero width", 0, 0, 0, 10},
		{"negative height", 0, 0, 10, -1},
		{"past right edge", 155, 0, 10, 10},
		{"past bottom edge", 0, 75, 10, 10},
		{"negative origin", -1, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.FillRectangle(tt.x, tt.y, tt.w, tt.h, pixel.Red); err != ErrBounds {
				t.Errorf("expected ErrBounds, got %v", err)
			}
		})
	}
	if len(rec.events) != 0 {
		t.Error("rejected calls must not touch the bus")
	}
}

func TestClear(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.Clear(); err != nil {
		t.Fatal(err)
	}
	blocks := rec.blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block transfer, got %d", len(blocks))
	}
	if len(blocks[0].data) != 2*160 || blocks[0].repeat != 80 {
		t.Errorf("expected a full 320-byte row repeated 80 times, got %d bytes repeated %d",
			len(blocks[0].data), blocks[0].repeat)
	}
}

func TestDrawLineVertical(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	// endpoints reversed on purpose
	if err := d.DrawLine(5, 7, 5, 2, pixel.Green); err != nil {
		t.Fatal(err)
	}

	wins := rec.windows(t)
	if len(wins) != 1 {
		t.Fatalf("vertical line must be one transfer, got %d windows", len(wins))
	}
	want := [4]int{5 + defaultXOffset, 2 + defaultYOffset, 5 + defaultXOffset, 7 + defaultYOffset}
	if wins[0] != want {
		t.Errorf("expected window %v, got %v", want, wins[0])
	}
	blocks := rec.blocks()
	if len(blocks) != 1 || len(blocks[0].data) != 2*6 || blocks[0].repeat != 1 {
		t.Errorf("expected one 12-byte block repeat 1, got %#v", blocks)
	}
}

func TestDrawLineHorizontal(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.DrawLine(9, 4, 2, 4, pixel.Green); err != nil {
		t.Fatal(err)
	}

	wins := rec.windows(t)
	if len(wins) != 1 {
		t.Fatalf("horizontal line must be one transfer, got %d windows", len(wins))
	}
	want := [4]int{2 + defaultXOffset, 4 + defaultYOffset, 9 + defaultXOffset, 4 + defaultYOffset}
	if wins[0] != want {
		t.Errorf("expected window %v, got %v", want, wins[0])
	}
	if blocks := rec.blocks(); len(blocks) != 1 || len(blocks[0].data) != 2*8 {
		t.Errorf("expected one 16-byte block, got %#v", blocks)
	}
}

func TestDrawLineBresenham(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.DrawLine(0, 0, 4, 2, pixel.White); err != nil {
		t.Fatal(err)
	}

	// every plotted pixel is a single-point window
	wins := rec.windows(t)
	if len(wins) != 5 {
		t.Fatalf("expected 5 plotted pixels, got %d", len(wins))
	}
	want := [][2]int{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}}
	for i, win := range wins {
		if win[0] != win[2] || win[1] != win[3] {
			t.Fatalf("pixel %d: window %v is not a single point", i, win)
		}
		x, y := win[0]-defaultXOffset, win[1]-defaultYOffset
		if x != want[i][0] || y != want[i][1] {
			t.Errorf("pixel %d: expected (%d,%d), got (%d,%d)", i, want[i][0], want[i][1], x, y)
		}
		if i > 0 {
			px := wins[i-1][0] - defaultXOffset
			py := wins[i-1][1] - defaultYOffset
			if x != px+1 {
				t.Errorf("pixel %d: x must advance by exactly 1, got %d after %d", i, x, px)
			}
			if dy := abs(y - py); dy > 1 {
				t.Errorf("pixel %d: y must change by at most 1, got %d", i, dy)
			}
		}
	}

	// the per-pixel path never uses block transfers
	if blocks := rec.blocks(); len(blocks) != 0 {
		t.Errorf("expected no block transfers, got %d", len(blocks))
	}
}

func TestDrawLineSteep(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.DrawLine(10, 10, 12, 16, pixel.White); err != nil {
		t.Fatal(err)
	}

	wins := rec.windows(t)
	if len(wins) != 7 {
		t.Fatalf("expected 7 plotted pixels, got %d", len(wins))
	}
	for i, win := range wins {
		x, y := win[0]-defaultXOffset, win[1]-defaultYOffset
		if y != 10+i {
			t.Errorf("pixel %d: expected y=%d, got %d", i, 10+i, y)
		}
		if x < 10 || x > 12 {
			t.Errorf("pixel %d: x=%d outside the line's x range", i, x)
		}
	}
}

func TestDrawRectangle(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	if err := d.DrawRectangle(1, 2, 8, 6, pixel.Yellow); err != nil {
		t.Fatal(err)
	}

	// top, bottom, left, right: four fast lines, four block transfers
	wins := rec.windows(t)
	if len(wins) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(wins))
	}
	want := [][4]int{
		{2, 28, 9, 28},  // top
		{2, 33, 9, 33},  // bottom
		{2, 28, 2, 33},  // left
		{9, 28, 9, 33},  // right
	}
	for i, win := range wins {
		if win != want[i] {
			t.Errorf("window %d: expected %v, got %v", i, want[i], win)
		}
	}
	if blocks := rec.blocks(); len(blocks) != 4 {
		t.Errorf("expected 4 block transfers, got %d", len(blocks))
	}
}

func TestDrawBitmap(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	pix := make([]byte, 2*3*2)
	for i := range pix {
		pix[i] = byte(i)
	}
	if err := d.DrawBitmap(4, 5, 3, 2, pix); err != nil {
		t.Fatal(err)
	}

	blocks := rec.blocks()
	if len(blocks) != 1 || blocks[0].repeat != 1 {
		t.Fatalf("expected one block transfer with repeat 1, got %#v", blocks)
	}
	for i, b := range blocks[0].data {
		if b != byte(i) {
			t.Fatalf("bitmap bytes must stream unmodified, got % 02x", blocks[0].data)
		}
	}

	if err := d.DrawBitmap(4, 5, 3, 2, pix[:6]); err == nil {
		t.Error("expected error for short pixel data")
	}
	if err := d.DrawBitmap(158, 5, 3, 2, pix); err != ErrBounds {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestDrawImage(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)

	img := pixel.NewCRGB16Image(4, 3)
	img.Fill(pixel.Magenta)
	if err := d.DrawImage(2, 2, img); err != nil {
		t.Fatal(err)
	}

	wins := rec.windows(t)
	want := [4]int{2 + defaultXOffset, 2 + defaultYOffset, 5 + defaultXOffset, 4 + defaultYOffset}
	if len(wins) != 1 || wins[0] != want {
		t.Errorf("expected window %v, got %v", want, wins)
	}
	if blocks := rec.blocks(); len(blocks) != 1 || len(blocks[0].data) != 2*4*3 {
		t.Errorf("expected one 24-byte block, got %#v", blocks)
	}
}
