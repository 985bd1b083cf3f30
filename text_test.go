package st7735

import (
	"testing"

	"github.com/luweiqi/CH32V003-ST7735-Driver/font"
	"github.com/luweiqi/CH32V003-ST7735-Driver/pixel"
)

func TestPrintChar(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)
	d.SetCursor(10, 20)
	d.SetColor(pixel.Red)
	d.SetBackgroundColor(pixel.Black)

	cursorX, cursorY := d.cursorX, d.cursorY
	if err := d.PrintChar('|'); err != nil {
		t.Fatal(err)
	}

	// drawing a glyph must not move the cursor
	if d.cursorX != cursorX || d.cursorY != cursorY {
		t.Errorf("cursor moved to (%d,%d), expected (%d,%d)", d.cursorX, d.cursorY, cursorX, cursorY)
	}

	// the glyph cell goes out as one 70-byte transfer
	blocks := rec.blocks()
	if len(blocks) != 1 || len(blocks[0].data) != 2*font.Width*font.Height || blocks[0].repeat != 1 {
		t.Fatalf("expected one 70-byte block repeat 1, got %#v", blocks)
	}

	// '|' renders as the middle column in every row: bg bg fg bg bg
	row := blocks[0].data[:2*font.Width]
	want := []byte{0x00, 0x00, 0x00, 0x00, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("expected first rendered row % 02x, got % 02x", want, row)
		}
	}

	// the window's bottom bound follows the cursor column (kept behavior)
	wins := rec.windows(t)
	wantWin := [4]int{cursorX, cursorY, cursorX + font.Width - 1, cursorX + font.Height - 1}
	if len(wins) != 1 || wins[0] != wantWin {
		t.Errorf("expected window %v, got %v", wantWin, wins)
	}
}

func TestPrintAdvancesCursor(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)
	d.SetCursor(0, 0)

	before := d.cursorX
	if err := d.Print("Hello"); err != nil {
		t.Fatal(err)
	}
	if want := before + 5*font.Advance; d.cursorX != want {
		t.Errorf("expected cursor x %d after 5 characters, got %d", want, d.cursorX)
	}
	if wins := rec.windows(t); len(wins) != 5 {
		t.Errorf("expected 5 glyph windows, got %d", len(wins))
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int32
		want string
	}{
		{0, "          0"},
		{-7, "         -7"},
		{42, "         42"},
		{-120, "       -120"},
		{2147483647, " 2147483647"},
		{-2147483648, "-2147483648"},
	}

	for _, tt := range tests {
		got := formatNumber(tt.n)
		if len(got) != numberWidth {
			t.Errorf("formatNumber(%d): field is %d wide, expected %d", tt.n, len(got), numberWidth)
		}
		if got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintNumber(t *testing.T) {
	rec := &recordConn{}
	d := testDevice(rec)
	d.SetCursor(0, 0)

	if err := d.PrintNumber(-7); err != nil {
		t.Fatal(err)
	}

	// a fixed field always renders the same number of glyph cells
	if wins := rec.windows(t); len(wins) != numberWidth {
		t.Errorf("expected %d glyph windows, got %d", numberWidth, len(wins))
	}
	if want := numberWidth * font.Advance; d.cursorX != want {
		t.Errorf("expected cursor x %d, got %d", want, d.cursorX)
	}
}
