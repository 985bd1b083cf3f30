package font

import "testing"

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		c    byte
		rows [Height]byte
	}{
		{"space", ' ', [Height]byte{}},
		{"pipe", '|', [Height]byte{0x04, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04}},
		{"minus", '-', [Height]byte{0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00}},
		{"bang", '!', [Height]byte{0x04, 0x04, 0x04, 0x04, 0x04, 0x00, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rows := Glyph(tt.c); rows != tt.rows {
				t.Errorf("Glyph(%q) = %05b, want %05b", tt.c, rows, tt.rows)
			}
		})
	}
}

func TestGlyphTable(t *testing.T) {
	if want := (0x80 - 0x20) * Width; len(glyphs) != want {
		t.Fatalf("expected %d column bytes, got %d", want, len(glyphs))
	}
	// Glyphs are 7 rows tall; no column byte may use bit 7.
	for i, col := range glyphs {
		if col&0x80 != 0 {
			t.Errorf("column byte %d has bits outside the cell: %08b", i, col)
		}
	}
}

func TestGlyphUnprintable(t *testing.T) {
	space := Glyph(' ')
	for _, c := range []byte{0x00, 0x1F, 0x80, 0xFF} {
		if rows := Glyph(c); rows != space {
			t.Errorf("Glyph(%#02x) must render as space, got %v", c, rows)
		}
	}
}
