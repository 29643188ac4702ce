package content

import "testing"

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"Go", 'G' % 6},
		{"go", 'g' % 6},
		{"react", 'r' % 6},
		{"", 0},
		{"é", 0xE9 % 6},
		{"😀", 0xD83D % 6},
	}
	for _, tt := range tests {
		if got := PaletteIndex(tt.tag); got != tt.want {
			t.Errorf("PaletteIndex(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestPaletteIndexDeterministic(t *testing.T) {
	first := PaletteIndex("Go")
	for i := 0; i < 10; i++ {
		if got := PaletteIndex("Go"); got != first {
			t.Fatalf("PaletteIndex changed between calls: %d != %d", got, first)
		}
	}
	if first != 5 {
		t.Errorf("PaletteIndex(\"Go\") = %d, want 5", first)
	}
}

func TestTagGradient(t *testing.T) {
	if got := TagGradient(""); got != Palette[0] {
		t.Errorf("TagGradient(\"\") = %q, want %q", got, Palette[0])
	}
	if got := TagGradient("Go"); got != "from-indigo-500 to-blue-600" {
		t.Errorf("TagGradient(\"Go\") = %q", got)
	}
}
