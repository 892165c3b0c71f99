package render

import (
	"image/color"
	"testing"
)

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#fff", "#FFFFFF"},
		{"#ab3", "#AABB33"},
		{"#ff4d4d", "#FF4D4D"},
		{"#FF4D4D80", "#FF4D4D"}, // alpha dropped
		{"#FFFFFF", "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeHex(tt.in); got != tt.want {
				t.Errorf("NormalizeHex(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#FF4D4D")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	want := color.NRGBA{R: 0xFF, G: 0x4D, B: 0x4D, A: 0xFF}
	if got != want {
		t.Errorf("ParseHex(#FF4D4D) = %+v, want %+v", got, want)
	}

	if _, err := ParseHex("not-a-color"); err == nil {
		t.Error("expected error for invalid color")
	}
	if _, err := ParseHex("#GGGGGG"); err == nil {
		t.Error("expected error for non-hex digits")
	}
}
