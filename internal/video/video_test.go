package video

import "testing"

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in      string
		wantNum int
		wantDen int
		wantErr bool
	}{
		{"30/1", 30, 1, false},
		{"30000/1001", 30000, 1001, false},
		{"24000/1001", 24000, 1001, false},
		{"25/1", 25, 1, false},
		{"29.97", 0, 0, true},
		{"0/1", 0, 0, true},
		{"abc/def", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			num, den, err := parseFrameRate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseFrameRate(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFrameRate(%q) failed: %v", tt.in, err)
			}
			if num != tt.wantNum || den != tt.wantDen {
				t.Errorf("parseFrameRate(%q) = %d/%d, want %d/%d",
					tt.in, num, den, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func TestInfoFPS(t *testing.T) {
	info := Info{FPSNum: 30000, FPSDen: 1001}
	if fps := info.FPS(); fps < 29.96 || fps > 29.98 {
		t.Errorf("FPS() = %f, want ~29.97", fps)
	}
}

func TestDefaultInfo(t *testing.T) {
	info := DefaultInfo("clip.mp4")
	if info.FPSNum != 30 || info.FPSDen != 1 || info.Width != 1920 || info.Height != 1080 {
		t.Errorf("unexpected fallback info: %+v", info)
	}
}
