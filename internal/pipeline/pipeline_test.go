package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captionforge/internal/config"
	"captionforge/internal/render"
	"captionforge/internal/video"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Text.Size = 24
	cfg.Stroke.Width = 2
	cfg.Shadow.Opacity = 0
	return cfg
}

func writeTestSRT(t *testing.T) string {
	t.Helper()
	content := `1
00:00:00,000 --> 00:00:01,000
First caption here

2
00:00:01,200 --> 00:00:02,000
Second caption
`
	path := filepath.Join(t.TempDir(), "test.srt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write SRT: %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	srtPath := writeTestSRT(t)
	outDir := filepath.Join(t.TempDir(), "out")
	info := video.Info{Width: 1920, Height: 1080, FPSNum: 30, FPSDen: 1}

	result, err := Run(testConfig(), srtPath, info, Options{
		OutDir:  outDir,
		Seed:    7,
		Dialect: DialectFCPXML,
		Fonts:   render.BuiltinResolver{},
	}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Captions != 2 {
		t.Errorf("expected 2 captions, got %d", result.Captions)
	}

	for _, name := range []string{"cap_0001.png", "cap_0002.png"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing image %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(result.XMLPath)
	if err != nil {
		t.Fatalf("failed to read timeline: %v", err)
	}
	out := string(data)

	// 0-1000ms -> frames 0..30; 1200-2000ms -> frames 36..60
	for _, want := range []string{
		`offset="0/30s"`,
		`duration="30/30s"`,
		`offset="36/30s"`,
		`duration="24/30s"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline missing %s\n%s", want, out)
		}
	}
}

func TestRunManifest(t *testing.T) {
	srtPath := writeTestSRT(t)
	outDir := filepath.Join(t.TempDir(), "out")
	info := video.Info{Width: 1280, Height: 720, FPSNum: 30, FPSDen: 1}

	result, err := Run(testConfig(), srtPath, info, Options{
		OutDir:  outDir,
		Seed:    1,
		Dialect: DialectXMEML,
		Fonts:   render.BuiltinResolver{},
	}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f, err := os.Open(result.ManifestPath)
	if err != nil {
		t.Fatalf("failed to open manifest: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	if len(rows) != 3 { // header + 2 captions
		t.Fatalf("expected 3 manifest rows, got %d", len(rows))
	}
	if rows[0][0] != "index" || rows[0][8] != "filename" {
		t.Errorf("unexpected manifest header: %v", rows[0])
	}

	want := [][]string{
		{"1", "0", "1000", "0", "30"},
		{"2", "1200", "2000", "36", "60"},
	}
	wantNames := []string{"cap_0001.png", "cap_0002.png"}
	for i, w := range want {
		row := rows[i+1]
		for j, v := range w {
			if row[j] != v {
				t.Errorf("manifest row %d col %d = %q, want %q", i+1, j, row[j], v)
			}
		}
		if row[8] != wantNames[i] {
			t.Errorf("manifest row %d filename = %q, want %q", i+1, row[8], wantNames[i])
		}
	}
}

func TestRunDeterministicAccents(t *testing.T) {
	srtPath := writeTestSRT(t)
	info := video.Info{Width: 640, Height: 360, FPSNum: 30, FPSDen: 1}

	readAccents := func(outDir string) []string {
		result, err := Run(testConfig(), srtPath, info, Options{
			OutDir:  outDir,
			Seed:    99,
			Dialect: DialectFCPXML,
			Fonts:   render.BuiltinResolver{},
		}, nil)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		f, err := os.Open(result.ManifestPath)
		if err != nil {
			t.Fatalf("failed to open manifest: %v", err)
		}
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse manifest: %v", err)
		}
		var accents []string
		for _, row := range rows[1:] {
			accents = append(accents, row[5])
		}
		return accents
	}

	first := readAccents(filepath.Join(t.TempDir(), "a"))
	second := readAccents(filepath.Join(t.TempDir(), "b"))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("accent sequence differs between identical seeded runs: %v vs %v", first, second)
		}
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Colors.Accents = nil

	_, err := Run(cfg, writeTestSRT(t), video.Info{Width: 640, Height: 360, FPSNum: 30, FPSDen: 1}, Options{
		OutDir:  filepath.Join(t.TempDir(), "out"),
		Dialect: DialectFCPXML,
		Fonts:   render.BuiltinResolver{},
	}, nil)
	if err == nil {
		t.Fatal("expected error for config without accents")
	}
}

func TestUniqueDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "captions_out")

	if got := UniqueDir(base); got != base {
		t.Errorf("fresh path changed: %q", got)
	}

	if err := os.MkdirAll(base, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if got := UniqueDir(base); got != base+"_1" {
		t.Errorf("colliding path = %q, want %q", got, base+"_1")
	}

	if err := os.MkdirAll(base+"_1", 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if got := UniqueDir(base); got != base+"_2" {
		t.Errorf("double collision = %q, want %q", got, base+"_2")
	}
}
