package pipeline

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"captionforge/internal/config"
	"captionforge/internal/logging"
	"captionforge/internal/render"
	"captionforge/internal/subtitle"
	"captionforge/internal/timeline"
	"captionforge/internal/timing"
	"captionforge/internal/video"
)

// Dialect selects which timeline XML document a run produces.
type Dialect string

const (
	DialectFCPXML Dialect = "fcpxml"
	DialectXMEML  Dialect = "xmeml"
)

type Options struct {
	OutDir     string
	Seed       int64
	TrackIndex int
	Dialect    Dialect

	// Fonts overrides host font lookup; nil scans the filesystem.
	Fonts render.FontResolver
}

type Result struct {
	Captions     int
	XMLPath      string
	ManifestPath string
}

// Run executes the full caption pipeline strictly in caption order:
// parse, split long lines, assign accents under the seeded source,
// rasterize and write one trimmed PNG per caption, then emit the
// manifest and one timeline document for the whole sequence.
func Run(cfg *config.Config, srtPath string, info video.Info, opts Options, log *logging.Logger) (*Result, error) {
	if log == nil {
		log = logging.Nop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	captions, err := subtitle.ParseSRT(srtPath)
	if err != nil {
		return nil, err
	}
	captions = subtitle.SplitLongLines(captions, subtitle.DefaultMaxLineLength)

	rng := rand.New(rand.NewSource(opts.Seed))
	if err := subtitle.AssignAccents(captions, len(cfg.Colors.Accents), cfg.Colors.StartingAccentIndex, rng); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	rasterizer := render.NewRasterizer(cfg, opts.Fonts, log)

	// descender and shadow spill pad for the legacy dialect, whose
	// importers clip tight to the image edge
	extraPad := 0
	if opts.Dialect == DialectXMEML {
		extraPad = cfg.Stroke.Width + cfg.Shadow.Blur + 4
	}

	manifestPath := filepath.Join(opts.OutDir, "captions_manifest.csv")
	manifestFile, err := os.Create(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}
	defer manifestFile.Close()

	manifest := csv.NewWriter(manifestFile)
	if err := manifest.Write([]string{
		"index", "start_ms", "end_ms", "start_frame", "end_frame",
		"accent", "chosen_line", "words_colored", "filename",
	}); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	items := make([]timeline.Item, 0, len(captions))
	for _, c := range captions {
		accentHex := cfg.Colors.Accents[c.AccentIndex]
		img, err := rasterizer.Render(c, accentHex, info.Width, info.Height)
		if err != nil {
			return nil, fmt.Errorf("failed to render caption %d: %w", c.Index, err)
		}
		img = render.TrimAndPad(img, cfg.Render.SafeMargin, extraPad)

		name := fmt.Sprintf("cap_%04d.png", c.Index)
		if err := writePNG(filepath.Join(opts.OutDir, name), img); err != nil {
			return nil, err
		}

		frames := timing.MsToFrames(c.StartMS, c.EndMS, info.FPSNum, info.FPSDen)
		items = append(items, timeline.Item{
			File:       name,
			StartFrame: frames.InFrame,
			EndFrame:   frames.OutFrame,
			OffsetX:    cfg.Position.OffsetX,
			OffsetY:    cfg.Position.OffsetY,
		})

		if err := manifest.Write([]string{
			strconv.Itoa(c.Index),
			strconv.FormatInt(c.StartMS, 10),
			strconv.FormatInt(c.EndMS, 10),
			strconv.FormatInt(frames.InFrame, 10),
			strconv.FormatInt(frames.OutFrame, 10),
			strconv.Itoa(c.AccentIndex),
			strconv.Itoa(c.ChosenLine),
			strconv.Itoa(c.WordsColored),
			name,
		}); err != nil {
			return nil, fmt.Errorf("failed to write manifest row: %w", err)
		}

		log.Debugw("Rendered caption",
			"index", c.Index,
			"in_frame", frames.InFrame,
			"out_frame", frames.OutFrame,
			"accent", c.AccentIndex,
		)
	}
	manifest.Flush()
	if err := manifest.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush manifest: %w", err)
	}

	dims := timeline.Dims{Width: info.Width, Height: info.Height}
	var xmlPath string
	switch opts.Dialect {
	case DialectXMEML:
		xmlPath = filepath.Join(opts.OutDir, "captions.xml")
		err = timeline.WriteXMEML(items, info.FPSNum, info.FPSDen, dims, opts.TrackIndex, opts.OutDir, xmlPath)
	case DialectFCPXML:
		xmlPath = filepath.Join(opts.OutDir, "captions.fcpxml")
		err = timeline.WriteFCPXML(items, info.FPSNum, info.FPSDen, dims, xmlPath)
	default:
		err = fmt.Errorf("unknown timeline dialect %q", opts.Dialect)
	}
	if err != nil {
		return nil, err
	}

	log.Infow("Caption export complete",
		"captions", len(captions),
		"out_dir", opts.OutDir,
		"timeline", xmlPath,
	)

	return &Result{
		Captions:     len(captions),
		XMLPath:      xmlPath,
		ManifestPath: manifestPath,
	}, nil
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	return nil
}

// UniqueDir disambiguates an output directory before any work begins:
// an existing path gets a numeric suffix. There is no locking, so
// concurrent runs against the same path can still collide.
func UniqueDir(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", path, i)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
