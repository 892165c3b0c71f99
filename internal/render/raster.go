package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"captionforge/internal/config"
	"captionforge/internal/logging"
	"captionforge/internal/subtitle"
)

// Rasterizer renders caption blocks to transparent RGBA images
// according to the styling config. Font resolution happens once at
// construction; a missing family degrades to the built-in face with a
// warning, never an error.
type Rasterizer struct {
	cfg  *config.Config
	fnt  *sfnt.Font
	log  *logging.Logger
	face map[int]font.Face // size -> face
}

func NewRasterizer(cfg *config.Config, resolver FontResolver, log *logging.Logger) *Rasterizer {
	if log == nil {
		log = logging.Nop()
	}
	if resolver == nil {
		resolver = NewFSResolver()
	}

	fnt, err := resolver.Resolve(cfg.Text.FontFamily)
	if err != nil {
		log.Warnw("Font not found, falling back to built-in face",
			"family", cfg.Text.FontFamily,
			"error", err,
		)
		fnt = Builtin()
	}

	return &Rasterizer{
		cfg:  cfg,
		fnt:  fnt,
		log:  log,
		face: make(map[int]font.Face),
	}
}

// one span of text drawn in a single fill color
type run struct {
	text string
	col  color.NRGBA
}

// Render draws one caption onto a transparent canvas of the given
// pixel size. Coloring decisions must already be assigned on the
// caption. The caller trims and pads the result.
func (r *Rasterizer) Render(c subtitle.Caption, accentHex string, canvasW, canvasH int) (*image.NRGBA, error) {
	fontSize := r.cfg.Text.Size
	if canvasW >= 3840 {
		// fixed legibility doubling for UHD canvases
		fontSize *= 2
	}

	face, err := r.faceFor(fontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	accent, err := ParseHex(accentHex)
	if err != nil {
		return nil, fmt.Errorf("accent color: %w", err)
	}
	base, err := ParseHex(r.cfg.Colors.Base)
	if err != nil {
		return nil, fmt.Errorf("base color: %w", err)
	}
	strokeCol, err := ParseHex(r.cfg.Stroke.Color)
	if err != nil {
		return nil, fmt.Errorf("stroke color: %w", err)
	}

	lines := r.colorRuns(c, accent, base)

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	lineHeight := r.cfg.Text.LineHeight
	if lineHeight == 0 {
		lineHeight = ascent + descent + 10 // simple default leading
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))

	totalHeight := lineHeight * len(lines)
	y := canvasH + r.cfg.Position.OffsetY - totalHeight
	spacing := r.cfg.Text.LetterSpacing

	for _, runs := range lines {
		imgs := make([]*image.NRGBA, len(runs))
		lineWidth := 0
		for i, rn := range runs {
			imgs[i] = r.renderRun(face, rn.text, rn.col, strokeCol, ascent, descent)
			lineWidth += imgs[i].Bounds().Dx()
		}
		lineWidth += spacing * (len(runs) - 1)

		var x int
		switch r.cfg.Text.Alignment {
		case "left":
			x = r.cfg.Render.SafeMargin + r.cfg.Position.OffsetX
		case "right":
			x = canvasW - lineWidth - r.cfg.Render.SafeMargin + r.cfg.Position.OffsetX
		default:
			x = (canvasW-lineWidth)/2 + r.cfg.Position.OffsetX
		}
		for _, img := range imgs {
			rect := image.Rect(x, y, x+img.Bounds().Dx(), y+img.Bounds().Dy())
			draw.Draw(canvas, rect, img, img.Bounds().Min, draw.Over)
			x += img.Bounds().Dx() + spacing
		}
		y += lineHeight
	}

	if r.cfg.Shadow.Opacity > 0 {
		return r.applyShadow(canvas), nil
	}
	return canvas, nil
}

// colorRuns decomposes caption lines into styled spans: a two-line
// caption colors one whole line with the accent, a one-line caption
// colors its trailing words word by word.
func (r *Rasterizer) colorRuns(c subtitle.Caption, accent, base color.NRGBA) [][]run {
	capitalize := capitalizer(r.cfg.Text.Capitalization)

	if len(c.Lines) == 2 {
		out := make([][]run, 2)
		for i, line := range c.Lines {
			col := base
			if i == c.ChosenLine {
				col = accent
			}
			out[i] = []run{{text: capitalize(line), col: col}}
		}
		return out
	}

	words := strings.Fields(capitalize(c.Lines[0]))
	runs := make([]run, len(words))
	for i, w := range words {
		col := base
		if i >= len(words)-c.WordsColored {
			col = accent
		}
		runs[i] = run{text: w, col: col}
	}
	return [][]run{runs}
}

func capitalizer(mode string) func(string) string {
	switch mode {
	case "upper":
		return func(s string) string { return cases.Upper(language.Und).String(s) }
	case "lower":
		return func(s string) string { return cases.Lower(language.Und).String(s) }
	case "title":
		return func(s string) string { return cases.Title(language.Und).String(s) }
	default:
		return func(s string) string { return s }
	}
}

// renderRun draws a single span into its own minimal image: stroke
// passes first, offset over the stroke width in every direction, then
// the fill glyphs on top. Padding keeps the stroke inside the image.
// All runs of one line share ascent/descent so compositing them at a
// common top edge keeps their baselines aligned.
func (r *Rasterizer) renderRun(face font.Face, text string, fill, stroke color.NRGBA, ascent, descent int) *image.NRGBA {
	sw := r.cfg.Stroke.Width
	pad := sw + 2

	bounds, _ := font.BoundString(face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil() + 2*pad
	h := ascent + descent + 2*pad

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	dot := fixed.Point26_6{
		X: fixed.I(pad) - bounds.Min.X,
		Y: fixed.I(pad + ascent),
	}

	if sw > 0 {
		d := font.Drawer{Dst: img, Src: image.NewUniform(stroke), Face: face}
		for dy := -sw; dy <= sw; dy++ {
			for dx := -sw; dx <= sw; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				d.Dot = fixed.Point26_6{
					X: dot.X + fixed.I(dx),
					Y: dot.Y + fixed.I(dy),
				}
				d.DrawString(text)
			}
		}
	}

	d := font.Drawer{Dst: img, Src: image.NewUniform(fill), Face: face, Dot: dot}
	d.DrawString(text)
	return img
}

// applyShadow composites a blurred, alpha-scaled, offset copy of the
// text layer beneath it.
func (r *Rasterizer) applyShadow(text *image.NRGBA) *image.NRGBA {
	shadow := gaussianBlur(text, r.cfg.Shadow.Blur)
	scaleAlpha(shadow, r.cfg.Shadow.Opacity)

	out := image.NewNRGBA(text.Bounds())
	offset := image.Pt(r.cfg.Shadow.X, r.cfg.Shadow.Y)
	draw.Draw(out, shadow.Bounds().Add(offset), shadow, shadow.Bounds().Min, draw.Over)
	draw.Draw(out, text.Bounds(), text, text.Bounds().Min, draw.Over)
	return out
}

func scaleAlpha(img *image.NRGBA, opacityPercent int) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(int(img.Pix[i]) * opacityPercent / 100)
	}
}

func (r *Rasterizer) faceFor(size int) (font.Face, error) {
	if f, ok := r.face[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	r.face[size] = f
	return f, nil
}
