package render

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontResolver locates a parsed font for a configured family. The
// rasterizer falls back to the built-in face when resolution fails, so
// implementations may simply report an error for unknown families.
type FontResolver interface {
	Resolve(family string) (*sfnt.Font, error)
}

var (
	builtinOnce sync.Once
	builtinFont *sfnt.Font
)

// Builtin returns the embedded Go Bold face used when no host font
// matches. It never fails: the embedded font data is known-good.
func Builtin() *sfnt.Font {
	builtinOnce.Do(func() {
		f, err := opentype.Parse(gobold.TTF)
		if err != nil {
			panic("render: embedded gobold font failed to parse: " + err.Error())
		}
		builtinFont = f
	})
	return builtinFont
}

// BuiltinResolver always resolves to the embedded face. Tests use it to
// render without touching the host filesystem.
type BuiltinResolver struct{}

func (BuiltinResolver) Resolve(string) (*sfnt.Font, error) {
	return Builtin(), nil
}

// FSResolver scans host font directories for a family match.
type FSResolver struct {
	Dirs []string
}

func NewFSResolver() *FSResolver {
	home, _ := os.UserHomeDir()
	return &FSResolver{
		Dirs: []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(home, "Library", "Fonts"),
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"),
		},
	}
}

// file name suffixes in preference order; upright bold and regular
// variants win over anything else
var preferredSuffixes = []string{
	"-bold.ttf", "-bold.otf",
	"-regular.ttf", "-regular.otf",
	"-medium.ttf", "-medium.otf",
	"bold.ttf", "bold.otf",
	"regular.ttf", "regular.otf",
	".ttf", ".otf",
}

var avoidPatterns = []string{"italic", "oblique", "light", "thin", "condensed"}

// Resolve walks the configured directories and picks the best upright
// variant whose file name contains the family name.
func (r *FSResolver) Resolve(family string) (*sfnt.Font, error) {
	needle := strings.ToLower(strings.ReplaceAll(family, " ", ""))
	if needle == "" {
		return nil, fmt.Errorf("empty font family")
	}

	var candidates []string
	for _, dir := range r.Dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			name := strings.ToLower(d.Name())
			for _, pattern := range avoidPatterns {
				if strings.Contains(name, pattern) {
					return nil
				}
			}
			flat := strings.ReplaceAll(strings.ReplaceAll(name, " ", ""), "-", "")
			if strings.Contains(flat, needle) {
				candidates = append(candidates, path)
			}
			return nil
		})
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("font family %q not found on host", family)
	}

	chosen := candidates[0]
	for _, suffix := range preferredSuffixes {
		found := ""
		for _, path := range candidates {
			if strings.HasSuffix(strings.ToLower(filepath.Base(path)), suffix) {
				found = path
				break
			}
		}
		if found != "" {
			chosen = found
			break
		}
	}

	data, err := os.ReadFile(chosen)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", chosen, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", chosen, err)
	}
	return f, nil
}
