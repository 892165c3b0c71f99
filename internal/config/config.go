package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"gopkg.in/yaml.v3"
)

// text styling options
type TextConfig struct {
	FontFamily     string `yaml:"fontFamily"`
	Size           int    `yaml:"size"`
	Weight         int    `yaml:"weight"`
	LetterSpacing  int    `yaml:"letterSpacing"`
	Alignment      string `yaml:"alignment"`      // left|center|right
	Capitalization string `yaml:"capitalization"` // as-is|upper|lower|title
	LineHeight     int    `yaml:"lineHeight"`     // 0 = derive from font metrics
}

// base color plus the accent rotation
type ColorsConfig struct {
	Base                string   `yaml:"base"`
	Accents             []string `yaml:"accents"`
	StartingAccentIndex int      `yaml:"startingAccentIndex"` // 0-based
}

type StrokeConfig struct {
	Color string `yaml:"color"`
	Width int    `yaml:"width"`
}

// drop shadow; rendered only when Opacity > 0
type ShadowConfig struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Color   string `yaml:"color"`
	Opacity int    `yaml:"opacity"` // percent, 0-100
	Spread  int    `yaml:"spread"`
	Blur    int    `yaml:"blur"`
}

type PositionConfig struct {
	OffsetX int `yaml:"offsetX"`
	OffsetY int `yaml:"offsetY"`
}

type RenderConfig struct {
	SafeMargin int `yaml:"safeMargin"`
}

type OutputConfig struct {
	TrackIndex int `yaml:"trackIndex"`
}

// full styling configuration consumed by the pipeline
type Config struct {
	Text     TextConfig     `yaml:"text"`
	Colors   ColorsConfig   `yaml:"colors"`
	Stroke   StrokeConfig   `yaml:"stroke"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Position PositionConfig `yaml:"position"`
	Render   RenderConfig   `yaml:"render"`
	Output   OutputConfig   `yaml:"output"`
}

func Default() *Config {
	return &Config{
		Text: TextConfig{
			FontFamily:     "Inter",
			Size:           78,
			Weight:         700,
			LetterSpacing:  0,
			Alignment:      "center",
			Capitalization: "as-is",
		},
		Colors: ColorsConfig{
			Base:                "#FFFFFF",
			Accents:             []string{"#FF4D4D", "#FFD24D", "#4DFF88", "#4DB8FF"},
			StartingAccentIndex: 0,
		},
		Stroke: StrokeConfig{Color: "#000000", Width: 6},
		Shadow: ShadowConfig{X: 2, Y: 2, Color: "#000000", Opacity: 60, Spread: 2, Blur: 8},
		Position: PositionConfig{
			OffsetX: 0,
			OffsetY: -120,
		},
		Render: RenderConfig{SafeMargin: 16},
		Output: OutputConfig{TrackIndex: 2},
	}
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)

var validAlignments = map[string]struct{}{
	"left": {}, "center": {}, "right": {},
}

var validCapitalizations = map[string]struct{}{
	"as-is": {}, "upper": {}, "lower": {}, "title": {},
}

// Validate reports the first structural problem with the configuration.
// Fewer than one accent color is fatal: the accent assigner cannot run.
func (c *Config) Validate() error {
	if c.Text.FontFamily == "" {
		return fmt.Errorf("text.fontFamily must not be empty")
	}
	if c.Text.Size <= 0 {
		return fmt.Errorf("text.size must be positive, got %d", c.Text.Size)
	}
	if c.Text.LineHeight < 0 {
		return fmt.Errorf("text.lineHeight must not be negative, got %d", c.Text.LineHeight)
	}
	if _, ok := validAlignments[c.Text.Alignment]; !ok {
		return fmt.Errorf("text.alignment %q: use left, center, or right", c.Text.Alignment)
	}
	if _, ok := validCapitalizations[c.Text.Capitalization]; !ok {
		return fmt.Errorf("text.capitalization %q: use as-is, upper, lower, or title", c.Text.Capitalization)
	}
	if len(c.Colors.Accents) < 1 {
		return fmt.Errorf("colors.accents: at least one accent color is required")
	}
	if c.Colors.StartingAccentIndex < 0 {
		return fmt.Errorf("colors.startingAccentIndex must not be negative, got %d", c.Colors.StartingAccentIndex)
	}
	if !hexColorPattern.MatchString(c.Colors.Base) {
		return fmt.Errorf("colors.base %q is not a hex color", c.Colors.Base)
	}
	for i, accent := range c.Colors.Accents {
		if !hexColorPattern.MatchString(accent) {
			return fmt.Errorf("colors.accents[%d] %q is not a hex color", i, accent)
		}
	}
	if !hexColorPattern.MatchString(c.Stroke.Color) {
		return fmt.Errorf("stroke.color %q is not a hex color", c.Stroke.Color)
	}
	if c.Stroke.Width < 0 {
		return fmt.Errorf("stroke.width must not be negative, got %d", c.Stroke.Width)
	}
	if c.Shadow.Opacity < 0 || c.Shadow.Opacity > 100 {
		return fmt.Errorf("shadow.opacity must be within 0-100, got %d", c.Shadow.Opacity)
	}
	if c.Shadow.Blur < 0 {
		return fmt.Errorf("shadow.blur must not be negative, got %d", c.Shadow.Blur)
	}
	if c.Render.SafeMargin < 0 {
		return fmt.Errorf("render.safeMargin must not be negative, got %d", c.Render.SafeMargin)
	}
	return nil
}

// DefaultPath returns the platform-specific config file location.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to locate home directory: %w", err)
			}
			base = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(base, "Captionforge", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".captionforge", "config.yaml"), nil
}

// Ensure writes the default config at the fixed path if it does not
// exist yet, or unconditionally when overwrite is set.
func Ensure(overwrite bool) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("failed to serialize default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// Load reads the config from the fixed path, creating it with defaults
// first when missing.
func Load() (*Config, error) {
	path, err := Ensure(false)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
