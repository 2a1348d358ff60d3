package views

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTheme is returned when a theme file cannot be parsed.
var ErrInvalidTheme = errors.New("views: invalid theme")

//go:embed theme.yaml
var defaultThemeYAML []byte

// Theme is the look of the shell. It is read once at startup and passed into
// Document explicitly.
type Theme struct {
	Name        string      `yaml:"name"`
	Brand       string      `yaml:"brand"`
	Mode        string      `yaml:"mode"` // light or dark
	Accent      string      `yaml:"accent"`
	Stylesheets []string    `yaml:"stylesheets"`
	Scripts     []string    `yaml:"scripts"`
	Head        HeadDefault `yaml:"head"`
}

// HeadDefault holds the document head values pages do not override.
type HeadDefault struct {
	Description string   `yaml:"description"`
	Languages   []string `yaml:"languages"`
}

// DefaultTheme returns the embedded theme.
func DefaultTheme() Theme {
	t, err := ParseTheme(defaultThemeYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// LoadTheme reads a theme file. An empty path returns DefaultTheme.
// Fields missing from the file keep their default values.
func LoadTheme(path string) (Theme, error) {
	if path == "" {
		return DefaultTheme(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	return parseOnto(DefaultTheme(), data)
}

// ParseTheme parses a YAML theme document.
func ParseTheme(data []byte) (Theme, error) {
	return parseOnto(Theme{}, data)
}

func parseOnto(base Theme, data []byte) (Theme, error) {
	if err := yaml.Unmarshal(data, &base); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	switch base.Mode {
	case "", "light", "dark":
	default:
		return Theme{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidTheme, base.Mode)
	}
	if base.Mode == "" {
		base.Mode = "light"
	}
	return base, nil
}
