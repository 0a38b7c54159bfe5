// Package config loads editor settings from TOML or YAML files.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]. Keys under [keys] replace the bindings of the command they
// name and leave the other commands alone:
//
//	[canvas]
//	block_width = 120
//
//	[theme]
//	fill = "#c0d6e4"
//
//	[keys]
//	add_block = ["b"]
//	delete = ["<delete>", "x"]
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/scene"
)

// Config holds all editor settings.
type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Canvas   CanvasConfig   `toml:"canvas" yaml:"canvas"`
	Theme    ThemeConfig    `toml:"theme" yaml:"theme"`
	Keys     KeysConfig     `toml:"keys" yaml:"keys" validate:"dive,dive,required"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`

	// Unknown lists TOML keys that matched no setting.
	Unknown []string `toml:"-" yaml:"-"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title" validate:"required"`
	Width  int    `toml:"width" yaml:"width" validate:"min=100,max=8192"`
	Height int    `toml:"height" yaml:"height" validate:"min=100,max=8192"`
	TPS    int    `toml:"tps" yaml:"tps" validate:"min=1,max=240"`
}

// CanvasConfig controls block geometry and interaction.
type CanvasConfig struct {
	BlockWidth     float64 `toml:"block_width" yaml:"block_width" validate:"gt=0"`
	BlockHeight    float64 `toml:"block_height" yaml:"block_height" validate:"gt=0"`
	DragMove       bool    `toml:"drag_move" yaml:"drag_move"`
	AdditiveSelect bool    `toml:"additive_select" yaml:"additive_select"`
	Debug          bool    `toml:"debug" yaml:"debug"`
}

// ThemeConfig holds colors as "#rrggbb" strings and stroke sizes.
type ThemeConfig struct {
	Background    string  `toml:"background" yaml:"background" validate:"hexcolor"`
	Fill          string  `toml:"fill" yaml:"fill" validate:"hexcolor"`
	Border        string  `toml:"border" yaml:"border" validate:"hexcolor"`
	BorderFocused string  `toml:"border_focused" yaml:"border_focused" validate:"hexcolor"`
	Link          string  `toml:"link" yaml:"link" validate:"hexcolor"`
	Radius        float64 `toml:"radius" yaml:"radius" validate:"gte=0"`
	BorderWidth   float64 `toml:"border_width" yaml:"border_width" validate:"gte=0"`
	LinkWidth     float64 `toml:"link_width" yaml:"link_width" validate:"gt=0"`
}

// KeysConfig maps command names to their bindings: a single character
// other than "?", or a named key such as "<delete>".
type KeysConfig map[string][]string

// TerminalConfig controls the terminal adapter.
type TerminalConfig struct {
	CellWidth  float64 `toml:"cell_width" yaml:"cell_width" validate:"gt=0"`
	CellHeight float64 `toml:"cell_height" yaml:"cell_height" validate:"gt=0"`
	AltScreen  bool    `toml:"alt_screen" yaml:"alt_screen"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "Block One", Width: 600, Height: 400, TPS: 60},
		Canvas: CanvasConfig{
			BlockWidth:     scene.DefaultBlockWidth,
			BlockHeight:    scene.DefaultBlockHeight,
			DragMove:       true,
			AdditiveSelect: true,
		},
		Theme: ThemeConfig{
			Background:    "#ffffff",
			Fill:          "#bfbfbf",
			Border:        "#646464",
			BorderFocused: "#000000",
			Link:          "#000000",
			Radius:        5,
			BorderWidth:   0.5,
			LinkWidth:     1,
		},
		Keys:     defaultKeys(),
		Terminal: TerminalConfig{CellWidth: 10, CellHeight: 20, AltScreen: true},
	}
}

func defaultKeys() KeysConfig {
	keys := KeysConfig{}
	for _, b := range scene.DefaultKeymap().Bindings() {
		name := b.Command.String()
		keys[name] = append(keys[name], b.Input)
	}
	return keys
}

// Dir returns the configuration directory, $XDG_CONFIG_HOME/blockone or
// ~/.config/blockone.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "blockone")
}

// DefaultPath returns the path of the default config file.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads and validates the config file at path. The format is chosen by
// extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or the default path when path is empty. A missing
// default file is not an error and yields Default().
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultPath())
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "stat config")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		for _, key := range md.Undecoded() {
			cfg.Unknown = append(cfg.Unknown, key.String())
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	return nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// Keymap builds the scene keymap from the [keys] section.
func (c *Config) Keymap() (scene.Keymap, error) {
	k := scene.NewKeymap()
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		cmd, ok := scene.ParseCommand(name)
		if !ok {
			return scene.Keymap{}, errors.New(errors.ErrCodeInvalidKeymap, "unknown command %q in [keys]", name)
		}
		for _, binding := range c.Keys[name] {
			if err := k.Bind(binding, cmd); err != nil {
				return scene.Keymap{}, err
			}
		}
	}
	return k, nil
}

// Options converts the config into scene options.
func (c *Config) Options() ([]scene.Option, error) {
	k, err := c.Keymap()
	if err != nil {
		return nil, err
	}
	st, err := c.Theme.Style()
	if err != nil {
		return nil, err
	}
	return []scene.Option{
		scene.WithKeymap(k),
		scene.WithStyle(st),
		scene.WithBlockSize(geom.Size{W: c.Canvas.BlockWidth, H: c.Canvas.BlockHeight}),
		scene.WithDragMove(c.Canvas.DragMove),
		scene.WithAdditiveSelect(c.Canvas.AdditiveSelect),
		scene.WithDebug(c.Canvas.Debug),
	}, nil
}
