// Package config loads export settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	deckpdf "github.com/porticus-lab/go-deck-pdf"
)

// Environment variables naming the presentation server.
const (
	EnvHost = "REVEAL_HOST"
	EnvPort = "REVEAL_PORT"
)

// Config is the top-level export configuration.
type Config struct {
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	URL    string `yaml:"url"` // overrides host and port when set
	Output string `yaml:"output"`
	Mode   string `yaml:"mode"` // capture | print

	Viewport       ViewportConfig `yaml:"viewport"`
	SlideSettle    time.Duration  `yaml:"slide_settle"`
	FragmentSettle time.Duration  `yaml:"fragment_settle"`
	LoadTimeout    time.Duration  `yaml:"load_timeout"`
	Timeout        time.Duration  `yaml:"timeout"`

	Transparent     bool `yaml:"transparent"`
	KeepTransitions bool `yaml:"keep_transitions"`

	Browser BrowserConfig `yaml:"browser"`
}

// ViewportConfig is the capture size in CSS pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BrowserConfig controls how Chrome is found and launched.
type BrowserConfig struct {
	ChromePath   string `yaml:"chrome_path"`
	NoSandbox    bool   `yaml:"no_sandbox"`
	AutoDownload bool   `yaml:"auto_download"`
}

// Default returns the built-in configuration.
func Default() *Config {
	vp := deckpdf.DefaultViewport()
	return &Config{
		Host:           "localhost",
		Port:           "8000",
		Output:         "exported.pdf",
		Mode:           "capture",
		Viewport:       ViewportConfig{Width: vp.Width, Height: vp.Height},
		SlideSettle:    300 * time.Millisecond,
		FragmentSettle: 600 * time.Millisecond,
		LoadTimeout:    30 * time.Second,
		Timeout:        10 * time.Minute,
	}
}

// Load reads the YAML file at path over the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return cfg, nil
}

// ApplyEnv overrides host and port from REVEAL_HOST and REVEAL_PORT.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		c.Port = v
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		c.Viewport = d.Viewport
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = d.LoadTimeout
	}
}

// DeckURL returns the presentation address.
func (c *Config) DeckURL() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{Scheme: "http", Host: net.JoinHostPort(c.Host, c.Port), Path: "/"}
	return u.String()
}

// Options converts the configuration to exporter options.
func (c *Config) Options() ([]deckpdf.Option, error) {
	mode, err := deckpdf.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	opts := []deckpdf.Option{
		deckpdf.WithMode(mode),
		deckpdf.WithViewport(deckpdf.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}),
		deckpdf.WithSettle(c.SlideSettle, c.FragmentSettle),
		deckpdf.WithLoadTimeout(c.LoadTimeout),
		deckpdf.WithTimeout(c.Timeout),
	}
	if c.Transparent {
		opts = append(opts, deckpdf.WithTransparentBackground())
	}
	if c.KeepTransitions {
		opts = append(opts, deckpdf.WithKeepTransitions())
	}
	if c.Browser.ChromePath != "" {
		opts = append(opts, deckpdf.WithChromePath(c.Browser.ChromePath))
	}
	if c.Browser.NoSandbox {
		opts = append(opts, deckpdf.WithNoSandbox())
	}
	if c.Browser.AutoDownload {
		opts = append(opts, deckpdf.WithAutoDownload())
	}
	return opts, nil
}
