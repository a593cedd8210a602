package deckpdf

import (
	"log/slog"
	"time"
)

// exporterConfig holds internal configuration for an Exporter.
type exporterConfig struct {
	chromePath      string
	autoDownload    bool
	timeout         time.Duration
	loadTimeout     time.Duration
	noSandbox       bool
	headless        string
	viewport        Viewport
	slideSettle     time.Duration
	fragmentSettle  time.Duration
	transparent     bool
	keepTransitions bool
	mode            Mode
	logger          *slog.Logger
}

func defaultConfig() exporterConfig {
	return exporterConfig{
		timeout:        10 * time.Minute,
		loadTimeout:    30 * time.Second,
		headless:       "new",
		viewport:       DefaultViewport(),
		slideSettle:    300 * time.Millisecond,
		fragmentSettle: 600 * time.Millisecond,
		mode:           ModeCapture,
		logger:         slog.New(slog.DiscardHandler),
	}
}

// Option configures an [Exporter].
type Option func(*exporterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *exporterConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload fetches a compatible Chromium build when no explicit
// path is configured. The binary is cached between runs.
func WithAutoDownload() Option {
	return func(c *exporterConfig) {
		c.autoDownload = true
	}
}

// WithTimeout sets the maximum duration for a whole export, load included.
// Defaults to 10 minutes. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *exporterConfig) {
		c.timeout = d
	}
}

// WithLoadTimeout bounds how long the initial page load may take to become
// network-idle with the presentation ready. Defaults to 30 seconds.
func WithLoadTimeout(d time.Duration) Option {
	return func(c *exporterConfig) {
		if d > 0 {
			c.loadTimeout = d
		}
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *exporterConfig) {
		c.noSandbox = true
	}
}

// WithViewport sets the capture size in CSS pixels. Output pages use the
// same dimensions. Invalid sizes fall back to [DefaultViewport].
func WithViewport(v Viewport) Option {
	return func(c *exporterConfig) {
		c.viewport = v.resolved()
	}
}

// WithSettle sets the fixed waits applied after a slide jump and after each
// fragment reveal. Negative values are treated as zero.
func WithSettle(slide, fragment time.Duration) Option {
	return func(c *exporterConfig) {
		c.slideSettle = max(slide, 0)
		c.fragmentSettle = max(fragment, 0)
	}
}

// WithTransparentBackground captures frames without the default white page
// background.
func WithTransparentBackground() Option {
	return func(c *exporterConfig) {
		c.transparent = true
	}
}

// WithKeepTransitions leaves the deck's slide transitions enabled. By
// default they are switched off before traversal so jumps land immediately.
func WithKeepTransitions() Option {
	return func(c *exporterConfig) {
		c.keepTransitions = true
	}
}

// WithMode selects capture or print mode. Defaults to [ModeCapture].
func WithMode(m Mode) Option {
	return func(c *exporterConfig) {
		c.mode = m
	}
}

// WithLogger sets the logger used for progress reporting. By default
// nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *exporterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
