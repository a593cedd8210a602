package deckpdf

import (
	"fmt"
	"log/slog"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser returns a cached Chromium build, downloading it first if
// needed. Builds live in ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser
// (Windows).
func resolveBrowser(logger *slog.Logger) (string, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("deckpdf: downloading browser: %w", err)
	}
	logger.Debug("deckpdf: using downloaded browser", "path", path)
	return path, nil
}
