package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	deckpdf "github.com/porticus-lab/go-deck-pdf"
	"github.com/porticus-lab/go-deck-pdf/internal/config"
)

// exportDeck runs one export with the resolved configuration.
var exportDeck = func(ctx context.Context, cfg *config.Config) (*deckpdf.Result, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, deckpdf.WithLogger(logger))
	return deckpdf.Export(ctx, cfg.DeckURL(), opts...)
}

// export [output]: capture the deck served at --url (or REVEAL_HOST:REVEAL_PORT).
func exportCmd() *cobra.Command {
	var (
		configPath string
		deckURL    string
		mode       string
		width      int
		height     int
		noSandbox  bool
		download   bool
		chromePath string
	)
	cmd := &cobra.Command{
		Use:   "export [output.pdf]",
		Short: "Export a running presentation to PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if len(args) == 1 {
				cfg.Output = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("url") {
				cfg.URL = deckURL
			}
			if flags.Changed("mode") {
				cfg.Mode = mode
			}
			if flags.Changed("width") {
				cfg.Viewport.Width = width
			}
			if flags.Changed("height") {
				cfg.Viewport.Height = height
			}
			if flags.Changed("chrome") {
				cfg.Browser.ChromePath = chromePath
			}
			cfg.Browser.NoSandbox = cfg.Browser.NoSandbox || noSandbox
			cfg.Browser.AutoDownload = cfg.Browser.AutoDownload || download

			if _, err := deckpdf.ParseMode(cfg.Mode); err != nil {
				return err
			}

			res, err := exportDeck(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			logger.Info("deckpdf: writing", "path", cfg.Output, "pages", res.Pages())
			if err := res.WriteToFile(cfg.Output, 0o644); err != nil {
				return err
			}
			logger.Info("deckpdf: done")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVar(&deckURL, "url", "", "presentation URL (default http://$REVEAL_HOST:$REVEAL_PORT/)")
	f.StringVar(&mode, "mode", "capture", "capture (one page per fragment step) or print")
	f.IntVar(&width, "width", 0, "viewport width in CSS pixels")
	f.IntVar(&height, "height", 0, "viewport height in CSS pixels")
	f.BoolVar(&noSandbox, "no-sandbox", false, "disable the Chrome sandbox (needed as root)")
	f.BoolVar(&download, "download", false, "download Chromium if none is installed")
	f.StringVar(&chromePath, "chrome", "", "path to the Chrome executable")
	return cmd
}
