package deckpdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var disableConfigDir sync.Once

// pdfConfig returns a pdfcpu configuration that never touches the user's
// config directory.
func pdfConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	return model.NewDefaultConfiguration()
}

// Assembler collects frames into a multi-page PDF, one page per frame.
//
// Frames are spooled to a temporary directory as they arrive so memory stays
// bounded by a single frame. Every page is the size of the viewport with the
// frame placed at its origin, unscaled. Pages keep append order and are
// never removed.
type Assembler struct {
	vp    Viewport
	dir   string
	files []string
	done  bool
}

// NewAssembler creates an empty document sized by vp. Call [Assembler.Close]
// to remove the spool directory.
func NewAssembler(vp Viewport) (*Assembler, error) {
	dir, err := os.MkdirTemp("", "deckpdf-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating spool directory: %w", ErrSinkFailure, err)
	}
	return &Assembler{vp: vp.resolved(), dir: dir}, nil
}

// Len returns the number of pages appended so far.
func (a *Assembler) Len() int {
	return len(a.files)
}

// AppendPage adds f as the next page. The frame must be a PNG of exactly the
// assembler's viewport.
func (a *Assembler) AppendPage(f Frame) error {
	if a.done {
		return fmt.Errorf("%w: document already finalized", ErrSinkFailure)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(f.PNG))
	if err != nil {
		return fmt.Errorf("%w: decoding frame: %w", ErrSinkFailure, err)
	}
	if format != "png" {
		return fmt.Errorf("%w: frame is %s, want png", ErrSinkFailure, format)
	}
	if cfg.Width != a.vp.Width || cfg.Height != a.vp.Height {
		return fmt.Errorf("%w: frame is %dx%d, want %s", ErrSinkFailure, cfg.Width, cfg.Height, a.vp)
	}

	name := filepath.Join(a.dir, fmt.Sprintf("page-%05d.png", len(a.files)))
	if err := os.WriteFile(name, f.PNG, 0o600); err != nil {
		return fmt.Errorf("%w: spooling page: %w", ErrSinkFailure, err)
	}
	a.files = append(a.files, name)
	return nil
}

// Finalize serializes every appended page, in order, into one PDF.
func (a *Assembler) Finalize() (*Result, error) {
	if a.done {
		return nil, fmt.Errorf("%w: document already finalized", ErrSinkFailure)
	}
	if len(a.files) == 0 {
		return nil, fmt.Errorf("%w: no pages", ErrSinkFailure)
	}
	a.done = true

	conf := pdfConfig()
	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Full

	out := filepath.Join(a.dir, "document.pdf")
	if err := api.ImportImagesFile(a.files, out, imp, conf); err != nil {
		return nil, fmt.Errorf("%w: importing pages: %w", ErrSinkFailure, err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("%w: reading document: %w", ErrSinkFailure, err)
	}

	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: validating document: %w", ErrSinkFailure, err)
	}
	if n != len(a.files) {
		return nil, fmt.Errorf("%w: document has %d pages, appended %d", ErrSinkFailure, n, len(a.files))
	}
	return &Result{data: data, pages: n}, nil
}

// Close removes the spool directory. It is safe to call more than once.
func (a *Assembler) Close() error {
	if a.dir == "" {
		return nil
	}
	err := os.RemoveAll(a.dir)
	a.dir = ""
	return err
}
