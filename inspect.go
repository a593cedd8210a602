package deckpdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageDim is the size of a document page in PDF points.
type PageDim struct {
	Width  float64
	Height float64
}

// DocumentInfo summarizes a PDF.
type DocumentInfo struct {
	Pages int
	Dims  []PageDim
}

// Inspect validates data as a PDF and reports its page geometry.
func Inspect(data []byte) (DocumentInfo, error) {
	conf := pdfConfig()
	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("deckpdf: reading page dimensions: %w", err)
	}
	info := DocumentInfo{Pages: len(dims), Dims: make([]PageDim, len(dims))}
	for i, d := range dims {
		info.Dims[i] = PageDim{Width: d.Width, Height: d.Height}
	}
	return info, nil
}
