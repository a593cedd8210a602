package deckpdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
)

// Result holds an exported PDF and provides helpers for common output
// targets such as raw bytes, base64 encoding, streaming readers and files.
//
// The underlying data is never modified, so its methods may be called any
// number of times.
type Result struct {
	data  []byte
	pages int
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Pages returns the number of pages in the document. In print mode the
// count is read back from the PDF Chrome produced.
func (r *Result) Pages() int {
	return r.pages
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648).
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the PDF content.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
// Failures wrap [ErrSinkFailure].
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	if err := os.WriteFile(path, r.data, perm); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkFailure, err)
	}
	return nil
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
