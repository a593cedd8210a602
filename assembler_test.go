package deckpdf

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"os"
	"testing"
)

func newTestAssembler(t *testing.T, vp Viewport) *Assembler {
	t.Helper()
	a, err := NewAssembler(vp)
	if err != nil {
		t.Fatalf("NewAssembler: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAssembler_PagesMatchFrames(t *testing.T) {
	vp := Viewport{Width: 64, Height: 36}
	a := newTestAssembler(t, vp)

	colors := []color.Color{color.White, color.Black, color.RGBA{R: 200, A: 255}}
	for i, c := range colors {
		if err := a.AppendPage(Frame{Slide: i, PNG: testPNG(t, vp.Width, vp.Height, c)}); err != nil {
			t.Fatalf("AppendPage %d: %v", i, err)
		}
	}
	if a.Len() != len(colors) {
		t.Errorf("Len() = %d, want %d", a.Len(), len(colors))
	}

	res, err := a.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !bytes.HasPrefix(res.Bytes(), []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}
	if res.Pages() != len(colors) {
		t.Errorf("Pages() = %d, want %d", res.Pages(), len(colors))
	}

	info, err := Inspect(res.Bytes())
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Pages != len(colors) {
		t.Errorf("document has %d pages, want %d", info.Pages, len(colors))
	}
	for i, d := range info.Dims {
		if math.Abs(d.Width-float64(vp.Width)) > 0.5 || math.Abs(d.Height-float64(vp.Height)) > 0.5 {
			t.Errorf("page %d is %.1fx%.1f, want %s", i+1, d.Width, d.Height, vp)
		}
	}
}

func TestAssembler_RejectsWrongSize(t *testing.T) {
	a := newTestAssembler(t, Viewport{Width: 32, Height: 18})

	err := a.AppendPage(Frame{PNG: testPNG(t, 18, 32, color.White)})
	if !errors.Is(err, ErrSinkFailure) {
		t.Fatalf("err = %v, want ErrSinkFailure", err)
	}
	if a.Len() != 0 {
		t.Errorf("Len() = %d after rejected frame, want 0", a.Len())
	}
}

func TestAssembler_RejectsNonPNG(t *testing.T) {
	a := newTestAssembler(t, Viewport{Width: 32, Height: 18})
	if err := a.AppendPage(Frame{PNG: []byte("not an image")}); !errors.Is(err, ErrSinkFailure) {
		t.Fatalf("err = %v, want ErrSinkFailure", err)
	}
}

func TestAssembler_FinalizeEmpty(t *testing.T) {
	a := newTestAssembler(t, Viewport{Width: 32, Height: 18})
	if _, err := a.Finalize(); !errors.Is(err, ErrSinkFailure) {
		t.Fatalf("err = %v, want ErrSinkFailure", err)
	}
}

func TestAssembler_AppendOnly(t *testing.T) {
	vp := Viewport{Width: 32, Height: 18}
	a := newTestAssembler(t, vp)
	frame := Frame{PNG: testPNG(t, vp.Width, vp.Height, color.White)}

	if err := a.AppendPage(frame); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Finalize(); err != nil {
		t.Fatal(err)
	}
	if err := a.AppendPage(frame); !errors.Is(err, ErrSinkFailure) {
		t.Errorf("AppendPage after Finalize: err = %v, want ErrSinkFailure", err)
	}
	if _, err := a.Finalize(); !errors.Is(err, ErrSinkFailure) {
		t.Errorf("second Finalize: err = %v, want ErrSinkFailure", err)
	}
}

func TestAssembler_CloseRemovesSpool(t *testing.T) {
	a, err := NewAssembler(Viewport{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	dir := a.dir
	if err := a.AppendPage(Frame{PNG: testPNG(t, 8, 8, color.White)}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("spool directory still exists: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestInspect_NotPDF(t *testing.T) {
	if _, err := Inspect([]byte("hello")); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}
