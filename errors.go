package deckpdf

import "errors"

// Sentinel errors returned by the library.
//
// Failures are wrapped around one of these so callers can classify them with
// [errors.Is] while still seeing the underlying cause.
var (
	// ErrClosed is returned when attempting to use a closed [Exporter].
	ErrClosed = errors.New("deckpdf: exporter is closed")

	// ErrRuntimeUnavailable is returned when the browser or the presentation's
	// navigation API cannot be reached, or a query against it throws.
	ErrRuntimeUnavailable = errors.New("deckpdf: presentation runtime unavailable")

	// ErrLoadTimeout is returned when the deck never becomes network-idle and
	// ready within the load timeout.
	ErrLoadTimeout = errors.New("deckpdf: page load timed out")

	// ErrSinkFailure is returned when the document cannot be serialized or
	// persisted.
	ErrSinkFailure = errors.New("deckpdf: writing document failed")

	// ErrNoSlides is returned when the presentation reports zero slides.
	ErrNoSlides = errors.New("deckpdf: presentation has no slides")
)
