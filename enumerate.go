package deckpdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Enumerate reads the slide count from the live deck and sizes every
// slide's fragment steps. It does not change what the deck displays.
func Enumerate(ctx context.Context, d Deck) ([]Slide, error) {
	total, err := d.TotalSlides(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting slides: %w", err)
	}
	if total <= 0 {
		return nil, ErrNoSlides
	}

	slides := make([]Slide, total)
	for i := range slides {
		indices, err := d.FragmentIndices(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("reading fragments of slide %d: %w", i, err)
		}
		slides[i] = Slide{Index: i, FragmentCount: countFragmentGroups(indices)}
	}
	return slides, nil
}

// countFragmentGroups returns the number of reveal steps for a slide given
// the group index of each fragment element. Elements that share an index
// reveal together; elements without one reveal on their own.
func countFragmentGroups(indices []string) int {
	groups := make(map[string]struct{}, len(indices))
	loose := 0
	for _, idx := range indices {
		idx = strings.TrimSpace(idx)
		if idx == "" {
			loose++
			continue
		}
		groups[fragmentKey(idx)] = struct{}{}
	}
	if len(groups) == 0 {
		return len(indices)
	}
	return len(groups) + loose
}

// fragmentKey maps an index attribute to its group the way the browser
// reads it: the leading integer, so "1", "01" and "1.0" are one group.
// Values with no leading integer group by their text.
func fragmentKey(idx string) string {
	end := 0
	if end < len(idx) && (idx[end] == '+' || idx[end] == '-') {
		end++
	}
	digits := end
	for end < len(idx) && idx[end] >= '0' && idx[end] <= '9' {
		end++
	}
	if end == digits {
		return idx
	}
	n, err := strconv.Atoi(idx[:end])
	if err != nil {
		return idx
	}
	return strconv.Itoa(n)
}

// TotalPages returns the number of pages the slides will produce.
func TotalPages(slides []Slide) int {
	n := 0
	for _, s := range slides {
		n += s.Pages()
	}
	return n
}
