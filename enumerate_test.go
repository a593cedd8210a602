package deckpdf

import (
	"context"
	"errors"
	"testing"
)

func TestCountFragmentGroups(t *testing.T) {
	tests := []struct {
		name    string
		indices []string
		want    int
	}{
		{"none", nil, 0},
		{"empty slice", []string{}, 0},
		{"each own group", []string{"0", "1", "2"}, 3},
		{"single shared group", []string{"0", "0", "0", "0"}, 1},
		{"mixed groups", []string{"0", "0", "1", "2", "2"}, 3},
		{"sparse indices", []string{"1", "5", "5", "9"}, 3},
		{"no indices", ungrouped(4), 4},
		{"grouped plus loose", []string{"0", "0", "", ""}, 3},
		{"whitespace index", []string{" 1", "1 ", "  "}, 2},
		{"integer spellings", []string{"1", "01", "1.0", "+1"}, 1},
		{"negative and zero", []string{"-1", "0", "00"}, 2},
		{"non-numeric", []string{"a", "a", "b"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countFragmentGroups(tt.indices); got != tt.want {
				t.Errorf("countFragmentGroups(%q) = %d, want %d", tt.indices, got, tt.want)
			}
		})
	}
}

func TestFragmentKey(t *testing.T) {
	tests := map[string]string{
		"1":    "1",
		"01":   "1",
		"1.0":  "1",
		"+3":   "3",
		"-2":   "-2",
		"7px":  "7",
		"x":    "x",
		"-":    "-",
		"0000": "0",
	}
	for in, want := range tests {
		if got := fragmentKey(in); got != want {
			t.Errorf("fragmentKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnumerate(t *testing.T) {
	d := &fakeDeck{slides: [][]string{
		nil,
		{"0", "1", "2"},
		{"0", "0"},
		ungrouped(2),
	}}

	slides, err := Enumerate(context.Background(), d)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want := []Slide{
		{Index: 0, FragmentCount: 0},
		{Index: 1, FragmentCount: 3},
		{Index: 2, FragmentCount: 1},
		{Index: 3, FragmentCount: 2},
	}
	if len(slides) != len(want) {
		t.Fatalf("got %d slides, want %d", len(slides), len(want))
	}
	for i := range want {
		if slides[i] != want[i] {
			t.Errorf("slide %d = %+v, want %+v", i, slides[i], want[i])
		}
	}
	if got := TotalPages(slides); got != 1+4+2+3 {
		t.Errorf("TotalPages = %d, want 10", got)
	}
}

func TestEnumerate_NoNavigation(t *testing.T) {
	d := &fakeDeck{slides: [][]string{{"0"}, {"0", "1"}}}
	if _, err := Enumerate(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	for _, c := range d.calls {
		switch c {
		case "next", "hide":
			t.Errorf("Enumerate changed deck state: %q", c)
		}
		if len(c) > 4 && c[:4] == "jump" {
			t.Errorf("Enumerate changed deck state: %q", c)
		}
	}
}

func TestEnumerate_TotalFails(t *testing.T) {
	d := &fakeDeck{errTotal: ErrRuntimeUnavailable}
	_, err := Enumerate(context.Background(), d)
	if !errors.Is(err, ErrRuntimeUnavailable) {
		t.Fatalf("err = %v, want ErrRuntimeUnavailable", err)
	}
}

func TestEnumerate_Empty(t *testing.T) {
	_, err := Enumerate(context.Background(), &fakeDeck{})
	if !errors.Is(err, ErrNoSlides) {
		t.Fatalf("err = %v, want ErrNoSlides", err)
	}
}

func TestSlidePages(t *testing.T) {
	if got := (Slide{FragmentCount: 0}).Pages(); got != 1 {
		t.Errorf("Pages() = %d, want 1", got)
	}
	if got := (Slide{FragmentCount: 3}).Pages(); got != 4 {
		t.Errorf("Pages() = %d, want 4", got)
	}
}
