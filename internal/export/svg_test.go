package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSeriesSVG(t *testing.T) {
	var buf bytes.Buffer
	onset := 1.0
	opts := DefaultSVGOptions()
	opts.Title = "S <post-sink>"
	opts.Marker = &onset

	if err := SeriesSVG(&buf, []float64{0, 1, 2}, []float64{-0.01, 0.0, 0.02}, opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if strings.Count(out, " L") != 2 {
		t.Errorf("expected 3 path points, got %q", out)
	}
	if !strings.Contains(out, "stroke-dasharray=\"4 4\"") {
		t.Error("expected zero line for data crossing zero")
	}
	if !strings.Contains(out, "&lt;post-sink&gt;") {
		t.Error("title should be escaped")
	}
}

func TestSeriesSVGFlat(t *testing.T) {
	var buf bytes.Buffer
	if err := SeriesSVG(&buf, []float64{0, 1}, []float64{5, 5}, DefaultSVGOptions()); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Error("flat series produced NaN coordinates")
	}
}

func TestSeriesSVGTooShort(t *testing.T) {
	err := SeriesSVG(&bytes.Buffer{}, []float64{0}, []float64{1}, DefaultSVGOptions())
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
}
