package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var ErrTooFewPoints = errors.New("export: need at least two points")

type SVGOptions struct {
	Width, Height int
	Stroke        string
	Title         string
	// Marker draws a vertical line at this x value when set, e.g. ice onset.
	Marker *float64
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 300, Stroke: "#00ccff"}
}

// SeriesSVG writes y against x as an SVG line chart. A dashed zero line is
// drawn when the data crosses zero.
func SeriesSVG(w io.Writer, x, y []float64, opts SVGOptions) error {
	n := min(len(x), len(y))
	if n < 2 {
		return ErrTooFewPoints
	}

	minX, maxX := span(x[:n])
	minY, maxY := span(y[:n])
	padY := (maxY - minY) * 0.1
	minY, maxY = minY-padY, maxY+padY

	width, height := float64(opts.Width), float64(opts.Height)
	px := func(v float64) float64 { return (v - minX) / (maxX - minX) * width }
	py := func(v float64) float64 { return height - (v-minY)/(maxY-minY)*height }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height)

	if opts.Title != "" {
		fmt.Fprintf(&sb, `<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">%s</text>
`, escape(opts.Title))
	}
	if minY < 0 && maxY > 0 {
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, py(0), width, py(0))
	}
	if opts.Marker != nil {
		mx := px(*opts.Marker)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#88ccff" stroke-dasharray="2 3"/>
`, mx, mx, height)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, opts.Stroke)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", px(x[i]), py(y[i]))
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func span(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
