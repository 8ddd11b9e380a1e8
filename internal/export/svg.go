package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/crtsim/internal/engine"
)

// Palette cycles through these colors, one per track.
var Palette = []string{"#00ff66", "#ffb000", "#33ccff", "#ff5f87", "#d7d7ff"}

// TracksToSVG draws the tube outline, deflection plates, detection plane and
// every track path. The tube is scaled to fit width x height with the
// forward axis running left to right and +Y pointing up.
func TracksToSVG(g engine.Geometry, tracks []engine.Track, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	sx := scaler{
		length: positive(g.TubeLength, 1),
		height: positive(g.TubeHeight, 1),
		w:      float64(width),
		h:      float64(height),
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// tube
	x0, y0 := sx.point(0, g.TubeHeight)
	x1, y1 := sx.point(g.TubeLength, 0)
	fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#444444" stroke-width="1"/>
`, x0, y0, x1-x0, y1-y0)

	// plates
	center := g.Centerline()
	for _, py := range []float64{center + g.PlateSpacing/2, center - g.PlateSpacing/2} {
		ax, ay := sx.point(g.DeflectionStart, py)
		bx, by := sx.point(g.DeflectionEnd(), py)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888888" stroke-width="3"/>
`, ax, ay, bx, by)
	}

	// detection plane
	dx, dTop := sx.point(g.DetectionX, g.TubeHeight)
	_, dBottom := sx.point(g.DetectionX, 0)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#5f5fff" stroke-width="2" stroke-dasharray="4 3"/>
`, dx, dTop, dx, dBottom)

	for i, t := range tracks {
		if len(t.Path) < 2 {
			continue
		}
		color := Palette[i%len(Palette)]
		sb.WriteString(`<path fill="none" stroke="`)
		sb.WriteString(color)
		sb.WriteString(`" stroke-width="1.5" d="M`)
		for j, p := range t.Path {
			x, y := sx.point(p.X, p.Y)
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		ix, iy := sx.point(g.DetectionX, t.Impact)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, ix, iy, color)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

type scaler struct {
	length, height float64
	w, h           float64
}

func (s scaler) point(x, y float64) (float64, float64) {
	return x / s.length * s.w, s.h - y/s.height*s.h
}

func positive(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
