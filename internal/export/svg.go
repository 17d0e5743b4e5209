package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

var zoneFill = map[terrain.Type]string{
	terrain.Fairway: "#2e7d32",
	terrain.Rough:   "#1b5e20",
	terrain.Bunker:  "#e6d3a3",
	terrain.Green:   "#66bb6a",
	terrain.Water:   "#1e88e5",
}

var pathStroke = []string{"#ffffff", "#ffeb3b", "#ff7043", "#ab47bc", "#26c6da", "#ec407a"}

// Course is what a plan view needs to know about the ground.
type Course struct {
	Extents terrain.Extents
	Zones   []terrain.Zone
}

// PlanSVG writes a top-down view of the course with one polyline per shot
// path and a dot where each came to rest. Downrange (-z) points up the page.
// scale is pixels per metre.
func PlanSVG(w io.Writer, c Course, scale float64, paths ...[]shot.Sample) error {
	if !(scale > 0) {
		return fmt.Errorf("export: scale must be positive, got %v", scale)
	}
	e := c.Extents
	width := 2 * e.Lateral * scale
	height := (e.Forward + e.Backward) * scale
	// world (x, z) to page
	px := func(x float64) float64 { return (x + e.Lateral) * scale }
	pz := func(z float64) float64 { return (z + e.Forward) * scale }

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, zoneFill[terrain.Fairway])

	for _, z := range c.Zones {
		b := z.Bounds
		x0, x1 := px(max(b.XMin, -e.Lateral)), px(min(b.XMax, e.Lateral))
		z0, z1 := pz(max(b.ZMin, -e.Forward)), pz(min(b.ZMax, e.Backward))
		if x1 <= x0 || z1 <= z0 {
			continue
		}
		fmt.Fprintf(bw, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s</title></rect>
`, x0, z0, x1-x0, z1-z0, zoneFill[z.Type], z.Name)
	}

	fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="3" fill="#ffffff"/>
`, px(0), pz(0))

	for i, path := range paths {
		if len(path) == 0 {
			continue
		}
		stroke := pathStroke[i%len(pathStroke)]
		fmt.Fprintf(bw, `<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, stroke)
		for j, s := range path {
			if j > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%.1f,%.1f", px(s.Position.X()), pz(s.Position.Z()))
		}
		bw.WriteString("\"/>\n")
		rest := path[len(path)-1].Position
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>
`, px(rest.X()), pz(rest.Z()), stroke)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// ProfileSVG writes a side view of each path: height against horizontal
// distance from its first sample.
func ProfileSVG(w io.Writer, width, height int, paths ...[]shot.Sample) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: bad size %dx%d", width, height)
	}

	maxD, maxH := 1.0, 1.0
	for _, path := range paths {
		for _, s := range path {
			maxD = max(maxD, horizontal(path[0], s))
			maxH = max(maxH, s.Position.Y())
		}
	}
	maxD *= 1.05
	maxH *= 1.1
	sx := func(d float64) float64 { return d / maxD * float64(width) }
	sy := func(h float64) float64 { return float64(height) - h/maxH*float64(height) }

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#2e7d32" stroke-width="2"/>
`, width, height, width, height, height, width, height)

	for i, path := range paths {
		if len(path) < 2 {
			continue
		}
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, pathStroke[i%len(pathStroke)])
		for j, s := range path {
			if j > 0 {
				bw.WriteString(" L")
			}
			fmt.Fprintf(bw, "%.1f,%.1f", sx(horizontal(path[0], s)), sy(s.Position.Y()))
		}
		bw.WriteString("\"/>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func horizontal(a, b shot.Sample) float64 {
	return math.Hypot(b.Position.X()-a.Position.X(), b.Position.Z()-a.Position.Z())
}
