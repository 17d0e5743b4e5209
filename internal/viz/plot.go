package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/shot"
)

// track is a trajectory flattened onto the launch line: along is the
// distance downrange, side the signed offset to the right, up the height.
type track struct {
	along, side, up []float64
}

func flatten(samples []shot.Sample) track {
	var tr track
	if len(samples) == 0 {
		return tr
	}
	origin := samples[0].Position
	dir := mgl64.Vec3{0, 0, -1}
	for _, s := range samples {
		if h := (mgl64.Vec3{s.Velocity.X(), 0, s.Velocity.Z()}); h.Len() > 1e-9 {
			dir = h.Normalize()
			break
		}
	}
	right := mgl64.Vec3{-dir.Z(), 0, dir.X()}

	for _, s := range samples {
		d := s.Position.Sub(origin)
		tr.along = append(tr.along, d.Dot(dir))
		tr.side = append(tr.side, d.Dot(right))
		tr.up = append(tr.up, s.Position.Y())
	}
	return tr
}

// resample returns ys at n evenly spaced points of xs, interpolating
// linearly. xs should be nondecreasing; a ball rolling back is only
// approximated.
func resample(xs, ys []float64, n int) []float64 {
	hi := xs[0]
	for _, x := range xs {
		hi = max(hi, x)
	}
	lo := xs[0]
	out := make([]float64, n)
	for k := range out {
		target := lo + (hi-lo)*float64(k)/float64(max(1, n-1))
		i := sort.Search(len(xs), func(i int) bool { return xs[i] >= target })
		switch {
		case i == 0:
			out[k] = ys[0]
		case i >= len(xs):
			out[k] = ys[len(ys)-1]
		default:
			span := xs[i] - xs[i-1]
			f := 0.0
			if span > 0 {
				f = (target - xs[i-1]) / span
			}
			out[k] = ys[i-1] + f*(ys[i]-ys[i-1])
		}
	}
	return out
}

// PlotTrajectory renders height against distance downrange.
func PlotTrajectory(samples []shot.Sample, width, height int) string {
	if len(samples) < 2 {
		return Subtle.Render("no trajectory")
	}
	tr := flatten(samples)
	heights := resample(tr.along, tr.up, width)
	return asciigraph.Plot(heights,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("height (m) over %.0f m downrange", tr.along[len(tr.along)-1])))
}

// PlotLateral renders the signed offset from the launch line against distance
// downrange. Positive is right of the target line.
func PlotLateral(samples []shot.Sample, width, height int) string {
	if len(samples) < 2 {
		return Subtle.Render("no trajectory")
	}
	tr := flatten(samples)
	side := resample(tr.along, tr.side, width)
	return asciigraph.Plot(side,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption("lateral (m), right positive"))
}

// DrawSideView draws the trajectory from the side onto c, with the ground
// line at y = 0.
func DrawSideView(c *Canvas, samples []shot.Sample) {
	c.Clear()
	tr := flatten(samples)
	v := Viewport{MinX: 0, MaxX: 50, MinY: 0, MaxY: 10}
	for i := range tr.along {
		v = v.Fit(tr.along[i], tr.up[i])
	}
	v.MaxY *= 1.1

	c.Line(v, v.MinX, 0, v.MaxX, 0)
	for i := 1; i < len(tr.along); i++ {
		c.Line(v, tr.along[i-1], tr.up[i-1], tr.along[i], tr.up[i])
	}
}

// ResultCard renders a finished shot. flight may carry extra metric values
// from the stepper.
func ResultCard(r shot.Result, flight map[string]float64) string {
	var b strings.Builder
	b.WriteString(Title.Render("SHOT RESULT") + "  " + OutcomeStyle(r.Outcome).Render(r.Outcome.String()) + "\n\n")
	b.WriteString(row("Distance", fmt.Sprintf("%.1f m", r.Distance)) + "\n")
	b.WriteString(row("Carry", fmt.Sprintf("%.1f m", r.Carry)) + "\n")
	b.WriteString(row("Apex", fmt.Sprintf("%.1f m", r.Apex)) + "\n")
	b.WriteString(row("Hang time", fmt.Sprintf("%.2f s", r.HangTime)) + "\n")
	b.WriteString(row("Ball speed", fmt.Sprintf("%.1f m/s", r.Speed)) + "\n")
	b.WriteString(row("Launch", fmt.Sprintf("%.1f°", r.LaunchAngle)) + "\n")

	if v, ok := flight[metrics.NameLateral]; ok {
		b.WriteString(row("Lateral", formatLateral(v)) + "\n")
	}
	if v, ok := flight[metrics.NameBounces]; ok {
		b.WriteString(row("Bounces", fmt.Sprintf("%.0f", v)) + "\n")
	}
	if v, ok := flight[metrics.NameSpinRetained]; ok {
		b.WriteString(row("Spin kept", fmt.Sprintf("%.0f%%", v*100)) + "\n")
	}
	if r.Ball != "" {
		b.WriteString(row("Ball", r.Ball) + "\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func formatLateral(v float64) string {
	switch {
	case math.Abs(v) < 0.05:
		return "on line"
	case v > 0:
		return fmt.Sprintf("%.1f m right", v)
	}
	return fmt.Sprintf("%.1f m left", -v)
}
