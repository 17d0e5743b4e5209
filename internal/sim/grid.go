package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/golfsim/internal/terrain"
)

var ErrNoCandidate = errors.New("sim: no launch met the objective")

// Axis is one swept launch parameter.
type Axis struct {
	Name   string
	Values []float64
}

// Range builds an axis from..to inclusive in steps of step.
func Range(name string, from, to, step float64) (Axis, error) {
	if !(step > 0) || to < from || math.IsInf(to-from, 0) {
		return Axis{}, fmt.Errorf("axis %s: bad range %v:%v:%v", name, from, to, step)
	}
	var l Launch
	if err := l.Set(name, 0); err != nil {
		return Axis{}, err
	}
	a := Axis{Name: name}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	for i := 0; i < n; i++ {
		a.Values = append(a.Values, from+float64(i)*step)
	}
	return a, nil
}

// ParseAxis reads "name=from:to:step" or "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, vals, ok := strings.Cut(s, "=")
	if !ok {
		return Axis{}, fmt.Errorf("axis %q: want name=from:to:step", s)
	}
	name = strings.TrimSpace(name)

	if parts := strings.Split(vals, ":"); len(parts) == 3 {
		var v [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Axis{}, fmt.Errorf("axis %s: %w", name, err)
			}
			v[i] = f
		}
		return Range(name, v[0], v[1], v[2])
	}

	var l Launch
	if err := l.Set(name, 0); err != nil {
		return Axis{}, err
	}
	a := Axis{Name: name}
	for _, p := range strings.Split(vals, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %s: %w", name, err)
		}
		a.Values = append(a.Values, f)
	}
	return a, nil
}

// Objective ranks results by one metric. Results whose outcome is not in
// Outcomes are skipped when Outcomes is set.
type Objective struct {
	Metric   string
	Maximize bool
	Outcomes []terrain.Type
}

func (o Objective) score(r *Result) (float64, bool) {
	if len(o.Outcomes) > 0 && !slices.Contains(o.Outcomes, r.Outcome) {
		return 0, false
	}
	v, ok := r.Value(o.Metric)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	if o.Maximize {
		return -v, true
	}
	return v, true
}

// GridSearch sweeps every combination of its axes around a base launch.
type GridSearch struct {
	base Launch
	axes []Axis
}

func NewGridSearch(base Launch, axes ...Axis) *GridSearch {
	return &GridSearch{base: base, axes: axes}
}

// Launches expands the grid. The first axis varies slowest.
func (g *GridSearch) Launches() ([]Launch, error) {
	var out []Launch
	if err := g.expand(0, g.base, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *GridSearch) expand(depth int, current Launch, out *[]Launch) error {
	if depth == len(g.axes) {
		*out = append(*out, current)
		return nil
	}
	axis := g.axes[depth]
	for _, v := range axis.Values {
		next := current
		if err := next.Set(axis.Name, v); err != nil {
			return err
		}
		if err := g.expand(depth+1, next, out); err != nil {
			return err
		}
	}
	return nil
}

// Search runs the whole grid on e and returns the best result along with
// every result in grid order.
func (g *GridSearch) Search(ctx context.Context, e *Ensemble, obj Objective) (*Result, []*Result, error) {
	launches, err := g.Launches()
	if err != nil {
		return nil, nil, err
	}
	results, err := e.Run(ctx, launches)
	if err != nil {
		return nil, nil, err
	}

	var best *Result
	bestScore := math.Inf(1)
	for _, r := range results {
		if s, ok := obj.score(r); ok && s < bestScore {
			best, bestScore = r, s
		}
	}
	if best == nil {
		return nil, results, ErrNoCandidate
	}
	return best, results, nil
}
