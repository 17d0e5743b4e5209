package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/golfsim/internal/dynamo"
)

const Default = "symplectic"

var registry = map[string]func() dynamo.Integrator{
	"symplectic": func() dynamo.Integrator { return NewSemiImplicitEuler() },
	"euler":      func() dynamo.Integrator { return NewEuler() },
	"verlet":     func() dynamo.Integrator { return NewVerlet() },
}

func New(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
