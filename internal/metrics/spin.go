package metrics

import "github.com/san-kum/golfsim/internal/dynamo"

// SpinRetained is the current spin rate as a fraction of launch spin.
type SpinRetained struct {
	name    string
	initial float64
	current float64
}

func NewSpinRetained() *SpinRetained {
	return &SpinRetained{name: "spin_retained"}
}

func (s *SpinRetained) Name() string { return s.name }

func (s *SpinRetained) Launch(b *dynamo.RigidBody) {
	s.initial = b.Spin.Len()
	s.current = s.initial
}

func (s *SpinRetained) Observe(b *dynamo.RigidBody, t float64) {
	s.current = b.Spin.Len()
}

func (s *SpinRetained) Value() float64 {
	if s.initial == 0 {
		return 0
	}
	return s.current / s.initial
}

func (s *SpinRetained) Reset() {
	s.initial = 0
	s.current = 0
}
