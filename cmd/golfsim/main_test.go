package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"drag=0.02", " magnus = 2e-4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["drag"] != 0.02 || got["magnus"] != 2e-4 {
		t.Errorf("parseParams = %v", got)
	}

	for _, bad := range []string{"drag", "drag=fast"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("parseParams(%q) should fail", bad)
		}
	}
}

func TestVec(t *testing.T) {
	v, err := vec("velocity", []float64{1, 2, 3})
	if err != nil || v != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("vec = %v, %v", v, err)
	}
	if _, err := vec("spin", []float64{1, 2}); err == nil {
		t.Error("two components should fail")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("GOLFSIM_TEST_ENV", "")
	if got := envOr("GOLFSIM_TEST_ENV", "def"); got != "def" {
		t.Errorf("empty env: got %q", got)
	}
	t.Setenv("GOLFSIM_TEST_ENV", "set")
	if got := envOr("GOLFSIM_TEST_ENV", "def"); got != "set" {
		t.Errorf("set env: got %q", got)
	}
}
