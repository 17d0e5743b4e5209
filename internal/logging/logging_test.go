package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"debug", "debug", false},
		{" INFO ", "info", false},
		{"", "info", false},
		{"warning", "warn", false},
		{"error", "error", false},
		{"chatty", "info", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		log, err := New("debug", dev)
		if err != nil {
			t.Fatalf("New(dev=%v): %v", dev, err)
		}
		if !log.Core().Enabled(zap.DebugLevel) {
			t.Errorf("dev=%v: debug should be enabled", dev)
		}
	}
	if _, err := New("loud", false); err == nil {
		t.Error("expected error for bad level")
	}
}

func TestNewTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golfsim.log")
	log, err := NewTo("info", false, path)
	if err != nil {
		t.Fatalf("NewTo: %v", err)
	}
	log.Info("shot saved", zap.String("id", "abc"))
	log.Debug("hidden")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"id":"abc"`) {
		t.Errorf("log missing field: %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug entry written at info level")
	}
}
