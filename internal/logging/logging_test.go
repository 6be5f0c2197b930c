package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{name: "default", verbose: false, wantDebug: false},
		{name: "verbose", verbose: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.verbose)
			log.Debug("scanning folder", zap.String("root", "Oplah A"))
			log.Warn("remote unavailable")
			_ = log.Sync()

			out := buf.String()
			if !strings.Contains(out, "WARN") || !strings.Contains(out, "remote unavailable") {
				t.Errorf("missing warning in %q", out)
			}
			if got := strings.Contains(out, "scanning folder"); got != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v; output %q", got, tt.wantDebug, out)
			}
		})
	}
}

func TestNewFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("wrote report", zap.Int("rows", 3))

	if !strings.Contains(buf.String(), `"rows": 3`) {
		t.Errorf("expected structured field in %q", buf.String())
	}
}
