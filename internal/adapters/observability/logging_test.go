package observability

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "warn")

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"message":"kept"`) {
		t.Fatalf("expected JSON warn line, got %s", out)
	}
}

func TestNewLogger_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "loud")

	l.Debug().Msg("debug")
	l.Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"message":"debug"`) {
		t.Fatalf("debug should be filtered at info: %s", out)
	}
	if !strings.Contains(out, `"message":"info"`) {
		t.Fatalf("missing info line: %s", out)
	}
}
