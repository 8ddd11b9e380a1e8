package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logrus.Level
		wantErr bool
	}{
		{"info", logrus.InfoLevel, false},
		{"DEBUG", logrus.DebugLevel, false},
		{" warn ", logrus.WarnLevel, false},
		{"trace", logrus.InfoLevel, true},
		{"", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerIncludesCaller(t *testing.T) {
	var buf bytes.Buffer
	SetLevel(logrus.DebugLevel)
	defer SetLevel(logrus.InfoLevel)

	log := NewLogger(&buf).WithField("component", "test")
	log.Debug("hello")

	out := buf.String()
	if !strings.Contains(out, "log_test.go") {
		t.Errorf("expected caller file in output, got %q", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component field in output, got %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLevel(logrus.WarnLevel)
	defer SetLevel(logrus.InfoLevel)

	NewLogger(&buf).Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("expected no output below level, got %q", buf.String())
	}
}

func TestSetLevelUpdatesExistingLoggers(t *testing.T) {
	var buf bytes.Buffer
	SetLevel(logrus.InfoLevel)
	log := NewLogger(&buf)

	SetLevel(logrus.DebugLevel)
	defer SetLevel(logrus.InfoLevel)

	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("expected debug output after SetLevel, got %q", buf.String())
	}
}
