package logger

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     logrus.Level
	}{
		{"debug", "DEBUG", logrus.DebugLevel},
		{"info", "INFO", logrus.InfoLevel},
		{"warn lowercase", "warn", logrus.WarnLevel},
		{"error", "ERROR", logrus.ErrorLevel},
		{"invalid defaults to info", "VERBOSE", logrus.InfoLevel},
		{"empty defaults to info", "", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.logLevel)
			if got := GetLogger().GetLevel(); got != tt.want {
				t.Errorf("Init(%q) set level %v, want %v", tt.logLevel, got, tt.want)
			}
		})
	}
}

func TestGetLogger_InitializesOnDemand(t *testing.T) {
	log = nil
	if GetLogger() == nil {
		t.Fatal("Expected lazy initialization")
	}
	if GetLogger().GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected default INFO level, got %v", GetLogger().GetLevel())
	}
}

func TestRedactSecret(t *testing.T) {
	if got := RedactSecret(""); got != "absent" {
		t.Errorf("Expected absent marker, got %q", got)
	}

	secret := "gcp_live_0123456789abcdef"
	got := RedactSecret(secret)
	if strings.Contains(got, secret) {
		t.Fatalf("Secret leaked into redacted form: %q", got)
	}
	if got != "present(len=25)" {
		t.Errorf("Expected length marker, got %q", got)
	}
}
