package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestSanitizer_RedactsProviderKeys(t *testing.T) {
	s := NewSanitizer()
	cases := []string{
		"sk-or-v1-e0ebf036bfbadba916a961a5bd7e8302aabbccdd00112233",
		"Bearer abcdefghijklmnopqrstuvwx",
		`api_key: "abcdefghijklmnopqrst1234"`,
	}
	for _, input := range cases {
		if got := s.Sanitize(input); strings.Contains(got, "abcdefghij") || strings.Contains(got, "e0ebf036") {
			t.Errorf("Sanitize(%q) = %q, credential not redacted", input, got)
		}
	}
}

func TestSanitizer_LeavesPlainTextAlone(t *testing.T) {
	s := NewSanitizer()
	input := "loading configuration from ./config"
	if got := s.Sanitize(input); got != input {
		t.Errorf("Sanitize(%q) = %q, want unchanged", input, got)
	}
}

func TestLogger_SanitizesAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "text", Output: &buf})

	logger.Info("probing model", "api_key", "sk-or-v1-e0ebf036bfbadba916a961a5bd7e8302aabbccdd00112233")

	out := buf.String()
	if strings.Contains(out, "e0ebf036") {
		t.Errorf("API key leaked into log output: %q", out)
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Errorf("expected redaction marker in output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
