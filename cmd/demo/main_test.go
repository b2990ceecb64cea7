package main

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		if err != nil {
			t.Errorf("parseLevel(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
	if _, err := parseLevel("loud"); err == nil {
		t.Error("parseLevel(loud): expected error")
	}
}
