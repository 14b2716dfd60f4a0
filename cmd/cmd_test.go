package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		outlineNotes = false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "slidedeck dev\n" {
		t.Errorf("version output = %q", out)
	}
}

func TestOutline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	manifest := `
title: Review
slides:
  - section: Intro
    notes: Greet everyone.
    body: "# Welcome"
  - body: "## Results"
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "outline", "--notes", path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Review\n\n" +
		"01 • Intro — Welcome\n    Greet everyone.\n" +
		"02 • Results\n    —\n"
	if out != want {
		t.Errorf("outline =\n%s\nwant\n%s", out, want)
	}
}

func TestOutlineMissingDeck(t *testing.T) {
	_, err := run(t, "outline", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading deck") {
		t.Errorf("err = %v", err)
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	logger, err := newLogger("warn")
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug enabled at warn level")
	}
}
