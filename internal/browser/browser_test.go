package browser

import (
	"errors"
	"os/exec"
	"testing"
)

func TestOpen_AddsScheme(t *testing.T) {
	var got string
	orig := command
	t.Cleanup(func() { command = orig })
	command = func(_, url string) (*exec.Cmd, error) {
		got = url
		return exec.Command("true"), nil
	}

	if err := Open("github.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://github.com" {
		t.Errorf("expected https scheme to be added, got %q", got)
	}

	if err := Open("http://example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://example.com" {
		t.Errorf("expected URL unchanged, got %q", got)
	}
}

func TestCommand_Platforms(t *testing.T) {
	for _, goos := range []string{"darwin", "linux", "windows"} {
		cmd, err := command(goos, "https://x")
		if err != nil || cmd == nil {
			t.Errorf("%s: expected a command, got err=%v", goos, err)
		}
	}

	if _, err := command("plan9", "https://x"); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}
