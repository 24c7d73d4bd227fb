package shared

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func stubBrowser(t *testing.T, goos string, startErr error) *[]string {
	t.Helper()
	var got []string
	prevRuntime, prevStart := getRuntime, startCommand
	getRuntime = func() string { return goos }
	startCommand = func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return startErr
	}
	t.Cleanup(func() { getRuntime, startCommand = prevRuntime, prevStart })
	return &got
}

func TestNewBrowserOpener(t *testing.T) {
	const consent = "https://accounts.spotify.com/authorize?client_id=abc"

	t.Run("platform defaults", func(t *testing.T) {
		tc := []struct {
			goos string
			want string
		}{
			{goos: "darwin", want: "open " + consent},
			{goos: "linux", want: "xdg-open " + consent},
			{goos: "windows", want: "rundll32 url.dll,FileProtocolHandler " + consent},
		}
		for _, tt := range tc {
			t.Run(tt.goos, func(t *testing.T) {
				t.Setenv("BROWSER", "")
				got := stubBrowser(t, tt.goos, nil)

				if err := NewBrowserOpener(log.New(&bytes.Buffer{}))(consent); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if strings.Join(*got, " ") != tt.want {
					t.Errorf("expected %q, got %q", tt.want, strings.Join(*got, " "))
				}
			})
		}
	})

	t.Run("BROWSER overrides the platform", func(t *testing.T) {
		t.Setenv("BROWSER", "firefox --new-window")
		got := stubBrowser(t, "linux", nil)

		if err := NewBrowserOpener(log.New(&bytes.Buffer{}))(consent); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if want := "firefox --new-window " + consent; strings.Join(*got, " ") != want {
			t.Errorf("expected %q, got %q", want, strings.Join(*got, " "))
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		t.Setenv("BROWSER", "")
		got := stubBrowser(t, "plan9", nil)

		err := NewBrowserOpener(log.New(&bytes.Buffer{}))(consent)
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("expected ErrNotImplemented, got %v", err)
		}
		if len(*got) != 0 {
			t.Errorf("expected no command, got %v", *got)
		}
	})

	t.Run("refuses non-web URLs", func(t *testing.T) {
		got := stubBrowser(t, "linux", nil)

		for _, u := range []string{"file:///etc/passwd", "javascript:alert(1)", "not a url", ""} {
			if err := NewBrowserOpener(log.New(&bytes.Buffer{}))(u); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("%q: expected ErrInvalidArgument, got %v", u, err)
			}
		}
		if len(*got) != 0 {
			t.Errorf("expected no command, got %v", *got)
		}
	})

	t.Run("logs and wraps start failures", func(t *testing.T) {
		t.Setenv("BROWSER", "")
		stubBrowser(t, "linux", errors.New("exec: not found"))

		var buf bytes.Buffer
		logger := log.New(&buf)
		logger.SetLevel(log.DebugLevel)

		err := NewBrowserOpener(logger)(consent)
		if err == nil || !strings.Contains(err.Error(), "failed to open browser") {
			t.Errorf("expected wrapped start error, got %v", err)
		}
		if !strings.Contains(buf.String(), "accounts.spotify.com") {
			t.Errorf("expected consent host in log, got %q", buf.String())
		}
	})
}
