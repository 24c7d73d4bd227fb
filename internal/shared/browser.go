package shared

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	getRuntime   = func() string { return runtime.GOOS }
	startCommand = func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	}
)

// browserCommand resolves the command that opens rawURL. $BROWSER wins over the platform default.
func browserCommand(rawURL string) (string, []string, error) {
	if b := strings.Fields(os.Getenv("BROWSER")); len(b) > 0 {
		return b[0], append(b[1:], rawURL), nil
	}
	switch rt := getRuntime(); rt {
	case "darwin":
		return "open", []string{rawURL}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{rawURL}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	default:
		return "", nil, fmt.Errorf("%w: no browser for platform %s", ErrNotImplemented, rt)
	}
}

// NewBrowserOpener returns the function the login command uses to show the consent page.
// Only http and https URLs are opened.
func NewBrowserOpener(logger *log.Logger) func(string) error {
	return func(rawURL string) error {
		u, err := url.Parse(rawURL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return fmt.Errorf("%w: refusing to open %q", ErrInvalidArgument, rawURL)
		}

		name, args, err := browserCommand(rawURL)
		if err != nil {
			return err
		}

		logger.Debug("opening consent page", "command", name, "host", u.Host)
		if err := startCommand(name, args...); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
		return nil
	}
}
