package common

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// OpenURL opens rawURL in the system browser. Anything that is not an
// absolute http(s) URL is ignored.
func OpenURL(rawURL string) tea.Cmd {
	if !IsSafeExternalURL(rawURL) {
		return nil
	}
	return func() tea.Msg {
		_ = exec.Command(opener(), rawURL).Start()
		return nil
	}
}

func opener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	}
	return "xdg-open"
}

// IsSafeExternalURL reports whether raw is an absolute http or https URL.
func IsSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
