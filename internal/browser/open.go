// Package browser opens pages of the web panel in the operator's browser.
package browser

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// PageURL joins the web panel origin and a page path such as "products" or
// "/tracking". An empty page yields the dashboard.
func PageURL(webURL, page string) (string, error) {
	u, err := url.Parse(strings.TrimRight(webURL, "/"))
	if err != nil {
		return "", fmt.Errorf("browser.PageURL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("browser.PageURL: unsupported scheme %q", u.Scheme)
	}
	page = strings.Trim(strings.TrimSpace(page), "/")
	if page == "" {
		page = "dashboard"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + page
	return u.String(), nil
}

// Open opens the specified URL in the user's browser. $BROWSER, when set,
// takes precedence over the platform default.
func Open(url string) error {
	return command(url).Start()
}

func command(url string) *exec.Cmd {
	if b := os.Getenv("BROWSER"); b != "" {
		return exec.Command(b, url)
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
