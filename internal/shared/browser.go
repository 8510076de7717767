package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommand returns the platform launcher invocation for a URL.
func browserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	}
	return "", nil, fmt.Errorf("unsupported platform: %s", goos)
}

// OpenBrowser launches the default system browser at the given URL
// without waiting for it to exit.
func OpenBrowser(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}

	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
