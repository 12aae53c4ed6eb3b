package utils

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// browserCommand returns the command that opens url on goos
func browserCommand(goos string, url string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "darwin":
		return "open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform %s", goos)
	}
}

// OpenBrowser opens the given url in a browser
func OpenBrowser(url string) error {
	name, args, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}

	// 15 seconds timeout to open the browser
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("could not open browser, please open %s manually: %w", url, err)
	}
	return nil
}
