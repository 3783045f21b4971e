package facts

import (
	"os"
	"os/user"
	"runtime"

	"github.com/doeshing/olsh/internal/domain"
)

// Collect gathers host facts once. Values that cannot be determined fall
// back to "unknown" rather than failing startup.
func Collect() domain.FactBag {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	username := os.Getenv("USER")
	if username == "" {
		if u, err := user.Current(); err == nil {
			username = u.Username
		} else {
			username = "unknown"
		}
	}

	return domain.NewFactBag(
		runtime.GOOS,
		runtime.GOARCH,
		shell,
		runtime.NumCPU(),
		hostname,
		username,
	)
}
