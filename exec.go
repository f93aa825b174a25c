package tmplfmt

import (
	"context"
	"os"
	"os/exec"
	"runtime"
)

// Windows is the runtime.GOOS value for Windows.
const Windows = "windows"

// BinaryName returns name with the platform executable suffix.
func BinaryName(name string) string {
	if runtime.GOOS == Windows {
		return name + ".exe"
	}
	return name
}

// Command creates an exec.Cmd whose stderr goes to os.Stderr.
// Callers decide where stdout goes.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	return cmd
}
