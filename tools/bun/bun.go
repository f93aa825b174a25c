// Package bun provides bun (JavaScript runtime & package manager) integration.
// Bun installs npm-distributed formatters such as js-beautify.
package bun

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fredrikaverpil/tmplfmt"
)

// Name is the binary name for bun.
const Name = "bun"

// renovate: datasource=github-releases depName=oven-sh/bun extractVersion=^bun-v(?<version>.*)$
const Version = "1.3.6"

const (
	darwin = "darwin"
	linux  = "linux"
	arm64  = "arm64"
)

// Binary returns the path bun is installed to under root.
func Binary(root string) string {
	return filepath.Join(tmplfmt.FromToolsDir(root, Name, Version, "bin"), tmplfmt.BinaryName(Name))
}

// Install ensures bun is available under root and returns its path.
func Install(ctx context.Context, root string) (string, error) {
	binary := Binary(root)
	if _, err := os.Stat(binary); err == nil {
		return binary, nil
	}

	url := fmt.Sprintf(
		"https://github.com/oven-sh/bun/releases/download/bun-v%s/bun-%s.zip",
		Version,
		platformArch(runtime.GOOS, runtime.GOARCH),
	)
	if err := tmplfmt.DownloadZip(ctx, url, filepath.Dir(binary), filepath.Base(binary)); err != nil {
		return "", fmt.Errorf("install bun %s: %w", Version, err)
	}
	return binary, nil
}

// InstallPackage installs an npm package into installDir using bun.
// The package should include a version, e.g. "js-beautify@1.15.4".
func InstallPackage(ctx context.Context, root, installDir, pkg string) error {
	binary, err := Install(ctx, root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return err
	}
	cmd := tmplfmt.Command(ctx, binary, "install", "--cwd", installDir, pkg)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("bun install %s: %w", pkg, err)
	}
	return nil
}

// BinaryPath returns the path to a binary installed by bun in the given directory.
// On Windows, it appends .exe to the binary name.
func BinaryPath(installDir, binaryName string) string {
	return filepath.Join(installDir, "node_modules", ".bin", tmplfmt.BinaryName(binaryName))
}

func platformArch(goos, goarch string) string {
	switch goos {
	case darwin:
		if goarch == arm64 {
			return "darwin-aarch64"
		}
		return "darwin-x64"
	case linux:
		if goarch == arm64 {
			return "linux-aarch64"
		}
		return "linux-x64"
	case tmplfmt.Windows:
		return "windows-x64"
	default:
		return fmt.Sprintf("%s-%s", goos, goarch)
	}
}
