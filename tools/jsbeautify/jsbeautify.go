// Package jsbeautify provides js-beautify (html-beautify) integration.
// js-beautify is installed via bun into a local directory.
package jsbeautify

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fredrikaverpil/tmplfmt"
	"github.com/fredrikaverpil/tmplfmt/tools/bun"
)

// Name is the binary name for the HTML beautifier.
const Name = "html-beautify"

// Package is the npm package providing Name.
const Package = "js-beautify"

// renovate: datasource=npm depName=js-beautify
const Version = "1.15.4"

// InstallDir returns the directory js-beautify is installed into under root.
func InstallDir(root string) string {
	return tmplfmt.FromToolsDir(root, Package, Version)
}

// Binary returns the path to html-beautify under root.
func Binary(root string) string {
	return bun.BinaryPath(InstallDir(root), Name)
}

// Install ensures html-beautify is available under root.
func Install(ctx context.Context, root string) error {
	if _, err := os.Stat(Binary(root)); err == nil {
		return nil
	}
	return bun.InstallPackage(ctx, root, InstallDir(root), Package+"@"+Version)
}

// Args returns the html-beautify arguments formatting path.
func Args(indentChar string, indentSize int, path string) []string {
	return []string{
		"--indent-size", strconv.Itoa(indentSize),
		"--indent-char", indentChar,
		path,
	}
}

// Formatter runs the html-beautify installed under Root.
type Formatter struct {
	Root       string
	IndentChar string
	IndentSize int
}

// Format beautifies the file at path and returns the result.
// html-beautify reads the file itself, so src is unused.
func (f Formatter) Format(ctx context.Context, path, _ string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := tmplfmt.Command(ctx, Binary(f.Root), Args(f.IndentChar, f.IndentSize, path)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", Name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", Name, err)
	}
	return stdout.String(), nil
}
