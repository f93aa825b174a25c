// Package tmplfmt provides configuration and file discovery for the tmplfmt
// template tasks.
package tmplfmt

import (
	"os"
	"path/filepath"
)

// Root returns the project root: the nearest ancestor of the working
// directory containing .git, or the working directory itself.
func Root() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if root, ok := findGitRoot(wd); ok {
		return root, nil
	}
	return wd, nil
}

func findGitRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// FromRoot returns a path relative to root, or root itself if no elements are given.
func FromRoot(root string, elem ...string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}

const (
	// DirName is the name of the tmplfmt directory at the project root.
	DirName = ".tmplfmt"
	// ToolsDirName is the name of the tools subdirectory.
	ToolsDirName = "tools"
)

// FromToolsDir returns a path relative to the .tmplfmt/tools directory of root.
func FromToolsDir(root string, elem ...string) string {
	return FromRoot(root, append([]string{DirName, ToolsDirName}, elem...)...)
}
