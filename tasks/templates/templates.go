// Package templates provides the task that pretty-prints HTML templates in place.
package templates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goyek/goyek/v3"

	"github.com/fredrikaverpil/tmplfmt"
	"github.com/fredrikaverpil/tmplfmt/tools/htmlprettify"
	"github.com/fredrikaverpil/tmplfmt/tools/jsbeautify"
)

// ErrUnformatted is returned by Check when a template is not formatted.
var ErrUnformatted = errors.New("templates are not formatted")

// Formatter pretty-prints one template. path is the file on disk and src
// its current contents.
type Formatter interface {
	Format(ctx context.Context, path, src string) (string, error)
}

// NewFormatter returns the formatter selected by cfg.
func NewFormatter(root string, cfg tmplfmt.TemplatesConfig) (Formatter, error) {
	c := tmplfmt.Config{Templates: cfg}.WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := c.Templates.Options()
	switch c.Templates.Formatter {
	case tmplfmt.FormatterBuiltin:
		return builtin{opts: opts}, nil
	default:
		return jsbeautify.Formatter{Root: root, IndentChar: opts.IndentChar, IndentSize: opts.IndentSize}, nil
	}
}

type builtin struct {
	opts htmlprettify.Options
}

func (b builtin) Format(_ context.Context, _, src string) (string, error) {
	return htmlprettify.Format(src, b.opts)
}

// Result reports the files a pass looked at.
type Result struct {
	// Matched lists every file matching the configured pattern.
	Matched []string
	// Changed lists the files whose formatted contents differ from what was on disk.
	Changed []string
}

// Rewrite formats every template matching cfg inside root and writes the
// result back to the same path. Files already formatted are left untouched.
// The first read, format or write error aborts the pass.
func Rewrite(ctx context.Context, root string, cfg tmplfmt.TemplatesConfig, f Formatter) (Result, error) {
	return run(ctx, root, cfg, f, true)
}

// Check formats every template matching cfg inside root without writing.
// It returns ErrUnformatted if any file would change.
func Check(ctx context.Context, root string, cfg tmplfmt.TemplatesConfig, f Formatter) (Result, error) {
	res, err := run(ctx, root, cfg, f, false)
	if err != nil {
		return res, err
	}
	if len(res.Changed) > 0 {
		rel := make([]string, len(res.Changed))
		for i, path := range res.Changed {
			rel[i] = relPath(root, path)
		}
		return res, fmt.Errorf("%w: %s", ErrUnformatted, strings.Join(rel, ", "))
	}
	return res, nil
}

func run(ctx context.Context, root string, cfg tmplfmt.TemplatesConfig, f Formatter, write bool) (Result, error) {
	var res Result
	c := tmplfmt.Config{Templates: cfg}.WithDefaults()
	if err := c.Validate(); err != nil {
		return res, err
	}
	cfg = c.Templates

	files, err := tmplfmt.Discover(tmplfmt.FromRoot(root, cfg.Dir), cfg.Pattern)
	if err != nil {
		return res, err
	}
	res.Matched = files

	for _, path := range files {
		changed, err := formatFile(ctx, path, f, write)
		if err != nil {
			return res, err
		}
		if changed {
			res.Changed = append(res.Changed, path)
		}
	}
	return res, nil
}

// formatFile formats one file and reports whether its contents changed.
func formatFile(ctx context.Context, path string, f Formatter, write bool) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the configured glob
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	formatted, err := f.Format(ctx, path, string(data))
	if err != nil {
		return false, fmt.Errorf("format %s: %w", path, err)
	}
	if formatted == string(data) {
		return false, nil
	}
	if write {
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return true, nil
}

// Task returns the goyek task that rewrites templates in place.
func Task(root string, cfg tmplfmt.TemplatesConfig) goyek.Task {
	return goyek.Task{
		Name:  "templates",
		Usage: "pretty-print HTML templates in place",
		Action: func(a *goyek.A) {
			f, err := NewFormatter(root, cfg)
			if err != nil {
				a.Fatal(err)
			}
			res, err := Rewrite(a.Context(), root, cfg, f)
			if err != nil {
				a.Fatal(err)
			}
			for _, path := range res.Changed {
				a.Logf("formatted %s", relPath(root, path))
			}
			a.Logf("%d of %d template(s) changed", len(res.Changed), len(res.Matched))
		},
	}
}

// CheckTask returns the goyek task that fails if any template is not formatted.
// The failure message lists the unformatted files.
func CheckTask(root string, cfg tmplfmt.TemplatesConfig) goyek.Task {
	return goyek.Task{
		Name:  "templates-check",
		Usage: "fail if HTML templates are not formatted",
		Action: func(a *goyek.A) {
			f, err := NewFormatter(root, cfg)
			if err != nil {
				a.Fatal(err)
			}
			if _, err := Check(a.Context(), root, cfg, f); err != nil {
				a.Fatal(err)
			}
		},
	}
}

// InstallTask returns the goyek task that installs html-beautify under root.
func InstallTask(root string) goyek.Task {
	return goyek.Task{
		Name:  "install-js-beautify",
		Usage: "install js-beautify via bun",
		Action: func(a *goyek.A) {
			if err := jsbeautify.Install(a.Context(), root); err != nil {
				a.Fatal(err)
			}
		},
	}
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
