// Package tasks provides the unified task entry point for tmplfmt.
// It defines every task on the flow it is given; nothing registers itself.
package tasks

import (
	"github.com/goyek/goyek/v3"

	"github.com/fredrikaverpil/tmplfmt"
	"github.com/fredrikaverpil/tmplfmt/tasks/templates"
)

// Tasks holds all tasks defined on a flow.
type Tasks struct {
	// InstallJSBeautify installs html-beautify via bun. It is nil when the
	// builtin formatter is configured.
	InstallJSBeautify *goyek.DefinedTask

	// Templates pretty-prints the configured templates in place.
	Templates *goyek.DefinedTask

	// TemplatesCheck fails if any template is not formatted.
	TemplatesCheck *goyek.DefinedTask

	// Default runs when no task is named. It does nothing.
	Default *goyek.DefinedTask
}

// New defines the tmplfmt tasks on flow and sets its default task.
// root is the project root the configured template directory is relative to.
func New(flow *goyek.Flow, cfg tmplfmt.Config, root string) *Tasks {
	cfg = cfg.WithDefaults()
	t := &Tasks{}

	var deps goyek.Deps
	if cfg.Templates.Formatter == tmplfmt.FormatterJSBeautify {
		t.InstallJSBeautify = flow.Define(templates.InstallTask(root))
		deps = goyek.Deps{t.InstallJSBeautify}
	}

	task := templates.Task(root, cfg.Templates)
	task.Deps = deps
	t.Templates = flow.Define(task)

	check := templates.CheckTask(root, cfg.Templates)
	check.Deps = deps
	t.TemplatesCheck = flow.Define(check)

	t.Default = flow.Define(goyek.Task{
		Name:  "default",
		Usage: "default task (does nothing)",
	})
	flow.SetDefault(t.Default)

	return t
}
