package tasks_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goyek/goyek/v3"

	"github.com/fredrikaverpil/tmplfmt"
	"github.com/fredrikaverpil/tmplfmt/tasks"
)

const unformatted = "<div><p>hi</p></div>"

// builtinConfig selects the in-process formatter so tasks run offline.
func builtinConfig() tmplfmt.Config {
	return tmplfmt.Config{Templates: tmplfmt.TemplatesConfig{Formatter: tmplfmt.FormatterBuiltin}}
}

// newProject creates a project root holding templates/a.html.
func newProject(t *testing.T) (root, file string) {
	t.Helper()
	root = t.TempDir()
	dir := filepath.Join(root, "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file = filepath.Join(dir, "a.html")
	if err := os.WriteFile(file, []byte(unformatted), 0o644); err != nil {
		t.Fatal(err)
	}
	return root, file
}

func TestNew_DefinesTasks(t *testing.T) {
	t.Parallel()

	flow := &goyek.Flow{}
	result := tasks.New(flow, tmplfmt.Config{}, t.TempDir())

	names := make(map[string]bool)
	for _, task := range flow.Tasks() {
		names[task.Name()] = true
	}
	for _, want := range []string{"install-js-beautify", "templates", "templates-check", "default"} {
		if !names[want] {
			t.Errorf("expected %q to be defined, got %v", want, names)
		}
	}

	if flow.Default() == nil || flow.Default().Name() != result.Default.Name() {
		t.Error("default task should be the flow default")
	}
	if len(result.Default.Deps()) != 0 {
		t.Errorf("default task should have no deps, got %d", len(result.Default.Deps()))
	}
	for _, task := range []*goyek.DefinedTask{result.Templates, result.TemplatesCheck} {
		deps := task.Deps()
		if len(deps) != 1 || deps[0].Name() != result.InstallJSBeautify.Name() {
			t.Errorf("%s deps = %v, want [install-js-beautify]", task.Name(), deps)
		}
	}
}

func TestNew_BuiltinFormatterNeedsNoInstall(t *testing.T) {
	t.Parallel()

	flow := &goyek.Flow{}
	result := tasks.New(flow, builtinConfig(), t.TempDir())

	if result.InstallJSBeautify != nil {
		t.Error("InstallJSBeautify should be nil with the builtin formatter")
	}
	for _, task := range flow.Tasks() {
		if task.Name() == "install-js-beautify" {
			t.Error("install-js-beautify should not be defined with the builtin formatter")
		}
	}
	if len(result.Templates.Deps()) != 0 {
		t.Errorf("templates deps = %d, want 0", len(result.Templates.Deps()))
	}
}

func TestNew_FlowsAreIndependent(t *testing.T) {
	t.Parallel()

	// Defining on two flows must not collide, as it would on a global registry.
	first := &goyek.Flow{}
	second := &goyek.Flow{}
	tasks.New(first, builtinConfig(), t.TempDir())
	tasks.New(second, builtinConfig(), t.TempDir())

	if len(first.Tasks()) != 3 || len(second.Tasks()) != 3 {
		t.Errorf("got %d and %d tasks, want 3 each", len(first.Tasks()), len(second.Tasks()))
	}
}

func TestNew_DefaultTaskDoesNothing(t *testing.T) {
	t.Parallel()

	root, file := newProject(t)
	flow := &goyek.Flow{}
	tasks.New(flow, builtinConfig(), root)

	if err := flow.Execute(context.Background(), []string{"default"}); err != nil {
		t.Fatalf("Execute(default) error = %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != unformatted {
		t.Errorf("default task modified a.html: %q", data)
	}
	entries, err := os.ReadDir(filepath.Dir(file))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("default task changed templates/: %d entries", len(entries))
	}
}

func TestNew_TemplatesTaskRewrites(t *testing.T) {
	t.Parallel()

	root, file := newProject(t)
	flow := &goyek.Flow{}
	tasks.New(flow, builtinConfig(), root)

	if err := flow.Execute(context.Background(), []string{"templates"}); err != nil {
		t.Fatalf("Execute(templates) error = %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<div>\n    <p>hi</p>\n</div>\n"; string(data) != want {
		t.Errorf("a.html = %q, want %q", data, want)
	}

	// The check task now passes.
	if err := flow.Execute(context.Background(), []string{"templates-check"}); err != nil {
		t.Errorf("Execute(templates-check) error = %v", err)
	}
}

func TestNew_UnknownTask(t *testing.T) {
	t.Parallel()

	flow := &goyek.Flow{}
	tasks.New(flow, builtinConfig(), t.TempDir())

	if err := flow.Execute(context.Background(), []string{"deploy"}); err == nil {
		t.Error("Execute(deploy) error = nil, want an error for an undefined task")
	}
}
