// Command tmplfmt runs the template tasks of a project.
//
// Usage:
//
//	go run ./cmd/tmplfmt [flags] [tasks]
//
// Run with -h to list the flags and tasks. Without a task the default task runs.
package main

import (
	"fmt"
	"os"

	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"

	"github.com/fredrikaverpil/tmplfmt"
	"github.com/fredrikaverpil/tmplfmt/tasks"
)

func main() {
	root, err := tmplfmt.Root()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := tmplfmt.LoadConfig(tmplfmt.FromRoot(root, tmplfmt.ConfigFileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// boot drives goyek.DefaultFlow, so the registry is built on it here and nowhere else.
	tasks.New(goyek.DefaultFlow, cfg, root)
	boot.Main()
}
