// Command rlite opens a table file and runs the interactive shell over it.
package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/castcreator9/rlite/internal/config"
	"github.com/castcreator9/rlite/internal/repl"
	"github.com/castcreator9/rlite/internal/table"
)

var cli struct {
	Path     string `arg:"" help:"Path to the table file (created if absent)." type:"path"`
	MaxPages int    `help:"Maximum number of pages the table may hold." default:"100"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("rlite"),
		kong.Description("A minimal single-file record store with a line-oriented shell."),
	)

	cfg := &config.Config{MaxPages: cli.MaxPages}
	cfg.FillDefaults()

	t, err := table.Open(cli.Path, cfg.MaxPages)
	if err != nil {
		log.Fatalf("failed to open table: %v", err)
	}

	if err := repl.New(t, os.Stdin, os.Stdout).Run(); err != nil {
		_ = t.Close()
		log.Fatalf("failed to read input: %v", err)
	}

	// A flush failure partway through teardown is unrecoverable; the file
	// may hold a partially written page, so stop the process here.
	if err := t.Close(); err != nil {
		log.Fatalf("failed to close table: %v", err)
	}
}
