// Package repl implements the interactive shell over a table: read a line,
// dispatch it, print the result, repeat.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/castcreator9/rlite/internal/statement"
	"github.com/castcreator9/rlite/internal/table"
)

const prompt = "db> "

// REPL reads commands line by line and executes them against one table.
type REPL struct {
	table *table.Table
	in    *bufio.Scanner
	out   io.Writer
}

// New builds a REPL over t reading from in and writing to out.
func New(t *table.Table, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		table: t,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run loops until .exit or end of input. Statement and execution errors are
// printed and the loop continues; only a read failure ends it early. The
// table is left open either way; closing it is the caller's job.
func (r *REPL) Run() error {
	for {
		fmt.Fprint(r.out, prompt)

		if !r.in.Scan() {
			return r.in.Err()
		}
		input := strings.TrimSpace(r.in.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ".") {
			exit, err := statement.DoMetaCommand(input)
			if exit {
				return nil
			}
			fmt.Fprintln(r.out, err)
			continue
		}

		stmt, err := statement.Prepare(input)
		if err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}

		if err := r.execute(stmt); err != nil {
			fmt.Fprintln(r.out, err)
			continue
		}
		fmt.Fprintln(r.out, "Executed.")
	}
}

func (r *REPL) execute(stmt statement.Statement) error {
	switch stmt.Type {
	case statement.Insert:
		return r.table.Insert(stmt.Row)
	case statement.Select:
		rows, err := r.table.SelectAll()
		if err != nil {
			return err
		}
		for _, rw := range rows {
			fmt.Fprintln(r.out, rw)
		}
		return nil
	default:
		return fmt.Errorf("unhandled statement type: %d", stmt.Type)
	}
}
