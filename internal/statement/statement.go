// Package statement turns shell input lines into typed requests. The storage
// core never sees text; everything it consumes is parsed and length-checked
// here first.
package statement

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/castcreator9/rlite/internal/row"
)

// Type identifies the kind of statement.
type Type int

const (
	// Insert appends one row to the table
	Insert Type = iota
	// Select scans every row in order
	Select
)

var (
	// ErrUnrecognizedStatement is returned for a line whose first word is
	// not a known statement keyword.
	ErrUnrecognizedStatement = errors.New("unrecognized statement")
	// ErrInvalidInput is returned when an insert is missing fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidID is returned when the id is not an unsigned integer.
	ErrInvalidID = errors.New("id has to be a positive integer")
	// ErrNegativeID is returned when the id is negative.
	ErrNegativeID = errors.New("id has to be a positive integer, got a negative number")
	// ErrUsernameTooLong is returned when the username exceeds its field width.
	ErrUsernameTooLong = errors.New("username too long")
	// ErrEmailTooLong is returned when the email exceeds its field width.
	ErrEmailTooLong = errors.New("email too long")
	// ErrUnrecognizedCommand is returned for an unknown meta-command.
	ErrUnrecognizedCommand = errors.New("unrecognized command")
)

// Statement is a parsed request. Row is populated for inserts only, already
// zero-padded to the fixed field widths.
type Statement struct {
	Type Type
	Row  row.Row
}

// Prepare parses one input line.
//
// Grammar:
//
//	insert <id> <username> <email>
//	select
func Prepare(input string) (Statement, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Statement{}, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}

	switch parts[0] {
	case "select":
		return Statement{Type: Select}, nil
	case "insert":
		return prepareInsert(input, parts[1:])
	default:
		return Statement{}, fmt.Errorf("%w: %q in %q", ErrUnrecognizedStatement, parts[0], input)
	}
}

func prepareInsert(input string, args []string) (Statement, error) {
	if len(args) < 3 {
		return Statement{}, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	idArg, username, email := args[0], args[1], args[2]

	if strings.HasPrefix(idArg, "-") {
		return Statement{}, fmt.Errorf("%w: %q in %q", ErrNegativeID, idArg, input)
	}
	id, err := strconv.ParseUint(idArg, 10, 32)
	if err != nil {
		return Statement{}, fmt.Errorf("%w: %q in %q", ErrInvalidID, idArg, input)
	}

	// One byte per character: field limits are byte limits.
	if len(username) > row.UsernameSize {
		return Statement{}, fmt.Errorf("%w: %q is %d bytes, maximum is %d",
			ErrUsernameTooLong, username, len(username), row.UsernameSize)
	}
	if len(email) > row.EmailSize {
		return Statement{}, fmt.Errorf("%w: %q is %d bytes, maximum is %d",
			ErrEmailTooLong, email, len(email), row.EmailSize)
	}

	return Statement{
		Type: Insert,
		Row:  row.New(uint32(id), username, email),
	}, nil
}

// DoMetaCommand handles a line starting with '.'. It reports whether the
// command asks the shell to exit; any command other than .exit is an error.
func DoMetaCommand(input string) (exit bool, err error) {
	if strings.HasPrefix(input, ".exit") {
		return true, nil
	}

	meta := ""
	if parts := strings.Fields(input); len(parts) > 0 {
		meta = parts[0]
	}
	return false, fmt.Errorf("%w: %q in %q", ErrUnrecognizedCommand, meta, input)
}
