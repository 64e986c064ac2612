// Package row implements the fixed-width codec for one table record.
// A serialized row is always exactly RowSize bytes: the id as 4 little-endian
// bytes, then the username and email fields verbatim at fixed offsets, with
// no length prefixes and no gaps. The layout is the file format; changing it
// breaks every existing table file.
package row

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// IDSize is the serialized size of the id field
	IDSize = 4
	// UsernameSize is the fixed width of the username field
	UsernameSize = 32
	// EmailSize is the fixed width of the email field
	EmailSize = 255

	idOffset       = 0
	usernameOffset = idOffset + IDSize
	emailOffset    = usernameOffset + UsernameSize

	// RowSize is the total serialized size of one row
	RowSize = IDSize + UsernameSize + EmailSize
)

// Row is one fixed-schema record. Username and Email hold the field bytes
// left-justified and zero-padded to their full width; the format only works
// for text whose encoding is one byte per character.
type Row struct {
	ID       uint32
	Username [UsernameSize]byte
	Email    [EmailSize]byte
}

// New builds a Row from logical field values, zero-padding username and
// email to their fixed widths. Inputs longer than their field are truncated;
// the statement parser rejects those before they get here.
func New(id uint32, username, email string) Row {
	r := Row{ID: id}
	copy(r.Username[:], username)
	copy(r.Email[:], email)
	return r
}

// Serialize writes the row into dst, which must be at least RowSize bytes.
func (r Row) Serialize(dst []byte) {
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+IDSize], r.ID)
	copy(dst[usernameOffset:usernameOffset+UsernameSize], r.Username[:])
	copy(dst[emailOffset:emailOffset+EmailSize], r.Email[:])
}

// Deserialize decodes the row stored in src, which must be at least RowSize
// bytes. It never fails: any RowSize bytes decode to some row. Field bytes
// are not validated as text; String substitutes invalid sequences at render
// time.
func Deserialize(src []byte) Row {
	var r Row
	r.ID = binary.LittleEndian.Uint32(src[idOffset : idOffset+IDSize])
	copy(r.Username[:], src[usernameOffset:usernameOffset+UsernameSize])
	copy(r.Email[:], src[emailOffset:emailOffset+EmailSize])
	return r
}

// String renders the row the way the shell prints it: "(id username email)".
// Trailing zero padding is trimmed and invalid UTF-8 is replaced with the
// replacement character.
func (r Row) String() string {
	return fmt.Sprintf("(%d %s %s)", r.ID, fieldText(r.Username[:]), fieldText(r.Email[:]))
}

func fieldText(b []byte) string {
	return strings.ToValidUTF8(string(bytes.TrimRight(b, "\x00")), "�")
}
