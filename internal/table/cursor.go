package table

// Cursor is a single-pass, forward-only traversal handle over a table's
// rows. It borrows the table for the duration of one scan and carries no
// state of its own beyond the position. Only one cursor should be active
// against a table at a time.
type Cursor struct {
	table      *Table
	rowNum     int
	endOfTable bool
}

// Start returns a cursor positioned at row 0. On an empty table it starts
// already at the end.
func Start(t *Table) *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     0,
		endOfTable: t.numRows == 0,
	}
}

// End returns a cursor positioned one past the last row: the slot the next
// insert lands in. It is always at the end and never a readable position.
func End(t *Table) *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     t.numRows,
		endOfTable: true,
	}
}

// EndOfTable reports whether the cursor has run past the last row.
func (c *Cursor) EndOfTable() bool { return c.endOfTable }

// Value returns the row slot at the cursor's current position. On an end
// cursor this addresses the next, not-yet-written slot: valid to write, not
// meaningful to read.
func (c *Cursor) Value() ([]byte, error) {
	return c.table.RowSlot(c.rowNum)
}

// Advance moves the cursor forward one row. Traversal is one-way; there is
// no rewind and no random seek.
func (c *Cursor) Advance() {
	c.rowNum++
	if c.rowNum >= c.table.numRows {
		c.endOfTable = true
	}
}
