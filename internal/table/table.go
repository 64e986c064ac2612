// Package table maps logical row indices onto pages and rows them back out
// through cursors. A table owns its pager exclusively; nothing else touches
// the page buffers or the backing file.
package table

import (
	"errors"

	"github.com/castcreator9/rlite/internal/pager"
	"github.com/castcreator9/rlite/internal/row"
)

// RowsPerPage is how many whole rows fit in one page. The page's remaining
// tail is never used for another row; a row never spans two pages.
const RowsPerPage = pager.PageSize / row.RowSize

// ErrTableFull is returned by Insert once the table holds its configured
// maximum number of rows.
var ErrTableFull = errors.New("table full")

// Table owns a pager plus the logical row count. The count is not stored in
// the file; it is re-derived from the file length on every open.
type Table struct {
	pager   *pager.Pager
	numRows int
	maxRows int
}

// Open opens the table backed by the file at path, sized to hold at most
// maxPages pages. A trailing partial row in the file is silently ignored.
func Open(path string, maxPages int) (*Table, error) {
	p, err := pager.Open(path, maxPages)
	if err != nil {
		return nil, err
	}

	return &Table{
		pager:   p,
		numRows: p.FileLength() / row.RowSize,
		maxRows: RowsPerPage * maxPages,
	}, nil
}

// NumRows returns the logical row count.
func (t *Table) NumRows() int { return t.numRows }

// RowSlot returns the RowSize-byte slice backing row rowNum within its page.
// There is no check against NumRows here; callers stay within the rows they
// mean to touch, and an index past the page ceiling fails through the
// pager's own bound check.
func (t *Table) RowSlot(rowNum int) ([]byte, error) {
	pageNum := rowNum / RowsPerPage
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	byteOffset := (rowNum % RowsPerPage) * row.RowSize
	return page[byteOffset : byteOffset+row.RowSize], nil
}

// Insert appends r at the end of the table.
func (t *Table) Insert(r row.Row) error {
	if t.numRows >= t.maxRows {
		return ErrTableFull
	}

	slot, err := End(t).Value()
	if err != nil {
		return err
	}
	r.Serialize(slot)
	t.numRows++

	return nil
}

// SelectAll decodes every row in insertion order.
func (t *Table) SelectAll() ([]row.Row, error) {
	rows := make([]row.Row, 0, t.numRows)
	for c := Start(t); !c.EndOfTable(); c.Advance() {
		slot, err := c.Value()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row.Deserialize(slot))
	}
	return rows, nil
}

// Close persists every page holding live rows and closes the backing file.
// Two mutually exclusive passes: every fully populated page is written whole,
// then a final partial page is written only up to its last real row. Pages
// touched beyond the logical row count are discarded, not written, so no
// padding or buffer garbage lands past the last row.
func (t *Table) Close() error {
	fullPages := t.numRows / RowsPerPage
	for i := 0; i < fullPages; i++ {
		if err := t.pager.Flush(i, pager.PageSize); err != nil {
			return err
		}
		t.pager.Evict(i)
	}

	if extraRows := t.numRows % RowsPerPage; extraRows > 0 {
		if err := t.pager.Flush(fullPages, extraRows*row.RowSize); err != nil {
			return err
		}
		t.pager.Evict(fullPages)
	}

	t.pager.EvictAll()

	return t.pager.Close()
}
