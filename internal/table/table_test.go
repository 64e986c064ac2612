package table_test

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/castcreator9/rlite/internal/pager"
	"github.com/castcreator9/rlite/internal/row"
	"github.com/castcreator9/rlite/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTable(t *testing.T, maxPages int) (*table.Table, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.db")
	tbl, err := table.Open(path, maxPages)
	require.NoError(t, err, "failed to open table")
	return tbl, path
}

func testRow(id uint32) row.Row {
	return row.New(id, fmt.Sprintf("user%d", id), fmt.Sprintf("user%d@example.com", id))
}

func TestTable_RowsPerPage(t *testing.T) {
	// 4096 / 291, floor. Part of the file format.
	require.Equal(t, 14, table.RowsPerPage)
}

func TestTable_RowSlotAddressing(t *testing.T) {
	tbl, _ := openTable(t, 4)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	slot, err := tbl.RowSlot(0)
	require.NoError(t, err)
	assert.Len(t, slot, row.RowSize)

	// Rows 0 and 13 share page 0; row 14 starts page 1. Writing through one
	// slot must not be visible through any other.
	slot0, err := tbl.RowSlot(0)
	require.NoError(t, err)
	slot13, err := tbl.RowSlot(13)
	require.NoError(t, err)
	slot14, err := tbl.RowSlot(14)
	require.NoError(t, err)

	slot0[0] = 0x11
	slot13[0] = 0x22
	slot14[0] = 0x33

	again0, err := tbl.RowSlot(0)
	require.NoError(t, err)
	again13, err := tbl.RowSlot(13)
	require.NoError(t, err)
	again14, err := tbl.RowSlot(14)
	require.NoError(t, err)

	assert.Equal(t, byte(0x11), again0[0])
	assert.Equal(t, byte(0x22), again13[0])
	assert.Equal(t, byte(0x33), again14[0])
}

func TestTable_RowSlotPastPageCeiling(t *testing.T) {
	tbl, _ := openTable(t, 1)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	// No row-level bounds check: the pager's page ceiling is what fails.
	_, err := tbl.RowSlot(table.RowsPerPage)
	require.Error(t, err)
	assert.ErrorIs(t, err, pager.ErrPageOutOfBounds)
}

func TestTable_InsertAndSelect(t *testing.T) {
	tbl, _ := openTable(t, 4)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	for id := uint32(1); id <= 3; id++ {
		require.NoError(t, tbl.Insert(testRow(id)))
	}
	assert.Equal(t, 3, tbl.NumRows())

	rows, err := tbl.SelectAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, testRow(uint32(i+1)), r, "expected rows back in insertion order")
	}
}

func TestTable_Capacity(t *testing.T) {
	tbl, _ := openTable(t, 1)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	maxRows := table.RowsPerPage
	for id := 0; id < maxRows; id++ {
		require.NoError(t, tbl.Insert(testRow(uint32(id))), "insert %d within capacity should succeed", id)
	}
	require.Equal(t, maxRows, tbl.NumRows())

	err := tbl.Insert(testRow(99))
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrTableFull)
	assert.Equal(t, maxRows, tbl.NumRows(), "expected a failed insert to leave the row count unchanged")
}

func TestTable_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.db")

	tbl, err := table.Open(path, 4)
	require.NoError(t, err)
	for id := uint32(1); id <= 3; id++ {
		require.NoError(t, tbl.Insert(testRow(id)))
	}
	require.NoError(t, tbl.Close())

	reopened, err := table.Open(path, 4)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	assert.Equal(t, 3, reopened.NumRows(), "expected the row count to be re-derived from file length")

	rows, err := reopened.SelectAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, testRow(uint32(i+1)), r)
	}
}

func TestTable_OnDiskRowLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.db")

	tbl, err := table.Open(path, 4)
	require.NoError(t, err)
	// Span two pages so both full-page and partial-page flushes run.
	for id := 0; id < 16; id++ {
		require.NoError(t, tbl.Insert(testRow(uint32(id))))
	}
	require.NoError(t, tbl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Row i lives at (i/14)*4096 + (i%14)*291 and starts with its LE id.
	for i := 0; i < 16; i++ {
		offset := (i/table.RowsPerPage)*pager.PageSize + (i%table.RowsPerPage)*row.RowSize
		id := binary.LittleEndian.Uint32(data[offset : offset+4])
		assert.Equal(t, uint32(i), id, "unexpected id at row %d (offset %d)", i, offset)
	}
}

func TestTable_PartialPageFlushLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.db")

	tbl, err := table.Open(path, 4)
	require.NoError(t, err)
	numRows := 20 // one full page plus 6 rows
	for id := 0; id < numRows; id++ {
		require.NoError(t, tbl.Insert(testRow(uint32(id))))
	}
	require.NoError(t, tbl.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)

	want := (numRows/table.RowsPerPage)*pager.PageSize + (numRows%table.RowsPerPage)*row.RowSize
	assert.Equal(t, int64(want), info.Size(), "expected no zero-padded tail past the last row")
}

func TestTable_FullPageFlushLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.db")

	tbl, err := table.Open(path, 4)
	require.NoError(t, err)
	for id := 0; id < table.RowsPerPage; id++ {
		require.NoError(t, tbl.Insert(testRow(uint32(id))))
	}
	require.NoError(t, tbl.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(pager.PageSize), info.Size(), "expected exactly one whole page on disk")
}

func TestTable_ReopenIgnoresTrailingPartialRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.db")

	tbl, err := table.Open(path, 4)
	require.NoError(t, err)
	require.NoError(t, tbl.Insert(testRow(7)))
	require.NoError(t, tbl.Close())

	// Simulate a torn trailing write: one whole row plus 100 stray bytes.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.Write(make([]byte, 100))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := table.Open(path, 4)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	assert.Equal(t, 1, reopened.NumRows(), "expected the partial trailing row to be dropped from the count")

	rows, err := reopened.SelectAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, testRow(7), rows[0])
}

func TestCursor_EmptyTable(t *testing.T) {
	tbl, _ := openTable(t, 4)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	c := table.Start(tbl)
	assert.True(t, c.EndOfTable(), "expected a start cursor on an empty table to be at the end")

	e := table.End(tbl)
	assert.True(t, e.EndOfTable())
}

func TestCursor_Traversal(t *testing.T) {
	tbl, _ := openTable(t, 4)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	for id := 0; id < 3; id++ {
		require.NoError(t, tbl.Insert(testRow(uint32(id))))
	}

	var ids []uint32
	for c := table.Start(tbl); !c.EndOfTable(); c.Advance() {
		slot, err := c.Value()
		require.NoError(t, err)
		ids = append(ids, row.Deserialize(slot).ID)
	}
	assert.Equal(t, []uint32{0, 1, 2}, ids, "expected a single ordered pass over all rows")
}

func TestCursor_EndAddressesNextSlot(t *testing.T) {
	tbl, _ := openTable(t, 4)
	defer func() {
		require.NoError(t, tbl.Close())
	}()

	require.NoError(t, tbl.Insert(testRow(1)))

	c := table.End(tbl)
	require.True(t, c.EndOfTable())

	slot, err := c.Value()
	require.NoError(t, err)
	require.Len(t, slot, row.RowSize)

	// The slot one past the last row is writable but holds no row yet.
	assert.Equal(t, make([]byte, row.RowSize), slot)
}
