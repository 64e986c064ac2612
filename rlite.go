// Package rlite is a minimal single-file record store.
//
// It persists fixed-schema records (id, username, email) to one backing file
// laid out as a flat sequence of 4096-byte pages, each packing 14 fixed-width
// 291-byte rows. A row's position on disk is a pure function of its insertion
// order; there is no index, no delete or update, and no concurrent access.
// Pages are cached in memory and written back when the store is closed, so a
// process killed before Close loses unflushed rows.
//
// Example usage:
//
//	db, err := rlite.Open("/path/to/table.db", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Insert(rlite.NewRow(1, "alice", "alice@x.com")); err != nil {
//		log.Printf("Insert failed: %v", err)
//	}
//
//	rows, err := db.Select()
//	if err != nil {
//		log.Printf("Select failed: %v", err)
//	}
//	for _, r := range rows {
//		fmt.Println(r)
//	}
package rlite

import (
	"github.com/castcreator9/rlite/internal/config"
	"github.com/castcreator9/rlite/internal/row"
	"github.com/castcreator9/rlite/internal/table"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// Row is an alias for row.Row, re-exported for user convenience.
type Row = row.Row

// DefaultConfig returns a Config struct populated with default values. Re-exported for user convenience.
var DefaultConfig = config.DefaultConfig

// NewRow builds a Row from logical field values, zero-padded to the fixed
// field widths. Re-exported for user convenience.
var NewRow = row.New

// ErrTableFull is returned by Insert once the store holds its configured
// maximum number of rows.
var ErrTableFull = table.ErrTableFull

// DB represents an open rlite store backed by a single file.
type DB struct {
	table *table.Table
}

// Open opens or creates an rlite store at path. A nil cfg uses the defaults;
// zero-value fields are filled in.
func Open(path string, cfg *Config) (*DB, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.FillDefaults()

	t, err := table.Open(path, cfg.MaxPages)
	if err != nil {
		return nil, err
	}
	return &DB{table: t}, nil
}

// Insert appends one record to the store. Returns ErrTableFull once the
// configured capacity is reached; the store is unchanged in that case.
func (db *DB) Insert(r Row) error {
	return db.table.Insert(r)
}

// Select returns every record in insertion order.
func (db *DB) Select() ([]Row, error) {
	return db.table.SelectAll()
}

// Close flushes every page holding live rows to disk and closes the backing
// file. After Close the store must not be used. A Close error means a page
// write failed partway; there is no recovery path, so callers should treat
// it as fatal.
func (db *DB) Close() error {
	return db.table.Close()
}
