// Package pager implements the page cache between the table and its backing
// file. Pages are loaded lazily on first access, mutated in memory, and
// written back only when the owning table flushes them at teardown.
package pager

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/castcreator9/rlite/internal/diskmanager"
)

// PageSize is the fixed size in bytes of one unit of file I/O.
const PageSize = 4096

var (
	// ErrPageOutOfBounds is returned by GetPage for a page number at or
	// beyond the configured maximum. The page set is a hard ceiling, not a
	// growable cache.
	ErrPageOutOfBounds = errors.New("page number out of bounds")
	// ErrFileTooLarge is returned at open time when the file length cannot
	// be represented as a platform int.
	ErrFileTooLarge = errors.New("file length exceeds addressable size")
)

// Pager owns the backing file handle and the in-memory page buffers. A nil
// slot means the page was never touched; once populated, the buffer is the
// single source of truth for that page until it is flushed, and the file may
// be stale.
type Pager struct {
	file       diskmanager.FileHandle
	fileLength int
	pages      [][]byte
}

// Open opens the backing file at path, creating it if absent, and records
// its current length. All page slots start empty.
func Open(path string, maxPages int) (*Pager, error) {
	file, err := diskmanager.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat db file: %w", err)
	}
	size := info.Size()
	if uint64(size) > math.MaxInt {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}

	return &Pager{
		file:       file,
		fileLength: int(size),
		pages:      make([][]byte, maxPages),
	}, nil
}

// FileLength returns the backing file's length in bytes as observed at open
// time.
func (p *Pager) FileLength() int { return p.fileLength }

// GetPage returns the in-memory buffer for pageNum, loading it from the file
// on first access. The returned slice aliases the cached buffer: mutations
// are visible to every later caller and nothing reaches disk until Flush.
func (p *Pager) GetPage(pageNum int) ([]byte, error) {
	if pageNum >= len(p.pages) {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPageOutOfBounds, pageNum, len(p.pages))
	}

	if p.pages[pageNum] == nil {
		page := make([]byte, PageSize)

		// Pages the file already contains are read through. A short read on
		// a partial final page leaves the remainder zero-filled.
		filePages := (p.fileLength + PageSize - 1) / PageSize
		if pageNum < filePages {
			if _, err := p.file.ReadAt(page, int64(pageNum)*PageSize); err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
			}
		}
		p.pages[pageNum] = page
	}

	return p.pages[pageNum], nil
}

// Flush writes the first size bytes of the page back to the file at the
// page's offset. A slot that was never populated is skipped. Writing less
// than a full page is how the final partial page avoids persisting padding
// past the last real row.
func (p *Pager) Flush(pageNum, size int) error {
	page := p.pages[pageNum]
	if page == nil {
		return nil
	}
	if _, err := p.file.WriteAt(page[:size], int64(pageNum)*PageSize); err != nil {
		return fmt.Errorf("failed to flush page %d: %w", pageNum, err)
	}
	return nil
}

// Evict drops the in-memory buffer for pageNum without writing it.
func (p *Pager) Evict(pageNum int) {
	p.pages[pageNum] = nil
}

// EvictAll drops every remaining in-memory buffer without writing them.
func (p *Pager) EvictAll() {
	for i := range p.pages {
		p.pages[i] = nil
	}
}

// Close syncs and closes the backing file. Flushing is the owning table's
// job; Close writes nothing on its own.
func (p *Pager) Close() error {
	if err := p.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync db file: %w", err)
	}
	return p.file.Close()
}
