package semantic

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperjump/shokumu/internal/models"
)

// Cache artifact layout (little-endian): dimensions (uint32), row count
// (uint32), then rows*dimensions float32 values. Rows are implicitly keyed by
// corpus position, which is why a row-count mismatch invalidates the file.
// Internal format, not stable across releases.

// SaveCache writes the index matrix to path, creating parent directories.
func (ix *Index) SaveCache(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(ix.dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ix.matrix))); err != nil {
		return fmt.Errorf("write row count: %w", err)
	}
	buf := make([]byte, 4)
	for _, row := range ix.matrix {
		for _, v := range row {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("write vector: %w", err)
			}
		}
	}
	return w.Flush()
}

// LoadCache reads a cache artifact written by SaveCache. It does not judge
// staleness; call ValidateCache first.
func LoadCache(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open cache: %v", models.ErrCacheInvalid, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var dims, rows uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: read dimensions: %v", models.ErrCacheInvalid, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: read row count: %v", models.ErrCacheInvalid, err)
	}
	if dims == 0 {
		return nil, fmt.Errorf("%w: zero dimensions", models.ErrCacheInvalid)
	}

	matrix := make([][]float32, rows)
	buf := make([]byte, dims*4)
	for i := uint32(0); i < rows; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("%w: read row %d: %v", models.ErrCacheInvalid, i, err)
		}
		row := make([]float32, dims)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[j*4 : j*4+4]))
		}
		matrix[i] = row
	}
	return &Index{dimensions: int(dims), matrix: matrix}, nil
}

// ValidateCache checks whether the artifact at cachePath may be reused for a
// corpus with the given source modification time and size. Valid only when
// the file exists, is newer than the source, and its row count equals the
// corpus size. Returns models.ErrCacheInvalid describing the first failure.
func ValidateCache(cachePath string, sourceModTime time.Time, corpusSize int) error {
	info, err := os.Stat(cachePath)
	if err != nil {
		return fmt.Errorf("%w: cache missing: %v", models.ErrCacheInvalid, err)
	}
	if !info.ModTime().After(sourceModTime) {
		return fmt.Errorf("%w: cache older than corpus source (%s <= %s)",
			models.ErrCacheInvalid, info.ModTime().Format(time.RFC3339), sourceModTime.Format(time.RFC3339))
	}
	rows, err := cacheRowCount(cachePath)
	if err != nil {
		return err
	}
	if rows != corpusSize {
		return fmt.Errorf("%w: cache has %d rows, corpus has %d postings",
			models.ErrCacheInvalid, rows, corpusSize)
	}
	return nil
}

// cacheRowCount reads only the artifact header.
func cacheRowCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: open cache: %v", models.ErrCacheInvalid, err)
	}
	defer f.Close()

	var dims, rows uint32
	if err := binary.Read(f, binary.LittleEndian, &dims); err != nil {
		return 0, fmt.Errorf("%w: read dimensions: %v", models.ErrCacheInvalid, err)
	}
	if err := binary.Read(f, binary.LittleEndian, &rows); err != nil {
		return 0, fmt.Errorf("%w: read row count: %v", models.ErrCacheInvalid, err)
	}
	return int(rows), nil
}
