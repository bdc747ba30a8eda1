// Package index assembles derived records into the app index artifact and
// reads and writes it. The index is rebuilt wholesale on every run.
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/iammeter/openapps/internal/record"
	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Index is the aggregate artifact consumed by the site.
type Index struct {
	GeneratedAt string           `json:"generatedAt"`
	Total       int              `json:"total"`
	Apps        []*record.Record `json:"apps"`
}

// Assemble sorts records by id using locale-aware collation and stamps the
// index with now. The input slice is not modified.
func Assemble(records []*record.Record, now time.Time) *Index {
	apps := make([]*record.Record, len(records))
	copy(apps, records)

	col := collate.New(language.Und)
	slices.SortStableFunc(apps, func(a, b *record.Record) int {
		return col.CompareString(a.ID, b.ID)
	})

	return &Index{
		GeneratedAt: now.UTC().Format(TimestampLayout),
		Total:       len(apps),
		Apps:        apps,
	}
}

// Marshal encodes the index as indented JSON with a trailing newline. HTML
// characters in URLs are left unescaped.
func Marshal(idx *Index) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return nil, fmt.Errorf("encoding index: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores the index at path. The file is replaced atomically so a
// failed write never leaves a partial index behind.
func Write(fs afero.Fs, path string, idx *Index) error {
	data, err := Marshal(idx)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".index-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Read loads a previously written index.
func Read(fs afero.Fs, path string) (*Index, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", path, err)
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", path, err)
	}
	return &idx, nil
}
