package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/errors"
	"github.com/agentstation/radar/pkg/logging"
)

// Store loads and saves the dataset table as a single CSV snapshot.
// Every save rewrites the whole file; there is no incremental append.
type Store struct {
	path string
}

// NewStore creates a store for the table at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the table file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the table into an indexed collection. A missing or empty
// file is a first run and yields an empty collection. Anything else that
// cannot be parsed is a load error and must abort the run: guessing at a
// partially readable table risks silently dropping rows on the next save.
func (s *Store) Load() (*Rows, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug().Str("path", s.path).Msg("no table file, starting empty")
			return NewRows(), nil
		}
		return nil, errors.WrapStore("load", s.path, errors.WrapIO("read", s.path, err))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		logging.Debug().Str("path", s.path).Msg("empty table file, starting empty")
		return NewRows(), nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = len(header)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapStore("load", s.path, errors.WrapParse("csv", s.path, err))
	}
	if len(records) == 0 {
		return NewRows(), nil
	}

	if err := checkHeader(records[0]); err != nil {
		return nil, errors.WrapStore("load", s.path, err)
	}

	rows := NewRows(WithRowsCapacity(len(records) - 1))
	for i, record := range records[1:] {
		row, err := parseRecord(record)
		if err != nil {
			// CSV line numbers are 1-based and include the header.
			return nil, errors.WrapStore("load", s.path,
				errors.NewParseError("csv", s.path, fmt.Sprintf("row %d: %v", i+2, err), err))
		}
		if err := rows.Set(row); err != nil {
			return nil, errors.WrapStore("load", s.path, err)
		}
	}

	logging.Debug().Str("path", s.path).Int("rows", rows.Len()).Msg("loaded table")
	return rows, nil
}

// Save writes the collection to disk atomically: the full table is
// rendered to a temp file beside the target and renamed over it, so a
// failed save leaves the previous snapshot untouched.
func (s *Store) Save(rows *Rows) error {
	if rows == nil {
		return errors.WrapStore("save", s.path, errors.New("rows cannot be nil"))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return errors.WrapStore("save", s.path, err)
	}
	for _, row := range rows.List() {
		if err := w.Write(row.record()); err != nil {
			return errors.WrapStore("save", s.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapStore("save", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapStore("save", s.path, errors.WrapIO("create", dir, err))
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapStore("save", s.path, errors.WrapIO("write", tmpPath, err))
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return errors.WrapStore("save", s.path, errors.WrapIO("rename", tmpPath, err))
	}

	logging.Debug().Str("path", s.path).Int("rows", rows.Len()).Msg("saved table")
	return nil
}

// checkHeader verifies the first record matches the fixed schema.
func checkHeader(record []string) error {
	if len(record) != len(header) {
		return errors.NewParseError("csv", "",
			fmt.Sprintf("header has %d columns, want %d", len(record), len(header)), nil)
	}
	for i, name := range header {
		if record[i] != name {
			return errors.NewParseError("csv", "",
				fmt.Sprintf("header column %d is %q, want %q", i+1, record[i], name), nil)
		}
	}
	return nil
}
