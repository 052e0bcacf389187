package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	perferrors "perfledger/internal/errors"
)

// DefaultFileName is the conventional ledger file at the project root.
const DefaultFileName = "perf.list"

// Store defines the interface for persisting the ledger.
type Store interface {
	Load() (Ledger, error)
	Save(l Ledger) error
}

// FileStore implements Store using a pretty-printed JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// OpenFileStore returns a FileStore for path as a Store.
func OpenFileStore(path string) Store {
	return NewFileStore(path)
}

// Load reads the ledger. A missing or empty file is an empty ledger;
// anything else that does not decode is a LedgerCorruptError.
func (s *FileStore) Load() (Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Ledger{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Ledger{}, nil
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, &perferrors.LedgerCorruptError{Path: s.path, Err: err}
	}
	if l == nil {
		// A literal "null" document.
		return nil, &perferrors.LedgerCorruptError{Path: s.path, Err: fmt.Errorf("top level is not an object")}
	}
	return l, nil
}

// Save replaces the ledger file with l. The data goes to a temporary file in
// the same directory first, so a failed write leaves the old ledger intact.
func (s *FileStore) Save(l Ledger) error {
	if l == nil {
		l = Ledger{}
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// LoadLedger loads the ledger stored at path.
func LoadLedger(path string) (Ledger, error) {
	return NewFileStore(path).Load()
}

// PersistLedger writes l to path, replacing any existing file.
func PersistLedger(path string, l Ledger) error {
	return NewFileStore(path).Save(l)
}
