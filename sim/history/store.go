package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotFound reports a record id with no file in the store.
var ErrNotFound = errors.New("history record not found")

const recordExt = ".json"

// Store keeps one JSON file per record, named <id>.json, in a directory.
type Store struct {
	dir string
}

// Entry is the listing view of a stored record.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Params    Params
}

// NewStore opens the store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("history directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir is the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+recordExt)
}

// Save writes rec, replacing any record with the same id. The file is written
// to a temporary name first and renamed into place.
func (s *Store) Save(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+rec.ID.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("saving record %s: %w", rec.ID, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("saving record %s: %w", rec.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving record %s: %w", rec.ID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(rec.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("saving record %s: %w", rec.ID, err)
	}
	logrus.Infof("Saved batch %s to %s", rec.ID, s.path(rec.ID))
	return nil
}

// Load reads and validates the record with the given id.
func (s *Store) Load(id string) (*Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", id, err)
	}
	return s.load(s.path(uid))
}

func (s *Store) load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, strings.TrimSuffix(filepath.Base(path), recordExt))
		}
		return nil, fmt.Errorf("reading record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every readable record, newest first. Unreadable files are
// skipped with a warning.
func (s *Store) List() ([]Entry, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*"+recordExt))
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		rec, err := s.load(f)
		if err != nil {
			logrus.Warnf("Skipping history file %s: %v", filepath.Base(f), err)
			continue
		}
		entries = append(entries, Entry{ID: rec.ID, Timestamp: rec.Timestamp, Params: rec.Params})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return entries, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", id, err)
	}
	if err := os.Remove(s.path(uid)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, uid)
		}
		return fmt.Errorf("deleting record %s: %w", uid, err)
	}
	logrus.Infof("Deleted batch %s", uid)
	return nil
}
