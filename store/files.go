package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lazharichir/holdem/domain"
)

// Files stores one JSON document per table under a directory.
type Files struct {
	dir   string
	mutex sync.Mutex
}

func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Files{dir: dir}, nil
}

func (f *Files) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("table %q: %w", id, domain.ErrTableNotFound)
	}
	return filepath.Join(f.dir, id+".json"), nil
}

func (f *Files) Load(_ context.Context, id string) (*domain.Table, error) {
	p, err := f.path(id)
	if err != nil {
		return nil, err
	}
	return f.read(id, p)
}

func (f *Files) read(id, p string) (*domain.Table, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("table %s: %w", id, domain.ErrTableNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", id, err)
	}
	return decode(id, data)
}

func (f *Files) Save(_ context.Context, t *domain.Table) error {
	p, err := f.path(t.ID)
	if err != nil {
		return err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	stored, err := f.read(t.ID, p)
	exists := err == nil
	if err != nil && !errors.Is(err, domain.ErrTableNotFound) {
		return err
	}
	if err := checkVersion(stored, exists, t); err != nil {
		return err
	}

	t.Version++
	data, err := encode(t)
	if err == nil {
		err = writeFileAtomic(p, data, 0o644)
	}
	if err != nil {
		t.Version--
		return err
	}
	return nil
}

func (f *Files) List(ctx context.Context) ([]*domain.Table, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	var tables []*domain.Table
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		t, err := f.Load(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			// skip anything that is not a table record
			continue
		}
		tables = append(tables, t)
	}
	sortTables(tables)
	return tables, nil
}
