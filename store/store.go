// Package store persists table records.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/lazharichir/holdem/domain"
)

// ErrConflict is returned by Save when the table changed since it was loaded.
var ErrConflict = errors.New("table was modified concurrently")

// Store loads and saves whole tables. Every Load returns an independent copy.
// Save fails with ErrConflict unless the table's Version matches the stored
// one, and bumps Version on success.
type Store interface {
	Load(ctx context.Context, id string) (*domain.Table, error)
	Save(ctx context.Context, t *domain.Table) error
	List(ctx context.Context) ([]*domain.Table, error)
}

func encode(t *domain.Table) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode table %s: %w", t.ID, err)
	}
	return data, nil
}

func decode(id string, data []byte) (*domain.Table, error) {
	var t domain.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("malformed table %s: %v: %w", id, err, domain.ErrTableNotFound)
	}
	if t.ID == "" || len(t.Seats) == 0 {
		return nil, fmt.Errorf("malformed table %s: %w", id, domain.ErrTableNotFound)
	}
	return &t, nil
}

func checkVersion(stored *domain.Table, exists bool, t *domain.Table) error {
	switch {
	case !exists && t.Version != 0:
		return fmt.Errorf("table %s: %w", t.ID, domain.ErrTableNotFound)
	case exists && stored.Version != t.Version:
		return fmt.Errorf("table %s at version %d, saving %d: %w", t.ID, stored.Version, t.Version, ErrConflict)
	}
	return nil
}

func sortTables(tables []*domain.Table) {
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].CreatedAt.Equal(tables[j].CreatedAt) {
			return tables[i].ID < tables[j].ID
		}
		return tables[i].CreatedAt.Before(tables[j].CreatedAt)
	})
}
