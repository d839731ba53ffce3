package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/lazharichir/holdem/domain"
)

// Memory keeps encoded snapshots so callers never share table state.
type Memory struct {
	tables map[string][]byte
	mutex  sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, id string) (*domain.Table, error) {
	m.mutex.RLock()
	data, ok := m.tables[id]
	m.mutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("table %s: %w", id, domain.ErrTableNotFound)
	}
	return decode(id, data)
}

func (m *Memory) Save(_ context.Context, t *domain.Table) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var stored *domain.Table
	data, exists := m.tables[t.ID]
	if exists {
		var err error
		if stored, err = decode(t.ID, data); err != nil {
			return err
		}
	}
	if err := checkVersion(stored, exists, t); err != nil {
		return err
	}

	t.Version++
	encoded, err := encode(t)
	if err != nil {
		t.Version--
		return err
	}
	m.tables[t.ID] = encoded
	return nil
}

func (m *Memory) List(_ context.Context) ([]*domain.Table, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	tables := make([]*domain.Table, 0, len(m.tables))
	for id, data := range m.tables {
		t, err := decode(id, data)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	sortTables(tables)
	return tables, nil
}
