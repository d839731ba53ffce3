package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// EventStore is the interface for storing and retrieving audit records.
type EventStore interface {
	Append(record Record) error
	LoadEvents(tableID string) ([]Record, error)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
type InMemoryEventStore struct {
	events map[string][]Record
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Record),
	}
}

// Append adds a new record to the store.
func (s *InMemoryEventStore) Append(record Record) error {
	if record.TableID == "" {
		return fmt.Errorf("record has no tableID")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.events[record.TableID] = append(s.events[record.TableID], record)
	return nil
}

// LoadEvents retrieves all records for the given tableID.
func (s *InMemoryEventStore) LoadEvents(tableID string) ([]Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if events, exists := s.events[tableID]; exists {
		// Make a copy to avoid potential race conditions
		result := make([]Record, len(events))
		copy(result, events)
		return result, nil
	}

	return []Record{}, nil
}

// FileEventStore appends records as JSON lines, one file per table.
type FileEventStore struct {
	dir   string
	mutex sync.Mutex
}

func NewFileEventStore(dir string) (*FileEventStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create event dir: %w", err)
	}
	return &FileEventStore{dir: dir}, nil
}

func (s *FileEventStore) path(tableID string) string {
	return filepath.Join(s.dir, filepath.Base(tableID)+".log")
}

func (s *FileEventStore) Append(record Record) error {
	if record.TableID == "" {
		return fmt.Errorf("record has no tableID")
	}
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := os.OpenFile(s.path(record.TableID), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (s *FileEventStore) LoadEvents(tableID string) ([]Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	f, err := os.Open(s.path(tableID))
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	records := []Record{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("decode event log %s: %w", tableID, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event log %s: %w", tableID, err)
	}
	return records, nil
}
