package table

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Registry owns one Loop per table id, created on first use.
type Registry struct {
	loops  map[string]*Loop
	mutex  sync.Mutex
	closed bool
	logger *log.Logger
}

func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		loops:  make(map[string]*Loop),
		logger: logger,
	}
}

// Do runs job on the loop for tableID.
func (r *Registry) Do(ctx context.Context, tableID string, job Job) error {
	loop, err := r.loop(tableID)
	if err != nil {
		return err
	}
	return loop.Do(ctx, job)
}

func (r *Registry) loop(tableID string) (*Loop, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return nil, ErrStopped
	}
	if loop, ok := r.loops[tableID]; ok {
		return loop, nil
	}

	loop := NewLoop(tableID, r.logger)
	loop.Start()
	r.loops[tableID] = loop
	r.logger.Debug("table loop started", "table", tableID)
	return loop, nil
}

// Has reports whether tableID already has a running loop.
func (r *Registry) Has(tableID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, ok := r.loops[tableID]
	return ok
}

// Len returns the number of running loops.
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.loops)
}

// Stop shuts down every loop. Later calls to Do return ErrStopped.
func (r *Registry) Stop() {
	r.mutex.Lock()
	loops := r.loops
	r.loops = make(map[string]*Loop)
	r.closed = true
	r.mutex.Unlock()

	for _, loop := range loops {
		loop.Stop()
	}
}
