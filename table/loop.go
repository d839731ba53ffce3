// Package table runs one single-writer loop per table id so commands for the
// same table never interleave.
package table

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrStopped is returned for work submitted after the loop shut down.
var ErrStopped = errors.New("table loop stopped")

// Job is one unit of work run on the loop goroutine.
type Job func(ctx context.Context) error

type request struct {
	ctx  context.Context
	job  Job
	done chan error
}

// Loop serialises jobs for a single table
type Loop struct {
	tableID  string
	requests chan request
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *log.Logger
}

// NewLoop creates a loop for the specified table. Call Start before Do.
func NewLoop(tableID string, logger *log.Logger) *Loop {
	ctx, cancel := context.WithCancel(context.Background())

	return &Loop{
		tableID:  tableID,
		requests: make(chan request),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.With("table", tableID),
	}
}

// Start begins processing jobs in a goroutine
func (l *Loop) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.runLoop()
	}()
}

// Stop stops the loop and waits for the running job to finish
func (l *Loop) Stop() {
	l.cancel()
	l.wg.Wait()
}

// Do runs job on the loop and waits for its result. Jobs never overlap.
func (l *Loop) Do(ctx context.Context, job Job) error {
	req := request{ctx: ctx, job: job, done: make(chan error, 1)}

	select {
	case l.requests <- req:
	case <-l.ctx.Done():
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// every request the loop receives is answered, and the job sees ctx
	return <-req.done
}

func (l *Loop) runLoop() {
	for {
		select {
		case <-l.ctx.Done():
			return

		case req := <-l.requests:
			req.done <- l.run(req)
		}
	}
}

func (l *Loop) run(req request) (err error) {
	if err := req.ctx.Err(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("job panicked", "panic", r)
			err = fmt.Errorf("table %s: job panicked: %v", l.tableID, r)
		}
	}()
	return req.job(req.ctx)
}
