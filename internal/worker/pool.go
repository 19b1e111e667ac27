// Package worker writes audit records in the background so request handlers
// never wait on storage.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ewilliams-labs/soundify/internal/core/domain"
	"github.com/ewilliams-labs/soundify/internal/core/ports"
	"github.com/ewilliams-labs/soundify/internal/logging"
	"github.com/ewilliams-labs/soundify/internal/metrics"
)

const saveTimeout = 5 * time.Second

// Pool manages background workers that persist audit records.
type Pool struct {
	repo    ports.AuditRepository
	workers int
	jobs    chan domain.AuditRecord
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var _ ports.AuditSink = (*Pool)(nil)

// NewPool creates a worker pool with the given worker count and queue size.
func NewPool(repo ports.AuditRepository, workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, workers: workers, jobs: make(chan domain.AuditRecord, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for rec := range p.jobs {
				p.process(rec)
			}
		}()
	}
}

// Stop closes the queue and waits for queued records to be written.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit queues a record without blocking. Records are dropped when the
// queue is full or the pool has stopped.
func (p *Pool) Submit(rec domain.AuditRecord) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	select {
	case p.jobs <- rec:
	default:
		metrics.AuditDropped.Inc()
		logging.Warn().Str("audit_id", rec.ID).Str("variant", rec.Variant).Msg("worker: dropping audit record, queue full")
	}
}

func (p *Pool) process(rec domain.AuditRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := p.repo.SaveRecord(ctx, rec); err != nil {
		logging.Warn().Err(err).Str("audit_id", rec.ID).Msg("worker: failed to save audit record")
	}
}
