package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Veraticus/nest-egg/internal/common"
	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/Veraticus/nest-egg/internal/service"
)

type saveKind uint8

const (
	saveGoals saveKind = 1 << iota
	saveTransactions
	saveShown

	saveAll = saveGoals | saveTransactions | saveShown
)

// snapshot is a self-contained copy of the state to write.
type snapshot struct {
	shown        map[string][]string
	flushed      chan struct{}
	goals        []model.Goal
	transactions []model.Transaction
	kinds        saveKind
}

// persister is the single writer for the store. Snapshots are written in
// the order they were queued; a failed write is logged and dropped.
type persister struct {
	store   service.GoalStore
	lastErr error
	queue   chan snapshot
	done    chan struct{}
	retry   service.RetryOptions
	timeout time.Duration
	mu      sync.Mutex

	// sendMu guards queue against sends racing close.
	sendMu sync.RWMutex
	closed bool
}

func newPersister(store service.GoalStore, timeout time.Duration, retry service.RetryOptions) *persister {
	p := &persister{
		store:   store,
		timeout: timeout,
		retry:   retry,
		queue:   make(chan snapshot, 64),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) run() {
	defer close(p.done)
	for s := range p.queue {
		if s.flushed != nil {
			close(s.flushed)
			continue
		}
		p.write(s)
	}
}

func (p *persister) enqueue(s snapshot) {
	p.sendMu.RLock()
	defer p.sendMu.RUnlock()
	if p.closed {
		return
	}
	p.queue <- s
}

func (p *persister) write(s snapshot) {
	if s.kinds&saveGoals != 0 {
		p.save("save goals", len(s.goals), func(ctx context.Context) error {
			return p.store.SaveGoals(ctx, s.goals)
		})
	}
	if s.kinds&saveTransactions != 0 {
		p.save("save transactions", len(s.transactions), func(ctx context.Context) error {
			return p.store.SaveTransactions(ctx, s.transactions)
		})
	}
	if s.kinds&saveShown != 0 {
		p.save("save shown badges", len(s.shown), func(ctx context.Context) error {
			return p.store.SaveShownBadges(ctx, s.shown)
		})
	}
}

func (p *persister) save(op string, count int, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err := common.WithRetry(ctx, func() error { return fn(ctx) }, p.retry)
	if err == nil {
		return
	}

	perr := &common.PersistenceError{Op: op, Err: err}
	common.LogError(perr, "Persistence failed; in-memory state kept", common.Fields{
		"op":    op,
		"count": count,
	})

	p.mu.Lock()
	p.lastErr = perr
	p.mu.Unlock()
}

// flush blocks until everything queued before the call has been written.
func (p *persister) flush(ctx context.Context) error {
	marker := make(chan struct{})
	p.sendMu.RLock()
	if p.closed {
		p.sendMu.RUnlock()
		return nil
	}
	select {
	case p.queue <- snapshot{flushed: marker}:
		p.sendMu.RUnlock()
	case <-ctx.Done():
		p.sendMu.RUnlock()
		return ctx.Err()
	}
	select {
	case <-marker:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting snapshots and waits for the queue to drain.
func (p *persister) close(ctx context.Context) error {
	p.sendMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.sendMu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("persistence queue did not drain"), ctx.Err())
	}
}

func (p *persister) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
