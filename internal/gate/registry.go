package gate

import (
	"context"
	"sync"
	"time"
)

const DefaultIdleTTL = 2 * time.Minute

// Registry runs one controller per tournament. Controllers start on first use
// and are stopped once nobody has touched or watched them for the idle TTL.
type Registry struct {
	fetcher StatusFetcher
	opts    Options
	idleTTL time.Duration
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	entries map[int]*entry
	closed  bool
}

type entry struct {
	ctrl     *Controller
	cancel   context.CancelFunc
	lastUsed time.Time
	watchers int
}

func NewRegistry(fetcher StatusFetcher, idleTTL time.Duration, opts Options) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		fetcher: fetcher,
		opts:    opts.withDefaults(),
		idleTTL: idleTTL,
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[int]*entry),
	}

	r.wg.Add(1)
	go r.janitor()
	return r
}

// Get returns the running controller of a tournament, starting it if needed.
// It returns nil once the registry is closed.
func (r *Registry) Get(tournamentID int) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.lookup(tournamentID)
	if e == nil {
		return nil
	}
	return e.ctrl
}

// Refresh polls a tournament out of band, typically right after a generate
// action changed its phases.
func (r *Registry) Refresh(tournamentID int) {
	if ctrl := r.Get(tournamentID); ctrl != nil {
		ctrl.Refresh()
	}
}

// Watch subscribes to a tournament's gates. The controller is kept alive
// until the returned cancel func is called.
func (r *Registry) Watch(tournamentID int) (<-chan State, func()) {
	r.mu.Lock()
	e := r.lookup(tournamentID)
	if e == nil {
		r.mu.Unlock()
		ch := make(chan State)
		close(ch)
		return ch, func() {}
	}
	e.watchers++
	r.mu.Unlock()

	states, unsubscribe := e.ctrl.Subscribe()
	var once sync.Once
	return states, func() {
		once.Do(func() {
			unsubscribe()
			r.mu.Lock()
			e.watchers--
			e.lastUsed = r.now()
			r.mu.Unlock()
		})
	}
}

// Remove stops a tournament's controller, typically after the tournament was
// deleted. A later Get starts a fresh one.
func (r *Registry) Remove(tournamentID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[tournamentID]; ok {
		e.cancel()
		delete(r.entries, tournamentID)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops every controller and waits for them to exit.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	for id, e := range r.entries {
		e.cancel()
		delete(r.entries, id)
	}
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

func (r *Registry) lookup(tournamentID int) *entry {
	if r.closed {
		return nil
	}
	if e, ok := r.entries[tournamentID]; ok {
		e.lastUsed = r.now()
		return e
	}

	ctx, cancel := context.WithCancel(r.ctx)
	e := &entry{
		ctrl:     NewController(tournamentID, r.fetcher, r.opts),
		cancel:   cancel,
		lastUsed: r.now(),
	}
	r.entries[tournamentID] = e

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		e.ctrl.Run(ctx)
	}()
	r.opts.Logger.Debug("phase gate controller started", "tournament_id", tournamentID)
	return e
}

func (r *Registry) janitor() {
	defer r.wg.Done()

	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.evictIdle()
		}
	}
}

// evictIdle stops unwatched controllers unused for longer than the TTL and
// returns how many were stopped.
func (r *Registry) evictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for id, e := range r.entries {
		if e.watchers > 0 || now.Sub(e.lastUsed) < r.idleTTL {
			continue
		}
		e.cancel()
		delete(r.entries, id)
		evicted++
		r.opts.Logger.Debug("phase gate controller stopped", "tournament_id", id, "idle", now.Sub(e.lastUsed))
	}
	return evicted
}
