package gate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AdamBeresnev/poule-board/internal/tournament"
)

const (
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 10 * time.Second
)

type StatusFetcher interface {
	PhaseStatus(ctx context.Context, tournamentID int) (tournament.PhaseStatus, error)
}

type Options struct {
	Interval time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
	Metrics  *Metrics
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Controller polls the phase status of one tournament and keeps the gates in
// sync with it. Every poll gets a sequence number and only the response to
// the most recently issued poll is applied.
type Controller struct {
	tournamentID int
	fetcher      StatusFetcher
	opts         Options

	mu       sync.Mutex
	state    State
	issued   uint64
	inFlight int
	runCtx   context.Context
	stopped  bool
	subs     map[int]chan State
	nextSub  int
	polls    sync.WaitGroup
}

func NewController(tournamentID int, fetcher StatusFetcher, opts Options) *Controller {
	return &Controller{
		tournamentID: tournamentID,
		fetcher:      fetcher,
		opts:         opts.withDefaults(),
		state:        State{TournamentID: tournamentID},
		subs:         make(map[int]chan State),
	}
}

func (c *Controller) TournamentID() int {
	return c.tournamentID
}

// Run polls immediately and then on every interval until ctx is done. It
// waits for outstanding polls before returning and closes all subscriptions.
func (c *Controller) Run(ctx context.Context) {
	c.mu.Lock()
	c.runCtx = ctx
	c.mu.Unlock()

	c.opts.Metrics.controllerStarted()
	defer c.opts.Metrics.controllerStopped()

	c.poll(ctx)

	ticker := time.NewTicker(c.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.stop()
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

// Refresh issues a poll right away, superseding any outstanding one. It is a
// no-op before Run has started or after it has returned.
func (c *Controller) Refresh() {
	c.mu.Lock()
	ctx := c.runCtx
	c.mu.Unlock()
	if ctx == nil {
		return
	}
	c.poll(ctx)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel carrying the latest applied state. A slow
// reader only ever sees the newest value. The channel is closed by cancel or
// when Run returns.
func (c *Controller) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (c *Controller) tick(ctx context.Context) {
	c.mu.Lock()
	busy := c.inFlight > 0
	c.mu.Unlock()
	if busy {
		c.opts.Metrics.observeSkip()
		c.opts.Logger.Debug("phase status poll still outstanding, skipping tick", "tournament_id", c.tournamentID)
		return
	}
	c.poll(ctx)
}

func (c *Controller) poll(ctx context.Context) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.issued++
	seq := c.issued
	c.inFlight++
	c.polls.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.polls.Done()

		pollCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()

		status, err := c.fetcher.PhaseStatus(pollCtx, c.tournamentID)
		c.apply(seq, status, err)
	}()
}

func (c *Controller) apply(seq uint64, status tournament.PhaseStatus, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if seq != c.issued {
		c.opts.Metrics.observePoll(resultStale)
		c.opts.Logger.Debug("discarding stale phase status", "tournament_id", c.tournamentID, "seq", seq, "latest", c.issued)
		return
	}

	var next State
	if err != nil {
		c.opts.Metrics.observePoll(resultError)
		c.opts.Logger.Warn("phase status poll failed, closing gates", "tournament_id", c.tournamentID, "error", err)
		next = Closed(err)
	} else {
		c.opts.Metrics.observePoll(resultOK)
		c.opts.Logger.Debug("phase status applied",
			"tournament_id", c.tournamentID,
			"seq", seq,
			"group_complete", status.GroupPhaseComplete,
			"knockout_complete", status.KnockoutPhaseComplete,
		)
		next = Derive(status)
	}
	next.TournamentID = c.tournamentID
	next.Seq = seq
	next.UpdatedAt = time.Now()

	c.state = next
	c.opts.Metrics.observeState(next)
	if c.stopped {
		return
	}
	for _, sub := range c.subs {
		select {
		case <-sub:
		default:
		}
		sub <- next
	}
}

// stop refuses new polls, waits for the outstanding ones and closes every
// subscription.
func (c *Controller) stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()

	c.polls.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
	c.opts.Metrics.forget(c.tournamentID)
}
