// Package poller implements the client-side fallback for observing
// relationship transitions when a push channel is unavailable: a bounded,
// cancellable loop that re-queries the effective status until a terminal
// state is seen.
package poller

import (
	"context"
	"sync"
	"time"

	"fitmatch/backend/internal/models"
	"fitmatch/backend/internal/relations"
)

// StatusFunc queries the current effective status of a relationship.
type StatusFunc func(ctx context.Context) (models.RelationStatus, error)

// Options bound the polling loop.
type Options struct {
	// Interval is the initial delay between polls.
	Interval time.Duration
	// MaxInterval caps the exponential backoff. Zero disables backoff.
	MaxInterval time.Duration
	// MaxDuration stops the loop after this much total time. Zero means
	// the loop runs until a terminal status or cancellation.
	MaxDuration time.Duration
}

// Poller polls a StatusFunc until a terminal status (accepted or rejected)
// is observed, then invokes its callback exactly once and stops. Query
// errors are ignored and retried on the next tick; the poller's own
// schedule is the retry policy.
type Poller struct {
	status StatusFunc
	opts   Options

	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Poller. Interval defaults to one second.
func New(status StatusFunc, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &Poller{status: status, opts: opts}
}

// Start launches the polling loop. onResult receives the terminal status,
// or relations.StatusNone when MaxDuration elapses first. Start may be
// called once.
func (p *Poller) Start(ctx context.Context, onResult func(models.RelationStatus)) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go p.run(ctx, onResult)
}

// Stop cancels the loop and waits for it to exit. Idempotent; safe to call
// from component teardown regardless of whether a result was delivered.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	if p.done != nil {
		<-p.done
	}
}

func (p *Poller) run(ctx context.Context, onResult func(models.RelationStatus)) {
	defer close(p.done)
	defer p.cancel()

	interval := p.opts.Interval
	timer := time.NewTimer(interval)
	defer timer.Stop()

	var deadline <-chan time.Time
	if p.opts.MaxDuration > 0 {
		deadlineTimer := time.NewTimer(p.opts.MaxDuration)
		defer deadlineTimer.Stop()
		deadline = deadlineTimer.C
	}

	deliver := func(status models.RelationStatus) {
		p.once.Do(func() { onResult(status) })
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			deliver(relations.StatusNone)
			return
		case <-timer.C:
		}

		status, err := p.status(ctx)
		if err == nil && status.Terminal() {
			deliver(status)
			return
		}

		if p.opts.MaxInterval > 0 {
			interval *= 2
			if interval > p.opts.MaxInterval {
				interval = p.opts.MaxInterval
			}
		}
		timer.Reset(interval)
	}
}
