// Package story delivers gameplay events to slow collaborators (loggers,
// the event journal, the chronicle panel) without ever blocking the
// simulation. Events are queued, rate limited and fanned out to handlers
// with bounded concurrency; handler failures are logged and swallowed.
package story

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/hexpop/internal/core"
)

// Handler consumes one event. Returning an error only produces a log line.
type Handler interface {
	Handle(ctx context.Context, ev core.Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev core.Event) error

// Handle calls f(ctx, ev).
func (f HandlerFunc) Handle(ctx context.Context, ev core.Event) error {
	return f(ctx, ev)
}

// Options configures a Dispatcher. Zero values pick defaults.
type Options struct {
	QueueSize     int           // Pending events before new ones are dropped (default 64)
	Workers       int           // Concurrent handler calls (default 4)
	RatePerSecond float64       // Event throughput cap; 0 means unlimited
	Burst         int           // Limiter burst (default 1)
	Timeout       time.Duration // Per-handler deadline (default 5s)
	Logger        *log.Logger   // Defaults to a discarding logger
}

// Dispatcher is a core.Observer that hands events to handlers off the
// simulation goroutine.
type Dispatcher struct {
	queue    chan core.Event
	handlers []Handler
	limiter  *rate.Limiter
	swg      sizedwaitgroup.SizedWaitGroup
	logger   *log.Logger
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once

	dropped   atomic.Int64
	delivered atomic.Int64
}

var _ core.Observer = (*Dispatcher)(nil)

// NewDispatcher starts a dispatcher delivering to the given handlers.
func NewDispatcher(opts Options, handlers ...Handler) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		queue:    make(chan core.Event, opts.QueueSize),
		handlers: handlers,
		limiter:  rate.NewLimiter(limit, opts.Burst),
		swg:      sizedwaitgroup.New(opts.Workers),
		logger:   opts.Logger,
		timeout:  opts.Timeout,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go d.pump()
	return d
}

// Notify enqueues an event. It never blocks: when the queue is full or the
// dispatcher is closed the event is dropped and counted.
func (d *Dispatcher) Notify(ev core.Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.dropped.Add(1)
		d.logger.Debug("story queue full, dropping event", "kind", ev.Kind, "game", ev.GameID)
	}
}

// Dropped returns the number of events that were never queued.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Delivered returns the number of successful handler calls.
func (d *Dispatcher) Delivered() int64 {
	return d.delivered.Load()
}

// Close stops accepting events, delivers everything already queued and
// waits for in-flight handlers.
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
	return nil
}

func (d *Dispatcher) pump() {
	defer close(d.done)
	defer d.cancel()

	for ev := range d.queue {
		if err := d.limiter.Wait(d.ctx); err != nil {
			d.logger.Warn("story limiter failed", "err", err)
			continue
		}
		for _, h := range d.handlers {
			d.swg.Add()
			go d.deliver(h, ev)
		}
	}
	d.swg.Wait()
}

func (d *Dispatcher) deliver(h Handler, ev core.Event) {
	defer d.swg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("story handler panicked", "handler", fmt.Sprintf("%T", h), "kind", ev.Kind, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	if err := h.Handle(ctx, ev); err != nil {
		d.logger.Warn("story handler failed", "handler", fmt.Sprintf("%T", h), "kind", ev.Kind, "err", err)
		return
	}
	d.delivered.Add(1)
}
