package engagement

import (
	"context"
	"sync"
	"time"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/infrastructure/metrics"
	usecasecontract "github.com/mickyas16/postpulse/internal/usecase/contract"
)

// applyTimeout bounds each counter mutation so a stalled backend cannot pin a
// worker indefinitely.
const applyTimeout = 5 * time.Second

// Dispatcher accepts engagement events from the read path and applies them to
// the counter store on a fixed worker pool. Emit never blocks: when the queue
// is saturated the event is dropped and logged, keeping counter-store latency
// off the response path.
type Dispatcher struct {
	events      chan Event
	counters    contract.ICounterStore
	dedup       contract.IViewDedupFilter
	logger      usecasecontract.IAppLogger
	dedupWindow time.Duration
	workers     int
	wg          sync.WaitGroup
	closed      chan struct{}
	once        sync.Once
}

// NewDispatcher creates a dispatcher with a bounded queue of queueSize events
// consumed by the given number of workers.
func NewDispatcher(counters contract.ICounterStore, dedup contract.IViewDedupFilter, logger usecasecontract.IAppLogger, queueSize, workers int, dedupWindow time.Duration) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		events:      make(chan Event, queueSize),
		counters:    counters,
		dedup:       dedup,
		logger:      logger,
		dedupWindow: dedupWindow,
		workers:     workers,
		closed:      make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
}

// Stop signals the workers to drain the queue and waits for them to finish.
// It is safe to call multiple times.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.closed)
	})
	d.wg.Wait()
}

// Emit queues an event for asynchronous processing and returns immediately.
// Events emitted after Stop, or while the queue is full, are dropped.
func (d *Dispatcher) Emit(event Event) {
	select {
	case <-d.closed:
		d.logger.Warningf("engagement dispatcher stopped, dropping %s event for post %s", event.Kind, event.PostID)
		metrics.IncEventDropped(string(event.Kind))
		return
	default:
	}

	select {
	case d.events <- event:
		metrics.IncEventEnqueued(string(event.Kind))
	default:
		d.logger.Warningf("engagement queue full, dropping %s event for post %s", event.Kind, event.PostID)
		metrics.IncEventDropped(string(event.Kind))
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case event := <-d.events:
			d.apply(event)
		case <-d.closed:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case event := <-d.events:
					d.apply(event)
				default:
					return
				}
			}
		}
	}
}

// apply performs the counter mutation for one event. Failures are logged and
// dropped: engagement counts are best-effort and must never surface to the
// read path that produced them.
func (d *Dispatcher) apply(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	switch event.Kind {
	case KindImpression:
		if _, err := d.counters.Increment(ctx, event.PostID, contract.MetricImpressions); err != nil {
			d.logger.Warningf("failed to count impression for post %s: %v", event.PostID, err)
			metrics.IncEventFailed(string(event.Kind))
		}
	case KindView:
		firstSeen, err := d.dedup.CheckAndSet(ctx, event.PostID, event.ViewerIP, d.dedupWindow)
		if err != nil {
			d.logger.Warningf("view dedup check failed for post %s: %v", event.PostID, err)
			metrics.IncEventFailed(string(event.Kind))
			return
		}
		if !firstSeen {
			metrics.IncViewDeduped()
			return
		}
		if _, err := d.counters.Increment(ctx, event.PostID, contract.MetricViews); err != nil {
			d.logger.Warningf("failed to count view for post %s: %v", event.PostID, err)
			metrics.IncEventFailed(string(event.Kind))
		}
	case KindClick:
		if _, err := d.counters.Increment(ctx, event.PostID, contract.MetricClicks); err != nil {
			d.logger.Warningf("failed to count click for post %s: %v", event.PostID, err)
			metrics.IncEventFailed(string(event.Kind))
		}
	default:
		d.logger.Warningf("unknown engagement event kind %q for post %s", event.Kind, event.PostID)
	}
}
