package engagement

import (
	"context"
	"sync"
	"time"

	"github.com/mickyas16/postpulse/internal/domain/contract"
	"github.com/mickyas16/postpulse/internal/infrastructure/metrics"
	usecasecontract "github.com/mickyas16/postpulse/internal/usecase/contract"
)

// flushTimeout is the context timeout for each flush pass.
const flushTimeout = 10 * time.Second

// Flusher periodically reconciles the fast counter store with the durable
// analytics records. Counters only grow, so a flush is an idempotent upsert
// of the current value per (post, metric).
type Flusher struct {
	counters  contract.ICounterStore
	analytics contract.IAnalyticsRepository
	logger    usecasecontract.IAppLogger
	interval  time.Duration
	wg        sync.WaitGroup
	closed    chan struct{}
	once      sync.Once
}

// NewFlusher creates a flusher that syncs counters every interval.
func NewFlusher(counters contract.ICounterStore, analytics contract.IAnalyticsRepository, logger usecasecontract.IAppLogger, interval time.Duration) *Flusher {
	return &Flusher{
		counters:  counters,
		analytics: analytics,
		logger:    logger,
		interval:  interval,
		closed:    make(chan struct{}),
	}
}

// Start launches the background flush loop.
func (f *Flusher) Start() {
	f.wg.Add(1)
	go f.loop()
}

// Stop triggers a final flush and waits for the loop to exit. Safe to call
// multiple times.
func (f *Flusher) Stop() {
	f.once.Do(func() {
		close(f.closed)
	})
	f.wg.Wait()
}

func (f *Flusher) loop() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.Flush()
		case <-f.closed:
			f.Flush()
			return
		}
	}
}

// Flush writes every known counter value into its analytics record. Failures
// are logged and retried implicitly on the next pass.
func (f *Flusher) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	snapshot, err := f.counters.Snapshot(ctx)
	if err != nil {
		f.logger.Warningf("counter snapshot failed, skipping flush: %v", err)
		metrics.IncFlushFailure()
		return
	}

	for key, value := range snapshot {
		if err := f.analytics.SyncCounter(ctx, key.PostID, key.Metric, value); err != nil {
			f.logger.Warningf("failed to flush counter %s/%s: %v", key.PostID, key.Metric, err)
			metrics.IncFlushFailure()
		}
	}
}
