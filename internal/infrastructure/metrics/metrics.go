package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	listCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_list_cache_hits_total",
		Help: "Number of post list reads served from cache.",
	})
	listCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_list_cache_misses_total",
		Help: "Number of post list reads that fell through to the store.",
	})
	detailCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_detail_cache_hits_total",
		Help: "Number of post detail reads served from cache.",
	})
	detailCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_detail_cache_misses_total",
		Help: "Number of post detail reads that fell through to the store.",
	})
	cacheHitSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_cache_hit_seconds_total",
		Help: "Cumulative time spent on cache lookups that hit.",
	})
	cacheMissSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_cache_miss_seconds_total",
		Help: "Cumulative time spent on cache lookups that missed.",
	})

	eventsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpulse_engagement_events_enqueued_total",
		Help: "Engagement events accepted by the dispatcher queue.",
	}, []string{"kind"})
	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpulse_engagement_events_dropped_total",
		Help: "Engagement events dropped because the queue was saturated.",
	}, []string{"kind"})
	eventsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postpulse_engagement_events_failed_total",
		Help: "Engagement events whose counter mutation failed.",
	}, []string{"kind"})
	eventsDeduped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_engagement_views_deduped_total",
		Help: "Detail-view events suppressed by the dedup filter.",
	})
	flushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postpulse_counter_flush_failures_total",
		Help: "Failed counter flushes into the analytics store.",
	})
)

func IncListHit()    { listCacheHits.Inc() }
func IncListMiss()   { listCacheMisses.Inc() }
func IncDetailHit()  { detailCacheHits.Inc() }
func IncDetailMiss() { detailCacheMisses.Inc() }

func AddHitDuration(seconds float64)  { cacheHitSeconds.Add(seconds) }
func AddMissDuration(seconds float64) { cacheMissSeconds.Add(seconds) }

func IncEventEnqueued(kind string) { eventsEnqueued.WithLabelValues(kind).Inc() }
func IncEventDropped(kind string)  { eventsDropped.WithLabelValues(kind).Inc() }
func IncEventFailed(kind string)   { eventsFailed.WithLabelValues(kind).Inc() }
func IncViewDeduped()              { eventsDeduped.Inc() }
func IncFlushFailure()             { flushFailures.Inc() }
