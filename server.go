package main

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// server holds everything the handlers share. The slots channel is a
// counting semaphore capping simultaneous conversions.
type server struct {
	// Metrics, accessed atomically.
	activeConversions    int64
	completedConversions int64
	failedConversions    int64
	processingNanos      int64

	converter   Converter
	store       *conversionStore
	limiter     *rate.Limiter
	slots       chan struct{}
	acquireWait time.Duration
	baseDir     string
	startTime   time.Time
}

func newServer(converter Converter, store *conversionStore, baseDir string) *server {
	return &server{
		converter:   converter,
		store:       store,
		limiter:     rate.NewLimiter(rate.Limit(RequestsPerSecond), BurstSize),
		slots:       make(chan struct{}, MaxConcurrentConversions),
		acquireWait: SlotAcquireWait,
		baseDir:     baseDir,
		startTime:   time.Now(),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.rateLimit(s.handleHome))
	mux.HandleFunc("/download", s.rateLimit(s.handleDownload))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}
