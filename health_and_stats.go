package main

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	status := "healthy"
	if len(s.slots) == cap(s.slots) {
		status = "overloaded"
	}
	health := HealthStatus{
		Status:               status,
		ActiveConversions:    atomic.LoadInt64(&s.activeConversions),
		CompletedConversions: atomic.LoadInt64(&s.completedConversions),
		FailedConversions:    atomic.LoadInt64(&s.failedConversions),
		CachedConversions:    s.store.Len(),
		Slots:                cap(s.slots),
		Uptime:               time.Since(s.startTime).String(),
		MemoryUsage:          getMemoryUsage(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

func (s *server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	metrics := map[string]interface{}{
		"active_conversions":    atomic.LoadInt64(&s.activeConversions),
		"completed_conversions": atomic.LoadInt64(&s.completedConversions),
		"failed_conversions":    atomic.LoadInt64(&s.failedConversions),
		"cached_conversions":    s.store.Len(),
		"conversion_slots":      cap(s.slots),
		"rate_limit":            RequestsPerSecond,
		"rate_burst":            BurstSize,
		"retention_hours":       FileRetention.Hours(),
		"uptime_seconds":        time.Since(s.startTime).Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)
	stats := map[string]interface{}{
		"cached_conversions":     s.store.Len(),
		"active_conversions":     atomic.LoadInt64(&s.activeConversions),
		"completed_conversions":  atomic.LoadInt64(&s.completedConversions),
		"failed_conversions":     atomic.LoadInt64(&s.failedConversions),
		"success_rate":           s.successRate(),
		"avg_processing_seconds": s.avgProcessingSeconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *server) successRate() float64 {
	completed := atomic.LoadInt64(&s.completedConversions)
	failed := atomic.LoadInt64(&s.failedConversions)
	total := completed + failed
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func (s *server) avgProcessingSeconds() float64 {
	completed := atomic.LoadInt64(&s.completedConversions)
	if completed == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&s.processingNanos)).Seconds() / float64(completed)
}
