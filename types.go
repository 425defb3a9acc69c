package main

import "time"

// Conversion describes one finished run of the extraction pipeline. Records
// are kept in the store so a repeat request for the same URL can be served
// from disk without converting again.
type Conversion struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Uploader    string    `json:"uploader"`
	Duration    float64   `json:"duration"`
	SourceExt   string    `json:"source_ext"`
	FilePath    string    `json:"file_path"`
	Filename    string    `json:"filename"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at"`
}

type HealthStatus struct {
	Status               string `json:"status"`
	ActiveConversions    int64  `json:"active_conversions"`
	CompletedConversions int64  `json:"completed_conversions"`
	FailedConversions    int64  `json:"failed_conversions"`
	CachedConversions    int    `json:"cached_conversions"`
	Slots                int    `json:"slots"`
	Uptime               string `json:"uptime"`
	MemoryUsage          string `json:"memory_usage"`
}
