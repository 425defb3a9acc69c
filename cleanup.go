package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

// startCleanup runs the retention janitor until the context is cancelled.
// Converted files stay on disk after the response so repeat requests can be
// served from the store; this sweep is the only thing that deletes them.
func (s *server) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweepExpired()
		case <-ctx.Done():
			return
		}
	}
}

func (s *server) sweepExpired() {
	cutoff := time.Now().Add(-FileRetention)
	removed := removeScratchDirsOlderThan(s.baseDir, cutoff)
	evicted := s.store.evictOlderThan(cutoff)
	if removed > 0 || evicted > 0 {
		log.Printf("🧹 Cleanup removed %d scratch directories, evicted %d store entries", removed, evicted)
	}
}

// removeScratchDirsOlderThan deletes per-conversion directories whose last
// modification predates the cutoff. Returns the number removed.
func removeScratchDirsOlderThan(baseDir string, cutoff time.Time) int {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		log.Printf("⚠️  Cleanup could not read %s: %v", baseDir, err)
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(baseDir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				log.Printf("⚠️  Cleanup failed to remove %s: %v", path, err)
				continue
			}
			removed++
		}
	}
	return removed
}
