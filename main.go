package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	baseDir := filepath.Join(os.TempDir(), OutputDirName)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	store := newConversionStore(ctx, FileRetention)
	converter := newYTDLPConverter(ctx, baseDir)
	srv := newServer(converter, store, baseDir)

	// Start retention cleanup routine
	go srv.startCleanup(ctx)

	httpSrv := &http.Server{
		Addr:    ListenAddr,
		Handler: srv.routes(),
	}

	setupGracefulShutdown(httpSrv, cancel)

	fmt.Printf("🚀 Server running on http://localhost%s with %d conversion slots\n", ListenAddr, MaxConcurrentConversions)
	fmt.Printf("📊 Rate limit: %d req/s (burst: %d)\n", RequestsPerSecond, BurstSize)
	fmt.Printf("📁 Output directory: %s\n", baseDir)

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("✅ Graceful shutdown completed")
}
