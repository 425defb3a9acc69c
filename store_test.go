package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
)

func TestStorePutGet(t *testing.T) {
	dir := t.TempDir()
	path := writeTestMP3(t, dir, "song.mp3", []byte("ID3"))
	store := newTestStore()
	conv := finishedConversion("conv-1", "https://example.com/v", "song", path)

	store.Put(context.Background(), conv)

	got, ok := store.Get(context.Background(), conv.URL)
	if !ok {
		t.Fatal("Expected a store hit")
	}
	if got.ID != conv.ID || got.FilePath != path {
		t.Errorf("Got %+v, expected %+v", got, conv)
	}
	if store.Len() != 1 {
		t.Errorf("Expected store length 1, got %d", store.Len())
	}
}

func TestStoreGetDropsMissingFile(t *testing.T) {
	store := newTestStore()
	conv := finishedConversion("conv-1", "https://example.com/v", "gone",
		filepath.Join(t.TempDir(), "gone.mp3"))
	store.Put(context.Background(), conv)

	if _, ok := store.Get(context.Background(), conv.URL); ok {
		t.Error("Expected a miss for an entry whose file is gone")
	}
	if store.Len() != 0 {
		t.Errorf("Expected dead entry to be dropped, store length %d", store.Len())
	}
}

func TestStoreGetUnknownURL(t *testing.T) {
	store := newTestStore()
	if _, ok := store.Get(context.Background(), "https://example.com/unknown"); ok {
		t.Error("Expected a miss for an unknown URL")
	}
}

// TestStoreRedisMirror exercises the Redis-backed paths end to end.
// Run with a local Redis: go test -run TestStoreRedisMirror -v
func TestStoreRedisMirror(t *testing.T) {
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: RedisPassword,
		DB:       RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not reachable at %s - skipping mirror test: %v", RedisAddr, err)
	}
	defer rdb.Close()

	dir := t.TempDir()
	path := writeTestMP3(t, dir, "mirrored.mp3", []byte("ID3"))
	store := &conversionStore{
		byURL: make(map[string]*Conversion),
		rdb:   rdb,
		ttl:   time.Minute,
	}
	conv := finishedConversion("conv-mirror", "https://example.com/watch?v=redis-mirror", "mirrored", path)
	store.Put(ctx, conv)
	defer store.Delete(ctx, conv.URL)

	if d := rdb.TTL(ctx, conversionKey(conv.URL)).Val(); d <= 0 {
		t.Errorf("Expected a TTL on the mirrored key, got %v", d)
	}

	// A fresh map stands in for a restarted process.
	store.mu.Lock()
	store.byURL = make(map[string]*Conversion)
	store.mu.Unlock()

	got, ok := store.Get(ctx, conv.URL)
	if !ok {
		t.Fatal("Expected the mirror to repopulate the store")
	}
	if got.ID != conv.ID || got.FilePath != conv.FilePath {
		t.Errorf("Got %+v, expected %+v", got, conv)
	}
	if store.Len() != 1 {
		t.Errorf("Expected the entry back in memory, store length %d", store.Len())
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	store.mu.Lock()
	store.byURL = make(map[string]*Conversion)
	store.mu.Unlock()

	if _, ok := store.Get(ctx, conv.URL); ok {
		t.Error("Expected a miss once the file is gone")
	}
	if err := rdb.Get(ctx, conversionKey(conv.URL)).Err(); err != redis.Nil {
		t.Errorf("Expected the dead entry deleted from Redis, got %v", err)
	}
}

func TestStoreEvictOlderThan(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore()

	oldConv := finishedConversion("conv-old", "https://example.com/old", "old",
		writeTestMP3(t, dir, "old.mp3", []byte("ID3")))
	oldConv.CreatedAt = time.Now().Add(-48 * time.Hour)
	store.Put(context.Background(), oldConv)

	newConv := finishedConversion("conv-new", "https://example.com/new", "new",
		writeTestMP3(t, dir, "new.mp3", []byte("ID3")))
	store.Put(context.Background(), newConv)

	deadConv := finishedConversion("conv-dead", "https://example.com/dead", "dead",
		filepath.Join(dir, "never-written.mp3"))
	store.Put(context.Background(), deadConv)

	evicted := store.evictOlderThan(time.Now().Add(-24 * time.Hour))
	if evicted != 2 {
		t.Errorf("Expected 2 evictions (expired + dead file), got %d", evicted)
	}
	if _, ok := store.Get(context.Background(), newConv.URL); !ok {
		t.Error("Fresh entry should survive eviction")
	}
	if _, ok := store.Get(context.Background(), oldConv.URL); ok {
		t.Error("Expired entry should be gone")
	}
}
