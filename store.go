package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// conversionStore keeps completed conversions keyed by source URL so repeat
// requests are served from disk instead of converting again. Entries live in
// memory and, when Redis is reachable, are mirrored there with the retention
// TTL so they survive restarts.
type conversionStore struct {
	mu    sync.RWMutex
	byURL map[string]*Conversion
	rdb   *redis.Client
	ttl   time.Duration
}

func newConversionStore(ctx context.Context, ttl time.Duration) *conversionStore {
	s := &conversionStore{
		byURL: make(map[string]*Conversion),
		ttl:   ttl,
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: RedisPassword,
		DB:       RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("⚠️  Redis not available, using in-memory store only: %v", err)
	} else {
		log.Println("✅ Redis connected successfully")
		s.rdb = rdb
	}
	return s
}

func conversionKey(url string) string {
	return fmt.Sprintf("conversion:%s", url)
}

// Get returns the recorded conversion for a URL if its file still exists on
// disk. Entries whose file is gone are dropped so the caller converts fresh.
func (s *conversionStore) Get(ctx context.Context, url string) (*Conversion, bool) {
	s.mu.RLock()
	conv, ok := s.byURL[url]
	s.mu.RUnlock()

	if !ok && s.rdb != nil {
		val, err := s.rdb.Get(ctx, conversionKey(url)).Result()
		if err == nil {
			var c Conversion
			if json.Unmarshal([]byte(val), &c) == nil {
				conv = &c
				ok = true
				s.mu.Lock()
				s.byURL[url] = conv
				s.mu.Unlock()
			}
		}
	}

	if !ok {
		return nil, false
	}
	if !fileExists(conv.FilePath) {
		s.Delete(ctx, url)
		return nil, false
	}
	return conv, true
}

func (s *conversionStore) Put(ctx context.Context, conv *Conversion) {
	s.mu.Lock()
	s.byURL[conv.URL] = conv
	s.mu.Unlock()

	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(conv)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, conversionKey(conv.URL), data, s.ttl).Err(); err != nil {
		log.Printf("⚠️  Failed to mirror conversion %s to Redis: %v", conv.ID, err)
	}
}

func (s *conversionStore) Delete(ctx context.Context, url string) {
	s.mu.Lock()
	delete(s.byURL, url)
	s.mu.Unlock()

	if s.rdb != nil {
		s.rdb.Del(ctx, conversionKey(url))
	}
}

func (s *conversionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byURL)
}

// evictOlderThan drops in-memory entries created before the cutoff. Redis
// entries expire on their own via the TTL set in Put; the on-disk files are
// removed by the retention sweep. Returns the number of evicted entries.
func (s *conversionStore) evictOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for url, conv := range s.byURL {
		if conv.CreatedAt.Before(cutoff) {
			delete(s.byURL, url)
			evicted++
			continue
		}
		if _, err := os.Stat(conv.FilePath); err != nil {
			delete(s.byURL, url)
			evicted++
		}
	}
	return evicted
}
