package cache

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	// BucketPrefix namespaces every cache bucket this service owns.
	BucketPrefix = "aerovital-"

	// PrecacheBucket is the versioned shell bucket. Bumping the version is
	// the only supported cache-invalidation mechanism: buckets of any other
	// version are swept on activation.
	PrecacheBucket = "aerovital-v3.0"

	// RuntimeBucket holds responses cached while serving.
	RuntimeBucket = "aerovital-runtime"
)

// ErrCacheMiss - no entry stored under the requested key
var ErrCacheMiss = errors.New("cache entry not found")

// Entry is one cached response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store is the runtime cache bucket. The redis implementation backs
// production; tests inject a memory store.
type Store interface {
	Get(ctx context.Context, bucket, key string) (*Entry, error)
	Put(ctx context.Context, bucket, key string, entry *Entry) error
	// Sweep deletes every bucket under BucketPrefix that is not listed in
	// keep.
	Sweep(ctx context.Context, keep ...string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore - runtime cache bucket on redis
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func storageKey(bucket, key string) string {
	return bucket + ":" + key
}

func (s *redisStore) Get(ctx context.Context, bucket, key string) (*Entry, error) {
	data, err := s.client.Get(ctx, storageKey(bucket, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *redisStore) Put(ctx context.Context, bucket, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, storageKey(bucket, key), data, 0).Err()
}

func (s *redisStore) Sweep(ctx context.Context, keep ...string) error {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	iter := s.client.Scan(ctx, 0, BucketPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		bucket := key
		if i := strings.Index(key, ":"); i >= 0 {
			bucket = key[:i]
		}
		if kept[bucket] {
			continue
		}
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// MemoryStore is a map-backed Store used by tests and as a degraded mode
// when redis is not configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (s *MemoryStore) Get(_ context.Context, bucket, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[storageKey(bucket, key)]
	if !ok {
		return nil, ErrCacheMiss
	}
	return entry, nil
}

func (s *MemoryStore) Put(_ context.Context, bucket, key string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[storageKey(bucket, key)] = entry
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, keep ...string) error {
	kept := make(map[string]bool, len(keep))
	for _, k := range keep {
		kept[k] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		bucket := key
		if i := strings.Index(key, ":"); i >= 0 {
			bucket = key[:i]
		}
		if strings.HasPrefix(bucket, BucketPrefix) && !kept[bucket] {
			delete(s.entries, key)
		}
	}
	return nil
}

var _ http.Handler = (*Middleware)(nil)
