package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists projects as JSON blobs in Redis, one key per project
// plus a set indexing the known ids.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig configures the Redis project store connection and keyspace.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Prefix   string // key prefix, e.g. "sceneforge:project"
	TTL      time.Duration
}

// NewRedisStoreFromEnv creates a RedisStore using environment variables
// REDIS_ADDR, REDIS_PASS, REDIS_DB (optional), PROJECT_KEY_PREFIX (optional)
// and PROJECT_TTL_SECONDS (optional, 0 disables expiry).
func NewRedisStoreFromEnv() (*RedisStore, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	pass := os.Getenv("REDIS_PASS")
	db := 0
	if d := os.Getenv("REDIS_DB"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v >= 0 {
			db = v
		}
	}
	prefix := os.Getenv("PROJECT_KEY_PREFIX")
	if prefix == "" {
		prefix = "sceneforge:project"
	}
	var ttl time.Duration
	if t := os.Getenv("PROJECT_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	cfg := RedisConfig{Addr: addr, Password: pass, DB: db, Prefix: prefix, TTL: ttl}
	return NewRedisStore(cfg)
}

// NewRedisStore creates a RedisStore and verifies connectivity.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &RedisStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":ids"
}

// Save writes the encoded project and registers its id in the index set.
// With a TTL configured, the expiry slides on every save.
func (s *RedisStore) Save(ctx context.Context, p *Project) error {
	data, err := encode(p)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(p.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), p.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// Get loads and decodes one project.
func (s *RedisStore) Get(ctx context.Context, id string) (*Project, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return decode(data)
}

// List loads every indexed project. Ids whose blob has expired are pruned
// from the index as a side effect.
func (s *RedisStore) List(ctx context.Context) ([]*Project, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]*Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			s.client.SRem(ctx, s.indexKey(), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes the project blob and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	s.client.SRem(ctx, s.indexKey(), id)
	if n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}
