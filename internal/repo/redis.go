package repo

// This file holds the Redis adapters: a StateStore that keeps each blob under
// "<prefix>:<key>" and an idempotency store built on SET NX with a TTL.

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// NewRedisClient creates a client and pings the server with a short timeout.
// Unlike the SQL backends there is no lazy connect: a Redis backend that cannot
// be reached at startup is an error.
func NewRedisClient(ctx context.Context, o RedisOptions) (*redis.Client, error) {
	addr := strings.TrimSpace(o.Addr)
	if addr == "" {
		addr = "localhost:6379"
	}
	var tlsConf *tls.Config
	if o.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  o.Password,
		DB:        o.DB,
		TLSConfig: tlsConf,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RedisStateStore keeps state blobs as plain string values.
type RedisStateStore struct {
	Client *redis.Client
	Prefix string
}

// NewRedisStateStore returns a StateStore over client. An empty prefix
// defaults to "tables".
func NewRedisStateStore(client *redis.Client, prefix string) *RedisStateStore {
	if prefix == "" {
		prefix = "tables"
	}
	return &RedisStateStore{Client: client, Prefix: prefix}
}

func (s *RedisStateStore) key(k string) string { return s.Prefix + ":" + k }

// Load returns the blob under key, or (nil, nil) when absent.
func (s *RedisStateStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.Client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

// Save overwrites the blob under key. Blobs never expire.
func (s *RedisStateStore) Save(ctx context.Context, key string, value []byte) error {
	return s.Client.Set(ctx, s.key(key), value, 0).Err()
}

// RedisIdempotency stores key → reservation id with a TTL.
type RedisIdempotency struct {
	Client *redis.Client
	Prefix string
}

func (r *RedisIdempotency) key(k string) string {
	p := r.Prefix
	if p == "" {
		p = "tables"
	}
	return p + ":idem:" + k
}

// Lookup returns the reservation id recorded for key, or ErrNotFound.
func (r *RedisIdempotency) Lookup(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrNotFound
	}
	id, err := r.Client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return id, err
}

// Remember records key → reservationID for ttl, or returns ErrDuplicate when
// the key is already taken.
func (r *RedisIdempotency) Remember(ctx context.Context, key, reservationID string, ttl time.Duration) error {
	ok, err := r.Client.SetNX(ctx, r.key(key), reservationID, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}
