package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dashboard:session:"

// RedisStore keeps sessions in Redis so several dashboard instances can
// serve the same browser.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the Redis server at url (redis://host:port/db).
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("session: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("session: connect to redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttlOrDefault(ttl)}, nil
}

// Get reads the session hash. Each session field is one hash field.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	fields, err := r.client.HGetAll(ctx, keyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("session: redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	rec := make(record, len(fields))
	for field, v := range fields {
		rec[field] = []byte(v)
	}
	return decodeRecord(id, rec)
}

// Save writes the changed fields and renews the expiry in one transaction.
// A new or reset session, or one whose hash expired, replaces the hash.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	key := keyPrefix + s.ID
	replace := s.replace
	if !replace {
		n, err := r.client.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("session: redis exists: %w", err)
		}
		replace = n == 0
	}

	var (
		set record
		del []string
		err error
	)
	if replace {
		set, err = fullRecord(s)
	} else {
		set, del, err = changes(s)
	}
	if err != nil {
		return err
	}

	values := make(map[string]any, len(set))
	for field, b := range set {
		values[field] = b
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if replace {
			pipe.Del(ctx, key)
		}
		if len(del) > 0 {
			pipe.HDel(ctx, key, del...)
		}
		if len(values) > 0 {
			pipe.HSet(ctx, key, values)
		}
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: redis save: %w", err)
	}
	s.markClean()
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
