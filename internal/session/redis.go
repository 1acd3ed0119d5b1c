package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"promptdeck/internal/nav"
)

const keyPrefix = "promptdeck:session:"

// RedisStore keeps sessions in Redis as JSON with a sliding TTL, so several
// server processes can share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("session.NewRedisStore: client is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Dial parses a redis:// URL and checks the server answers.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return c, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (nav.PageState, bool, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nav.PageState{}, false, nil
	}
	if err != nil {
		return nav.PageState{}, false, err
	}
	var st nav.PageState
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt entry is as good as no session.
		_ = s.client.Del(ctx, sessionKey(id)).Err()
		return nav.PageState{}, false, nil
	}
	return st, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, st nav.PageState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(id), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id string) string { return keyPrefix + id }
