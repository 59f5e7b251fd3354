package storage

import (
	"context"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/redis/go-redis/v9"
)

const revokedSessionPrefix = "session:revoked:"

// SessionStorage tracks session tokens that were logged out before they expired.
type SessionStorage interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisSessionStorage struct {
	Client *redis.Client
}

// MustRedis parses a redis:// URL into a client. Connection problems surface on first use.
func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		logging.Log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// Revoke keeps the token id blocked until the token would have expired anyway.
func (s *RedisSessionStorage) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.Client.Set(ctx, revokedSessionPrefix+tokenID, "1", ttl).Err(); err != nil {
		logging.Log.Errorf("SESSION: failed to revoke %s: %v", tokenID, err)
		return err
	}
	return nil
}

func (s *RedisSessionStorage) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.Client.Exists(ctx, revokedSessionPrefix+tokenID).Result()
	if err != nil {
		logging.Log.Errorf("SESSION: revocation lookup for %s failed: %v", tokenID, err)
		return false, err
	}
	return n > 0, nil
}
