package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/recipe-share/internal/logger"
)

const revokedSessionKeyPrefix = "session:revoked:"

// SessionRevocationRepository keeps the ids of logged-out session tokens in Redis
// until the tokens would have expired on their own.
type SessionRevocationRepository struct {
	client *redis.Client
}

// NewSessionRevocationRepository creates a new repository instance
func NewSessionRevocationRepository(client *redis.Client) *SessionRevocationRepository {
	return &SessionRevocationRepository{client: client}
}

// Revoke marks tokenID as revoked for ttl. A non-positive ttl means the token
// has already expired and nothing is stored.
func (r *SessionRevocationRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := revokedSessionKeyPrefix + tokenID
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.Log.Infow("revoke session",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether tokenID was revoked.
func (r *SessionRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedSessionKeyPrefix + tokenID
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		logger.Log.Errorw("failed to check session revocation", "key", key, "error", err)
		return false, err
	}
	return n > 0, nil
}
