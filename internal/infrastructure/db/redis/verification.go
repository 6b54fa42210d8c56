package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/identity-system/internal/core/domain"
)

// VerificationStore keeps one-shot email verification tokens in Redis.
// Key format: verify:<token> → user id, expiring after the caller's TTL.
type VerificationStore struct {
	client *redis.Client
}

// NewVerificationStore creates a VerificationStore wrapping the given client.
func NewVerificationStore(client *redis.Client) *VerificationStore {
	return &VerificationStore{client: client}
}

// Create records the token for the user. Re-sending a verification mail
// creates a fresh token; old ones simply age out.
func (s *VerificationStore) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	return nil
}

// Consume resolves the token to its user id and deletes it atomically, so a
// confirmation link works exactly once.
func (s *VerificationStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrVerificationNotFound
		}
		return "", fmt.Errorf("consume verification token: %w", err)
	}
	return userID, nil
}

func (s *VerificationStore) key(token string) string {
	return "verify:" + token
}
