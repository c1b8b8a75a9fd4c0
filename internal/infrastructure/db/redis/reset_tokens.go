package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// ResetTokenStore keeps single-use credential-reset tokens with a TTL.
// Key format: reset:<token> -> principal id
type ResetTokenStore struct {
	client *redis.Client
}

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Save stores the token for ttl. A token left unconsumed expires on its own.
func (s *ResetTokenStore) Save(ctx context.Context, token, principalID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), principalID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the token, so a reset link can be
// used exactly once. Unknown or expired tokens yield domain.ErrInvalidToken.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	principalID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return principalID, nil
}

func (s *ResetTokenStore) key(token string) string {
	return "reset:" + token
}
