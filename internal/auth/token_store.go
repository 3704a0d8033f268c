package auth

import (
	"context"
	"time"

	"sneakerfav/internal/cache"
)

const endedSessionKeyPrefix = "session:ended:"

// RevocationStore remembers sessions that were ended before their token expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// TokenStore keeps ended session ids in Redis until their token would have expired.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements RevocationStore
var _ RevocationStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store. A nil cache disables revocation.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke marks a session id as ended for ttl.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Mark(ctx, endedSessionKeyPrefix+tokenID, ttl)
}

// IsRevoked reports whether the session id was ended.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	return s.cache.IsMarked(ctx, endedSessionKeyPrefix+tokenID)
}
