package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SessionStore resolves session tokens to user IDs. Sessions are written by
// the external auth service; this store only reads them.
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Resolve returns the user ID for a session token, or "" when the token is
// unknown. Unknown tokens are not an error: requests without a valid session
// proceed as anonymous.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}

	userID, err := s.client.Get(ctx, s.prefix+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return userID, nil
}
