package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys.
type ContextKey string

// UserIDKey is the context key for the request's resolved user ID.
const UserIDKey ContextKey = "user_id"

// AnonymousUserID scopes requests that carry no valid session cookie.
const AnonymousUserID = "anonymous"

// SessionResolver resolves a session token to a user ID.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionMiddleware attaches the authenticated user ID to the request
// context. Missing or unknown cookies degrade to the anonymous user instead
// of rejecting the request.
type SessionMiddleware struct {
	resolver   SessionResolver
	cookieName string
	logger     zerolog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware.
func NewSessionMiddleware(resolver SessionResolver, cookieName string, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		resolver:   resolver,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Wrap wraps an http.Handler with session resolution.
func (m *SessionMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			token = cookie.Value
		}

		userID, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			// Session backend trouble is not the client's fault; degrade
			// to anonymous rather than failing the request.
			m.logger.Warn().Err(err).Msg("session lookup failed")
			userID = ""
		}
		if userID == "" {
			userID = AnonymousUserID
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the user ID attached to the context, or the anonymous user
// when no session middleware ran.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok && id != "" {
		return id
	}
	return AnonymousUserID
}
