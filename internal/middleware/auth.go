package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/tabsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ParticipantIDKey is the context key for the authenticated participant ID.
	ParticipantIDKey contextKey = "participant_id"
	// TabIDKey is the context key for the tab the caller's token is scoped to.
	TabIDKey contextKey = "tab_id"
)

// GetParticipantID extracts the caller's participant ID from the context.
// Returns empty string if not found.
func GetParticipantID(ctx context.Context) string {
	id, _ := ctx.Value(ParticipantIDKey).(string)
	return id
}

// GetTabID extracts the tab the caller is scoped to.
// Returns empty string for unscoped callers.
func GetTabID(ctx context.Context) string {
	id, _ := ctx.Value(TabIDKey).(string)
	return id
}

// WithCaller returns a context carrying the given caller identity.
func WithCaller(ctx context.Context, tabID, participantID string) context.Context {
	ctx = context.WithValue(ctx, ParticipantIDKey, participantID)
	return context.WithValue(ctx, TabIDKey, tabID)
}

// RequireAuth returns an interceptor that validates guest tokens and rejects
// requests without one. The caller's participant and tab go into the context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithCaller(ctx, claims.TabID, claims.ParticipantID), req)
		}
	}
}

// OptionalAuth returns an interceptor that validates guest tokens if present, but
// allows anonymous requests. Used when no JWT secret is configured for local use.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok && jwtManager != nil {
				// Invalid tokens are ignored.
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithCaller(ctx, claims.TabID, claims.ParticipantID)
				}
			}
			return next(ctx, req)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
