package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call with
// its procedure, caller, duration and outcome. Successful calls log at Info,
// Connect errors at Warn, anything else at Error.
//
// Register it after the auth interceptor so the caller is already in ctx.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := []any{
				"procedure", req.Spec().Procedure,
				"participant_id", GetParticipantID(ctx), // empty if auth is disabled
			}
			if tabID := GetTabID(ctx); tabID != "" {
				attrs = append(attrs, "tab_id", tabID)
			}

			resp, err := next(ctx, req)

			level, msg := slog.LevelInfo, "RPC ok"
			var connectErr *connect.Error
			switch {
			case errors.As(err, &connectErr):
				level, msg = slog.LevelWarn, "RPC error"
				attrs = append(attrs, "code", connectErr.Code().String(), "error", connectErr.Message())
			case err != nil:
				level, msg = slog.LevelError, "RPC error"
				attrs = append(attrs, "error", err)
			}
			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())

			slog.Log(ctx, level, msg, attrs...)
			return resp, err
		}
	}
}
