package middleware

import (
	"net/http"
	"strings"

	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

// Actor middleware extracts the caller identity and stores it in context.
// Session validation happens in the platform's auth service upstream; here the
// ID is an opaque pass-through used for audit fields only.
func Actor(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := r.Header.Get("X-Actor-ID")

			if actor == "" {
				authHeader := r.Header.Get("Authorization")
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					actor = parts[1]
				}
			}

			if actor == "" {
				logger.Warn("Missing caller identity",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				utils.ResponseUnauthorized(w, "Missing caller identity")
				return
			}

			ctx := utils.SetActorContext(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin middleware guards privileged routes with the shared admin key
func Admin(adminKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" {
				logger.Error("Admin key not configured, rejecting privileged request",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access not configured")
				return
			}

			if r.Header.Get("X-Admin-Key") != adminKey {
				logger.Warn("Admin check: invalid admin key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
