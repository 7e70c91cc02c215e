package middleware

import (
	"net/http"
	"strings"

	"pagegraph/pkg/auth"
	"pagegraph/pkg/errors"

	"go.uber.org/zap"
)

// Authenticate validates a service token on every request. A nil validator
// disables authentication.
func Authenticate(validator *auth.JWTValidator, errorHandler *errors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				errorHandler.Handle(w, r, errors.NewUnauthorizedError("Missing authentication token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Invalid token",
					zap.Error(err),
					zap.String("ip", r.RemoteAddr),
					zap.String("path", r.URL.Path),
				)

				message := "Invalid token"
				switch err {
				case auth.ErrExpiredToken:
					message = "Token has expired"
				case auth.ErrInvalidSignature:
					message = "Invalid token signature"
				}
				errorHandler.Handle(w, r, errors.NewUnauthorizedError(message))
				return
			}

			logger.Debug("Request authenticated",
				zap.String("caller", claims.Subject),
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
			)

			next.ServeHTTP(w, r.WithContext(auth.SetCallerInContext(r.Context(), claims)))
		})
	}
}

// extractToken reads a bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
