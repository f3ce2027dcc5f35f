package http

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"carsharing-backend/internal/config"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's header
// when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logging writes one access log line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"requestID", RequestIDFromContext(r.Context()),
		}
		if rec.status >= http.StatusInternalServerError {
			logger.Error("HTTP request failed", args...)
			return
		}
		logger.Info("HTTP request", args...)
	})
}

// Recovery turns a handler panic into a 500 problem response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Panic while serving request", "path", r.URL.Path, "panic", p, "stack", string(debug.Stack()))
				writeProblem(w, r, http.StatusInternalServerError, "An unexpected error occurred.", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

// Handler authenticates and authorizes requests by the matched route name.
func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeName := ""
		if route := mux.CurrentRoute(r); route != nil {
			routeName = route.GetName()
		}
		level := config.GetSecurityLevel(routeName)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			writeProblem(w, r, http.StatusUnauthorized, "Unauthorized.", "authorization token is not provided")
			return
		}

		claims, err := a.tokenManager.ValidateToken(token)
		if err != nil {
			writeProblem(w, r, http.StatusUnauthorized, "Unauthorized.", err.Error())
			return
		}

		if !allowed(level, claims) {
			logger.WarnContext(r.Context(), "Access denied", "route", routeName, "userID", claims.UserID, "roles", claims.Roles)
			writeProblem(w, r, http.StatusForbidden, "Forbidden.", "")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		header = header[7:]
	}
	header = strings.TrimSpace(header)
	return header, header != ""
}

func allowed(level config.SecurityLevel, claims *security.UserClaims) bool {
	switch level {
	case config.SecurityUser:
		return claims.HasAnyRole(security.RoleUser, security.RoleAdmin)
	case config.SecurityAdmin:
		return claims.HasRole(security.RoleAdmin)
	}
	return false
}
