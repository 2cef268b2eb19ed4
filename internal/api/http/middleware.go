package http

import (
	"net/http"
	"strings"
	"time"

	"dhara-backend/internal/config"
	"dhara-backend/internal/logger"
	"dhara-backend/internal/metrics"
	"dhara-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when supplied.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
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

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// AccessLog logs each request and records its latency.
func AccessLog(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := routeTemplate(r)
			m.ObserveHTTP(r.Method, route, rec.status, elapsed)
			logger.InfoContext(r.Context(), "HTTP request",
				"method", r.Method,
				"route", route,
				"status", rec.status,
				"duration", elapsed,
			)
		})
	}
}

// AuthMiddleware authenticates and authorizes requests according to
// config.EndpointSecurityConfig.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (a *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule := config.SecurityFor(r.Method, routeTemplate(r))

		token := extractToken(r)

		// Public endpoint: attach the caller when a valid token is present anyway
		if rule.Level == config.SecurityPublic {
			if token != "" {
				if claims, err := a.tokenManager.ValidateToken(token); err == nil {
					r = r.WithContext(withClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
			return
		}

		if token == "" {
			respondError(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := a.tokenManager.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		if !rule.Allows(claims.Role) {
			respondError(w, http.StatusForbidden, "role "+string(claims.Role)+" may not access this resource")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = strings.TrimSpace(token[7:])
	}
	return token
}
