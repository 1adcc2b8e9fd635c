package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/SamSantos7/irland-casa-estudantes/internal/http/response"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/cache"
	"github.com/SamSantos7/irland-casa-estudantes/internal/platform/storage"
	"github.com/SamSantos7/irland-casa-estudantes/internal/service"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/auth"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/config"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

type Handlers struct {
	reservations service.ReservationService
	identity     service.IdentityService
	catalog      service.CatalogService
	documents    service.DocumentService
	payments     service.PaymentService
	contacts     service.ContactService
	store        storage.Store
	rateLimiter  *cache.RateLimiter
	config       *config.Config
}

func New(
	reservations service.ReservationService,
	identity service.IdentityService,
	catalog service.CatalogService,
	documents service.DocumentService,
	payments service.PaymentService,
	contacts service.ContactService,
	store storage.Store,
	rateLimiter *cache.RateLimiter,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		reservations: reservations,
		identity:     identity,
		catalog:      catalog,
		documents:    documents,
		payments:     payments,
		contacts:     contacts,
		store:        store,
		rateLimiter:  rateLimiter,
		config:       cfg,
	}
}

// RequireJWT gates a route on a valid bearer token with the given role.
// Admins pass every role check.
func (h *Handlers) RequireJWT(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if requiredRole != "" && claims.Role != requiredRole && claims.Role != "admin" {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit guards unauthenticated write endpoints per client IP.
func (h *Handlers) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		allowed, err := h.rateLimiter.Allow(r.Context(), ip)
		if err != nil {
			logger.WarnContext(r.Context(), "Rate limiter unavailable", "error", err)
		}
		if !allowed {
			response.RateLimit(w, "Too many requests. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx > 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if idx := strings.LastIndexByte(host, ':'); idx > 0 {
		host = host[:idx]
	}
	return host
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// Helper functions for common response patterns
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Helper to parse pagination parameters
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}

func parseID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
