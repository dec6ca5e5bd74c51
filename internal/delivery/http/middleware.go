package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/couponhub/offer-engine/internal/domain"
	"github.com/rs/zerolog"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor extracts the verified caller identity set by the upstream auth
// collaborator. The headers are trusted as already authenticated; this layer
// only parses them.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID, err := strconv.ParseInt(r.Header.Get("X-Caller-ID"), 10, 64)
		if err != nil {
			http.Error(w, "missing caller identity", http.StatusUnauthorized)
			return
		}

		role := domain.Role(r.Header.Get("X-Caller-Role"))
		switch role {
		case domain.RoleAdmin, domain.RoleEnterprise, domain.RoleClient:
		default:
			http.Error(w, "unknown caller role", http.StatusUnauthorized)
			return
		}

		actor := domain.Actor{ID: callerID, Role: role}
		if role == domain.RoleEnterprise {
			enterpriseID, err := strconv.ParseInt(r.Header.Get("X-Enterprise-ID"), 10, 64)
			if err != nil {
				http.Error(w, "missing enterprise identity", http.StatusUnauthorized)
				return
			}
			actor.EnterpriseID = enterpriseID
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func actorFrom(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorKey).(domain.Actor)
	return actor
}

// RequestLogger logs one line per request in the access-log style.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
