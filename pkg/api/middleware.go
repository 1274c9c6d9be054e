package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// apiKeyMiddleware validates the X-API-Key header
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				sendMessage(w, http.StatusUnauthorized, MessageResponse{Message: "Missing X-API-Key header"})
				return
			}
			if apiKey != expectedKey {
				sendMessage(w, http.StatusUnauthorized, MessageResponse{Message: "Invalid API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestID propagates the caller's X-Request-ID or assigns a new KSUID.
// The id is stored where middleware.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = ksuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger logs one line per request
func requestLogger(sugar *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				sugar.Infow("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// sendJSON writes v as a JSON response
func sendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// sendMessage sends a message JSON response
func sendMessage(w http.ResponseWriter, statusCode int, msg MessageResponse) {
	sendJSON(w, statusCode, msg)
}
