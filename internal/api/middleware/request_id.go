// SPDX-License-Identifier: MIT

// Package middleware holds the HTTP middleware stack of the trigger server.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ManuGH/ipwww-iptv/internal/log"
)

// HeaderRequestID carries the correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

// RequestID keeps an incoming X-Request-ID or assigns a fresh UUID, and
// stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, reqID)
		ctx := log.ContextWithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
