// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// corsMaxAge is how long browsers may cache a pre-flight response, in seconds.
const corsMaxAge = 300

/*
CORS answers pre-flight requests and decorates cross-origin responses.

Description: Any origin is accepted in development. Elsewhere only the
configured origins are, and requests from other origins receive no CORS
headers.
*/
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins()
	if cfg.IsDevelopment() {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Content-Type", constants.HeaderAuthorization, constants.HeaderXRequestID,
		},
		ExposedHeaders: []string{constants.HeaderXRequestID},
		MaxAge:         corsMaxAge,
	})
}
