// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets an id, taken from the X-Request-ID header or generated
as a UUID, and echoed back in the response. Start (method, path, remote)
and completion (duration_ms) are logged with that id.

# CORS Middleware

Lets other sites embed the JSON API and chart SVGs:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Only GET and OPTIONS are allowed.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Only used for logging.
*/
package middleware
