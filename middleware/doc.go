// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request (method, path, status, remote, duration_ms) and
records the versus_http_requests_total and versus_http_request_duration_seconds
metrics, labelled by the matched route pattern.

# CORS Middleware

Enable cross-origin requests for the web client:

	server := http.Server{
		Handler: middleware.CORS(cfg.CORSOrigin)(mux),
	}

An empty origin allows any origin with "*"; credentials are only allowed
for a configured origin.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used for hashed vote provenance.
*/
package middleware
