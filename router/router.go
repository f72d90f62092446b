// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/versus/cliparse"
	"github.com/danielhkuo/versus/handlers"
	"github.com/danielhkuo/versus/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	chatHandler := handlers.NewChatHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scraping
	mux.Handle("GET /metrics", promhttp.Handler())

	// Questions and voting
	mux.HandleFunc("GET /api/question", middleware.WithLogging(questionHandler.GetQuestion))
	mux.HandleFunc("GET /api/questions", middleware.WithLogging(questionHandler.ListQuestions))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(questionHandler.Vote))

	// Chat threads
	mux.HandleFunc("GET /api/chat/{questionId}", middleware.WithLogging(chatHandler.GetThread))
	mux.HandleFunc("POST /api/chat", middleware.WithLogging(chatHandler.PostMessage))
	mux.HandleFunc("POST /api/chat/like", middleware.WithLogging(chatHandler.Like))
	mux.HandleFunc("POST /api/chat/reply", middleware.WithLogging(chatHandler.Reply))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("versus API v1"))
	})

	return mux
}
