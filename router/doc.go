// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the versus API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Operations:

	GET /health  - Liveness plus database ping
	GET /metrics - Prometheus metrics

Questions and voting:

	GET  /api/question?id={id} - Question with tallies
	GET  /api/questions        - All question ids
	POST /api/vote             - Add a vote to one side

Chat:

	GET  /api/chat/{questionId} - Thread, newest first
	POST /api/chat              - Post a message
	POST /api/chat/like         - Like a message
	POST /api/chat/reply        - Reply to a message

# Handler Initialization

	questionHandler := handlers.NewQuestionHandler(db, cfg)
	chatHandler := handlers.NewChatHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
