// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the versus API server.

Versus asks "this or that?" questions: people vote for one of two options,
watch the tallies move, and argue about it in a chat thread per question. The
terminal client lives in cmd/versus.

# Starting the Server

With no configuration the server uses a local SQLite file (versus.db):

	IP_HASH_SALT=dev go run .

PostgreSQL:

	go run . -t postgres -d "postgres://..." --ip-salt dev

A .env file in the working directory is loaded on startup.

# Configuration

  - IP_HASH_SALT (--ip-salt): Secret for hashing voter IPs (required)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): Connection string (required for postgres)
  - PORT (-p): Server port (default: 3318)
  - CORS_ORIGIN (--cors-origin): Allowed origin for the web client

On startup the schema is created and questions 1 through 10 are seeded if
missing.

# Architecture

  - handlers: HTTP request handlers (questions, voting, chat)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types shared with the client
  - ident: ID generation and IP hashing
  - metrics: Prometheus collectors
  - db: Connection, schema, and seed data
  - cliparse: Configuration parsing

Client side:

  - api: HTTP client for the endpoints above
  - selector, votepanel, chatpanel, composer, counter: view state
  - widget: composes the view state into one page
  - tui: bubbletea front end
*/
package main
