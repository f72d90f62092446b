// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the database named by dbType and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var conn *sql.DB
	var err error

	switch dbType {
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	case TypeSQLite:
		if !strings.Contains(url, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "_pragma=foreign_keys(1)"
		}
		conn, err = sql.Open("sqlite", url)
		if err == nil {
			// SQLite serializes writers anyway; a single connection also keeps
			// in-memory databases alive for the life of the pool.
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to the subset of SQL shared by PostgreSQL and SQLite.
const schema = `
-- Questions
CREATE TABLE IF NOT EXISTS question (
    id BIGINT PRIMARY KEY,
    option_a TEXT NOT NULL DEFAULT '',
    option_b TEXT NOT NULL DEFAULT '',
    votes_a BIGINT NOT NULL DEFAULT 0 CHECK (votes_a >= 0),
    votes_b BIGINT NOT NULL DEFAULT 0 CHECK (votes_b >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Vote requests (one row per client request id, for deduplication)
CREATE TABLE IF NOT EXISTS vote_request (
    request_id TEXT PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    side TEXT NOT NULL CHECK (side IN ('votes_a', 'votes_b')),
    value BIGINT NOT NULL CHECK (value > 0),
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_request_question_id ON vote_request(question_id);

-- Chat messages
CREATE TABLE IF NOT EXISTS chat_message (
    id TEXT PRIMARY KEY,
    question_id BIGINT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    likes BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_message_question_id ON chat_message(question_id, created_at);

-- Replies
CREATE TABLE IF NOT EXISTS chat_reply (
    id TEXT PRIMARY KEY,
    message_id TEXT NOT NULL REFERENCES chat_message(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_reply_message_id ON chat_reply(message_id, created_at);
`
