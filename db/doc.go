// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connecting

Open picks the driver by database type ("sqlite" via modernc.org/sqlite,
"postgres" via lib/pq) and pings the connection:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
SeedQuestions then inserts the default questions that are missing.

# Tables

  - question: Two option labels and their tallies
  - vote_request: One row per client vote request id (deduplication)
  - chat_message: Messages per question, with like counts
  - chat_reply: Replies embedded in a message

# Relationships

	question 1──* vote_request
	question 1──* chat_message
	chat_message 1──* chat_reply

All foreign keys use ON DELETE CASCADE.
*/
package db
