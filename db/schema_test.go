// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"
)

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() call %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"question", "vote_request", "chat_message", "chat_reply"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestSeedQuestions(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	n, err := SeedQuestions(conn, DefaultQuestions)
	if err != nil {
		t.Fatalf("SeedQuestions() error = %v", err)
	}
	if n != len(DefaultQuestions) {
		t.Errorf("SeedQuestions() inserted %d, want %d", n, len(DefaultQuestions))
	}

	// Tallies survive a second seed
	if _, err := conn.Exec(`UPDATE question SET votes_a = 7 WHERE id = 1`); err != nil {
		t.Fatalf("update: %v", err)
	}
	n, err = SeedQuestions(conn, DefaultQuestions)
	if err != nil {
		t.Fatalf("SeedQuestions() second call error = %v", err)
	}
	if n != 0 {
		t.Errorf("SeedQuestions() second call inserted %d, want 0", n)
	}

	var votes int64
	var label string
	if err := conn.QueryRow(`SELECT votes_a, option_a FROM question WHERE id = 1`).Scan(&votes, &label); err != nil {
		t.Fatalf("query: %v", err)
	}
	if votes != 7 || label != "Cats" {
		t.Errorf("question 1 = (%d, %q), want (7, Cats)", votes, label)
	}
}

func TestSchema_ForeignKeysEnforced(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO chat_message (id, question_id, text, likes, created_at)
		VALUES ('m1', 12345, 'orphan', 0, CURRENT_TIMESTAMP)
	`)
	if err == nil {
		t.Error("Expected foreign key violation for message on missing question")
	}
}

func TestSchema_RejectsUnknownSide(t *testing.T) {
	conn, err := Open(TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	if _, err := SeedQuestions(conn, DefaultQuestions[:1]); err != nil {
		t.Fatalf("SeedQuestions() error = %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO vote_request (request_id, question_id, side, value)
		VALUES ('r1', 1, 'votes_c', 1)
	`)
	if err == nil {
		t.Error("Expected CHECK violation for unknown side")
	}
}
