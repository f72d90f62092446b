// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/versus/cliparse"
	"github.com/danielhkuo/versus/db"
	"github.com/danielhkuo/versus/ident"
)

// TestDBURL is an in-memory SQLite database; each SetupTestDB call gets its own
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema and no rows
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		IPHashSalt:   "test-ip-salt",
	}
}

// CreateTestQuestion inserts a question with the given labels and tallies
func CreateTestQuestion(t *testing.T, conn *sql.DB, id int64, optionA, optionB string, votesA, votesB int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO question (id, option_a, option_b, votes_a, votes_b)
		VALUES ($1, $2, $3, $4, $5)
	`, id, optionA, optionB, votesA, votesB)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
}

// CreateTestMessage inserts a chat message and returns its ID
func CreateTestMessage(t *testing.T, conn *sql.DB, questionID int64, text string, likes int64, createdAt time.Time) string {
	t.Helper()

	messageID, _ := ident.ShortID("m")
	_, err := conn.Exec(`
		INSERT INTO chat_message (id, question_id, text, likes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, messageID, questionID, text, likes, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}

	return messageID
}

// CreateTestReply inserts a reply under a message and returns its ID
func CreateTestReply(t *testing.T, conn *sql.DB, messageID, text string, createdAt time.Time) string {
	t.Helper()

	replyID, _ := ident.ShortID("r")
	_, err := conn.Exec(`
		INSERT INTO chat_reply (id, message_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`, replyID, messageID, text, createdAt.UTC())
	if err != nil {
		t.Fatalf("Failed to create test reply: %v", err)
	}

	return replyID
}

// QueryVotes returns the stored tallies for a question
func QueryVotes(t *testing.T, conn *sql.DB, id int64) (votesA, votesB int64) {
	t.Helper()

	err := conn.QueryRow(`SELECT votes_a, votes_b FROM question WHERE id = $1`, id).Scan(&votesA, &votesB)
	if err != nil {
		t.Fatalf("Failed to query votes: %v", err)
	}
	return votesA, votesB
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
