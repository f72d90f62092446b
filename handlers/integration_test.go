// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/versus/db"
	"github.com/danielhkuo/versus/models"
	"github.com/danielhkuo/versus/testutil"
)

// TestFullQuestionWorkflow walks one question through its life:
// 1. Seed questions
// 2. Fetch a question
// 3. Vote, then retry the same vote
// 4. Post two chat messages
// 5. Like and reply
// 6. Fetch the thread
func TestFullQuestionWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	questionHandler := NewQuestionHandler(conn, cfg)
	chatHandler := NewChatHandler(conn, cfg)

	// Step 1: Seed
	if _, err := db.SeedQuestions(conn, db.DefaultQuestions); err != nil {
		t.Fatalf("Step 1 - Seed failed: %v", err)
	}

	// Step 2: Fetch question 1
	w := httptest.NewRecorder()
	questionHandler.GetQuestion(w, httptest.NewRequest("GET", "/api/question?id=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Get question failed: %d - %s", w.Code, w.Body.String())
	}
	var q models.Question
	testutil.AssertJSON(t, w, &q)
	if q.OptionA != db.DefaultQuestions[0].OptionA || q.VotesA != 0 || q.VotesB != 0 {
		t.Fatalf("Step 2 - Unexpected question: %+v", q)
	}

	// Step 3: Vote twice with one request id
	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		questionHandler.Vote(w, testutil.MakeRequest("POST", "/api/vote",
			models.VoteRequest{ID: 1, WhichVote: models.SideB, Value: 1, RequestID: "workflow-vote"}, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Vote %d failed: %d - %s", i, w.Code, w.Body.String())
		}
	}
	testutil.AssertJSON(t, w, &q)
	if q.VotesA != 0 || q.VotesB != 1 {
		t.Errorf("Step 3 - Expected (0, 1), got (%d, %d)", q.VotesA, q.VotesB)
	}

	// Step 4: Post two messages
	var first, second models.ChatMessage
	for _, step := range []struct {
		text string
		out  *models.ChatMessage
	}{{"first!", &first}, {"dogs obviously", &second}} {
		w = httptest.NewRecorder()
		chatHandler.PostMessage(w, testutil.MakeRequest("POST", "/api/chat",
			models.PostMessageRequest{QuestionID: 1, Text: step.text}, nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Post %q failed: %d - %s", step.text, w.Code, w.Body.String())
		}
		testutil.AssertJSON(t, w, step.out)
		time.Sleep(2 * time.Millisecond)
	}

	// Step 5: Like the first message and reply to it
	w = httptest.NewRecorder()
	chatHandler.Like(w, testutil.MakeRequest("POST", "/api/chat/like",
		models.LikeRequest{MessageID: first.ID}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Like failed: %d - %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	chatHandler.Reply(w, testutil.MakeRequest("POST", "/api/chat/reply",
		models.ReplyRequest{MessageID: first.ID, ReplyText: "too slow"}, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 5 - Reply failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Thread is newest first with the like and reply on the first message
	w, messages := getThread(t, chatHandler, "1")
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Get thread failed: %d", w.Code)
	}
	if len(messages) != 2 {
		t.Fatalf("Step 6 - Expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != second.ID || messages[1].ID != first.ID {
		t.Errorf("Step 6 - Expected newest first, got %q then %q", messages[0].Text, messages[1].Text)
	}
	if messages[1].Likes != 1 {
		t.Errorf("Step 6 - Expected 1 like, got %d", messages[1].Likes)
	}
	if len(messages[1].Replies) != 1 || messages[1].Replies[0].Text != "too slow" {
		t.Errorf("Step 6 - Unexpected replies: %+v", messages[1].Replies)
	}
	if messages[0].Likes != 0 || len(messages[0].Replies) != 0 {
		t.Errorf("Step 6 - Second message should be untouched: %+v", messages[0])
	}
}
