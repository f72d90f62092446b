// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/versus/cliparse"
	"github.com/danielhkuo/versus/ident"
	"github.com/danielhkuo/versus/metrics"
	"github.com/danielhkuo/versus/middleware"
	"github.com/danielhkuo/versus/models"
)

type ChatHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewChatHandler(db *sql.DB, cfg cliparse.Config) *ChatHandler {
	return &ChatHandler{db: db, cfg: cfg}
}

// validateText trims text and checks it is non-empty and within the length cap.
// It returns the trimmed text and an error message, if any.
func validateText(text, field string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", field + " is required"
	}
	if len(text) > models.MaxTextLength {
		return "", field + " must be at most " + strconv.Itoa(models.MaxTextLength) + " bytes"
	}
	return text, ""
}

// loadMessage reads one message and its replies (oldest first)
func loadMessage(ctx context.Context, q queryer, id string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := q.QueryRowContext(ctx, `
		SELECT id, question_id, text, likes, created_at
		FROM chat_message
		WHERE id = $1
	`, id).Scan(&msg.ID, &msg.QuestionID, &msg.Text, &msg.Likes, &msg.CreatedAt)
	if err != nil {
		return models.ChatMessage{}, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, text, created_at
		FROM chat_reply
		WHERE message_id = $1
		ORDER BY created_at, id
	`, id)
	if err != nil {
		return models.ChatMessage{}, err
	}
	defer rows.Close()

	msg.Replies = []models.Reply{}
	for rows.Next() {
		var reply models.Reply
		if err := rows.Scan(&reply.ID, &reply.Text, &reply.CreatedAt); err != nil {
			return models.ChatMessage{}, err
		}
		msg.Replies = append(msg.Replies, reply)
	}
	return msg, rows.Err()
}

// GetThread handles GET /api/chat/{questionId}
// Always responds with an array, newest message first.
func (h *ChatHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.ParseInt(r.PathValue("questionId"), 10, 64)
	if err != nil || questionID < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionId must be a positive integer")
		return
	}

	ctx := r.Context()

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, question_id, text, likes, created_at
		FROM chat_message
		WHERE question_id = $1
		ORDER BY created_at DESC, id DESC
	`, questionID)
	if err != nil {
		slog.Error("failed to query messages", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	messages := []models.ChatMessage{}
	index := make(map[string]int)
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.QuestionID, &msg.Text, &msg.Likes, &msg.CreatedAt); err != nil {
			rows.Close()
			slog.Error("failed to scan message", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		msg.Replies = []models.Reply{}
		index[msg.ID] = len(messages)
		messages = append(messages, msg)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate messages", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if len(messages) > 0 {
		replyRows, err := h.db.QueryContext(ctx, `
			SELECT r.id, r.message_id, r.text, r.created_at
			FROM chat_reply r
			JOIN chat_message m ON m.id = r.message_id
			WHERE m.question_id = $1
			ORDER BY r.created_at, r.id
		`, questionID)
		if err != nil {
			slog.Error("failed to query replies", "error", err, "question_id", questionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		defer replyRows.Close()

		for replyRows.Next() {
			var reply models.Reply
			var messageID string
			if err := replyRows.Scan(&reply.ID, &messageID, &reply.Text, &reply.CreatedAt); err != nil {
				slog.Error("failed to scan reply", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			if i, ok := index[messageID]; ok {
				messages[i].Replies = append(messages[i].Replies, reply)
			}
		}
		if err := replyRows.Err(); err != nil {
			slog.Error("failed to iterate replies", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, messages)
}

// PostMessage handles POST /api/chat
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req models.PostMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.QuestionID < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "questionId must be a positive integer")
		return
	}
	text, problem := validateText(req.Text, "text")
	if problem != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, problem)
		return
	}

	ctx := r.Context()

	if _, err := loadQuestion(ctx, h.db, req.QuestionID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	} else if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", req.QuestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	messageID, err := ident.ShortID("m")
	if err != nil {
		slog.Error("failed to generate message ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post message")
		return
	}

	msg := models.ChatMessage{
		ID:         messageID,
		QuestionID: req.QuestionID,
		Text:       text,
		Likes:      0,
		Replies:    []models.Reply{},
		CreatedAt:  time.Now().UTC(),
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO chat_message (id, question_id, text, likes, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, msg.ID, msg.QuestionID, msg.Text, msg.CreatedAt)
	if err != nil {
		slog.Error("failed to insert message", "error", err, "question_id", req.QuestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post message")
		return
	}

	metrics.MessagesPosted.Inc()
	slog.Info("message posted", "question_id", msg.QuestionID, "message_id", msg.ID)

	middleware.JSONResponse(w, http.StatusCreated, msg)
}

// Like handles POST /api/chat/like
func (h *ChatHandler) Like(w http.ResponseWriter, r *http.Request) {
	var req models.LikeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MessageID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "messageId is required")
		return
	}

	ctx := r.Context()

	res, err := h.db.ExecContext(ctx, `
		UPDATE chat_message SET likes = likes + 1 WHERE id = $1
	`, req.MessageID)
	if err != nil {
		slog.Error("failed to like message", "error", err, "message_id", req.MessageID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Message not found")
		return
	}

	msg, err := loadMessage(ctx, h.db, req.MessageID)
	if err != nil {
		slog.Error("failed to reload message", "error", err, "message_id", req.MessageID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.MessagesLiked.Inc()

	middleware.JSONResponse(w, http.StatusOK, msg)
}

// Reply handles POST /api/chat/reply
func (h *ChatHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req models.ReplyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.MessageID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "messageId is required")
		return
	}
	text, problem := validateText(req.ReplyText, "replyText")
	if problem != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, problem)
		return
	}

	ctx := r.Context()

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM chat_message WHERE id = $1)
	`, req.MessageID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query message", "error", err, "message_id", req.MessageID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Message not found")
		return
	}

	replyID, err := ident.ShortID("r")
	if err != nil {
		slog.Error("failed to generate reply ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post reply")
		return
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO chat_reply (id, message_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`, replyID, req.MessageID, text, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert reply", "error", err, "message_id", req.MessageID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post reply")
		return
	}

	msg, err := loadMessage(ctx, h.db, req.MessageID)
	if err != nil {
		slog.Error("failed to reload message", "error", err, "message_id", req.MessageID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.RepliesPosted.Inc()
	slog.Info("reply posted", "message_id", req.MessageID, "reply_id", replyID)

	middleware.JSONResponse(w, http.StatusCreated, msg)
}
