// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/versus/cliparse"
	"github.com/danielhkuo/versus/ident"
	"github.com/danielhkuo/versus/metrics"
	"github.com/danielhkuo/versus/middleware"
	"github.com/danielhkuo/versus/models"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg}
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadQuestion(ctx context.Context, q queryer, id int64) (models.Question, error) {
	var question models.Question
	err := q.QueryRowContext(ctx, `
		SELECT id, option_a, option_b, votes_a, votes_b
		FROM question
		WHERE id = $1
	`, id).Scan(&question.ID, &question.OptionA, &question.OptionB, &question.VotesA, &question.VotesB)
	return question, err
}

// GetQuestion handles GET /api/question?id={id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	question, err := loadQuestion(r.Context(), h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// ListQuestions handles GET /api/questions
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `SELECT id FROM question ORDER BY id`)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan question id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionListResponse{IDs: ids})
}

var errQuestionNotFound = errors.New("question not found")

// Vote handles POST /api/vote
// A request id that was already applied returns the current tallies without
// counting the vote again.
func (h *QuestionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ID < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	if !models.ValidSide(req.WhichVote) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "whichVote must be votes_a or votes_b")
		return
	}
	if req.Value < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value must be at least 1")
		return
	}
	if len(req.RequestID) > 64 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "requestId too long")
		return
	}

	ipHash := ident.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	question, duplicate, err := h.applyVote(r.Context(), req, ipHash)
	if errors.Is(err, errQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to apply vote", "error", err, "question_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	if duplicate {
		metrics.DuplicateVotes.Inc()
		slog.Info("duplicate vote ignored", "question_id", req.ID, "request_id", req.RequestID)
	} else {
		metrics.VotesCast.WithLabelValues(req.WhichVote).Add(float64(req.Value))
		slog.Info("vote recorded", "question_id", req.ID, "side", req.WhichVote, "request_id", req.RequestID)
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

func (h *QuestionHandler) applyVote(ctx context.Context, req models.VoteRequest, ipHash string) (models.Question, bool, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Question{}, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := loadQuestion(ctx, tx, req.ID); err == sql.ErrNoRows {
		return models.Question{}, false, errQuestionNotFound
	} else if err != nil {
		return models.Question{}, false, fmt.Errorf("load question: %w", err)
	}

	duplicate := false
	if req.RequestID != "" {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO vote_request (request_id, question_id, side, value, ip_hash, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (request_id) DO NOTHING
		`, req.RequestID, req.ID, req.WhichVote, req.Value, ipHash, time.Now().UTC())
		if err != nil {
			return models.Question{}, false, fmt.Errorf("record vote request: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return models.Question{}, false, fmt.Errorf("record vote request: %w", err)
		}
		duplicate = n == 0
	}

	if !duplicate {
		// WhichVote is validated against the two column names above
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE question SET %[1]s = %[1]s + $1 WHERE id = $2`, req.WhichVote),
			req.Value, req.ID)
		if err != nil {
			return models.Question{}, false, fmt.Errorf("increment tally: %w", err)
		}
	}

	question, err := loadQuestion(ctx, tx, req.ID)
	if err != nil {
		return models.Question{}, false, fmt.Errorf("reload question: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Question{}, false, fmt.Errorf("commit: %w", err)
	}

	return question, duplicate, nil
}
