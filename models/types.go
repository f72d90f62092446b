package models

import "time"

// Vote sides, as sent in VoteRequest.WhichVote
const (
	SideA = "votes_a"
	SideB = "votes_b"
)

// MaxTextLength caps chat message and reply text (in bytes)
const MaxTextLength = 2000

// ValidSide reports whether side names one of the two vote columns
func ValidSide(side string) bool {
	return side == SideA || side == SideB
}

// Request types

type VoteRequest struct {
	ID        int64  `json:"id"`
	WhichVote string `json:"whichVote"`
	Value     int64  `json:"value"`
	RequestID string `json:"requestId,omitempty"`
}

type PostMessageRequest struct {
	QuestionID int64  `json:"questionId"`
	Text       string `json:"text"`
}

type LikeRequest struct {
	MessageID string `json:"messageId"`
}

type ReplyRequest struct {
	MessageID string `json:"messageId"`
	ReplyText string `json:"replyText"`
}

// Response types

type QuestionListResponse struct {
	IDs []int64 `json:"ids"`
}

// Domain types

type Question struct {
	ID      int64  `json:"id"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	VotesA  int64  `json:"votes_a"`
	VotesB  int64  `json:"votes_b"`
}

// Votes returns the tally for side (0 for an unknown side)
func (q Question) Votes(side string) int64 {
	switch side {
	case SideA:
		return q.VotesA
	case SideB:
		return q.VotesB
	}
	return 0
}

type Reply struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type ChatMessage struct {
	ID         string    `json:"id"`
	QuestionID int64     `json:"questionId"`
	Text       string    `json:"text"`
	Likes      int64     `json:"likes"`
	Replies    []Reply   `json:"replies"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
