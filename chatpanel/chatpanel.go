// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chatpanel

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/danielhkuo/versus/composer"
	"github.com/danielhkuo/versus/models"
)

// Placeholder is shown when the thread has no messages.
const Placeholder = "No messages yet. Be the first to drop a 🔥 comment!"

// Composer labels
const (
	InputLabel = "Comment"
	ReplyLabel = "Reply"
)

// ErrStale is returned when a result arrives for a question that is no longer
// on screen. The result is discarded.
var ErrStale = errors.New("chatpanel: result for a previous question")

// Service is the part of the API client the panel needs.
type Service interface {
	GetThread(ctx context.Context, questionID int64) ([]models.ChatMessage, error)
	PostMessage(ctx context.Context, questionID int64, text string) (models.ChatMessage, error)
	Like(ctx context.Context, messageID string) (models.ChatMessage, error)
	Reply(ctx context.Context, messageID, text string) (models.ChatMessage, error)
}

// Panel is the chat thread of the current question. It is safe for
// concurrent use.
type Panel struct {
	svc      Service
	onChange func()
	input    *composer.Composer

	mu       sync.Mutex
	id       int64
	seq      uint64
	loading  bool
	messages []models.ChatMessage
	replies  map[string]*composer.Composer
}

// New creates an empty panel. onChange may be nil; it runs after every state
// change, outside the panel's lock.
func New(svc Service, onChange func()) *Panel {
	p := &Panel{
		svc:      svc,
		onChange: onChange,
		messages: []models.ChatMessage{},
		replies:  make(map[string]*composer.Composer),
	}
	p.input = composer.New(InputLabel, p.post)
	return p
}

func (p *Panel) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}

// current returns the question id and load tag that mutations are issued
// against.
func (p *Panel) current() (int64, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id, p.seq
}

// Load fetches the thread for question id and replaces the current one. On
// failure the thread is left empty. An earlier Load still in flight is
// superseded and its result dropped, as is the result of a cancelled Load.
func (p *Panel) Load(ctx context.Context, id int64) error {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.id = id
	p.loading = true
	p.messages = []models.ChatMessage{}
	clear(p.replies)
	p.mu.Unlock()
	p.changed()

	messages, err := p.svc.GetThread(ctx, id)

	p.mu.Lock()
	if p.seq != seq || errors.Is(ctx.Err(), context.Canceled) {
		p.mu.Unlock()
		slog.Debug("Discarding stale thread", "question_id", id)
		return ErrStale
	}
	p.loading = false
	if err != nil {
		p.messages = []models.ChatMessage{}
		p.mu.Unlock()
		slog.Warn("Failed to load chat thread", "question_id", id, "error", err)
		p.changed()
		return err
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	p.messages = messages
	p.mu.Unlock()
	p.changed()
	return nil
}

// Input returns the top-level composer.
func (p *Panel) Input() *composer.Composer {
	return p.input
}

// Send posts the top-level composer's text. Blank text sends nothing.
func (p *Panel) Send(ctx context.Context) error {
	err := p.input.Submit(ctx)
	if errors.Is(err, composer.ErrEmpty) {
		return nil
	}
	return err
}

func (p *Panel) post(ctx context.Context, text string) error {
	id, seq := p.current()

	msg, err := p.svc.PostMessage(ctx, id, text)
	if err != nil {
		slog.Error("Failed to send message", "question_id", id, "error", err)
		return err
	}

	p.mu.Lock()
	if p.seq != seq {
		p.mu.Unlock()
		slog.Debug("Discarding message for previous question", "question_id", id, "message_id", msg.ID)
		return nil
	}
	p.messages = slices.Insert(p.messages, 0, msg)
	p.mu.Unlock()
	p.changed()
	return nil
}

// Like adds a like to a message. Only that message is replaced with the
// server's copy.
func (p *Panel) Like(ctx context.Context, messageID string) error {
	_, seq := p.current()

	msg, err := p.svc.Like(ctx, messageID)
	if err != nil {
		slog.Error("Failed to like message", "message_id", messageID, "error", err)
		return err
	}
	return p.replace(seq, msg)
}

// ReplyComposer returns the reply composer of a message, creating it on first
// use.
func (p *Panel) ReplyComposer(messageID string) *composer.Composer {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.replies[messageID]
	if !ok {
		c = composer.New(ReplyLabel, func(ctx context.Context, text string) error {
			return p.reply(ctx, messageID, text)
		})
		p.replies[messageID] = c
	}
	return c
}

// Reply submits the reply composer of a message. Blank text returns
// composer.ErrEmpty without a request.
func (p *Panel) Reply(ctx context.Context, messageID string) error {
	return p.ReplyComposer(messageID).Submit(ctx)
}

func (p *Panel) reply(ctx context.Context, messageID, text string) error {
	_, seq := p.current()

	msg, err := p.svc.Reply(ctx, messageID, text)
	if err != nil {
		slog.Error("Failed to send reply", "message_id", messageID, "error", err)
		return err
	}
	if err := p.replace(seq, msg); err != nil && !errors.Is(err, ErrStale) {
		return err
	}
	return nil
}

// replace swaps in msg for the message with the same id.
func (p *Panel) replace(seq uint64, msg models.ChatMessage) error {
	p.mu.Lock()
	if p.seq != seq {
		p.mu.Unlock()
		slog.Debug("Discarding update for previous question", "message_id", msg.ID)
		return ErrStale
	}
	i := slices.IndexFunc(p.messages, func(m models.ChatMessage) bool { return m.ID == msg.ID })
	if i < 0 {
		p.mu.Unlock()
		return nil
	}
	p.messages[i] = msg
	p.mu.Unlock()
	p.changed()
	return nil
}

// Messages returns a copy of the thread, newest first.
func (p *Panel) Messages() []models.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.messages)
}

// QuestionID returns the question the thread belongs to.
func (p *Panel) QuestionID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Loading reports whether a thread fetch is in flight.
func (p *Panel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}
