// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package votepanel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/versus/counter"
	"github.com/danielhkuo/versus/models"
)

// DefaultAdvanceDelay is how long the result of a vote stays on screen.
const DefaultAdvanceDelay = 3 * time.Second

// Label fallbacks
const (
	LoadingLabel  = "Loading..."
	ErrorPrefix   = "⚠️ "
	DefaultLabelA = "Option A"
	DefaultLabelB = "Option B"
)

var (
	ErrBusy        = errors.New("votepanel: question is still loading")
	ErrNoQuestion  = errors.New("votepanel: no question loaded")
	ErrInvalidSide = errors.New("votepanel: invalid side")
	// ErrStale is returned when a result arrives for a question that is no
	// longer on screen. The result is discarded.
	ErrStale = errors.New("votepanel: result for a previous question")
)

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Error
	Voted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	case Voted:
		return "voted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Service is the part of the API client the panel needs.
type Service interface {
	GetQuestion(ctx context.Context, id int64) (models.Question, error)
	Vote(ctx context.Context, id int64, side, requestID string) (models.Question, error)
}

// Options configures a Panel. The zero value is usable.
type Options struct {
	// OnAdvance runs once the advance delay after a successful vote, with the
	// id of the question voted on.
	OnAdvance func(questionID int64)
	// OnChange runs after every state change, outside the panel's lock.
	OnChange func()
	// AdvanceDelay defaults to DefaultAdvanceDelay.
	AdvanceDelay time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Panel is the view state of one question and its two counters. It is safe
// for concurrent use.
type Panel struct {
	svc       Service
	onAdvance func(int64)
	onChange  func()
	delay     time.Duration
	now       func() time.Time

	mu           sync.Mutex
	state        State
	id           int64
	seq          uint64
	question     models.Question
	errText      string
	votesVisible bool
	counters     map[string]*counter.Counter
	timer        *time.Timer
	closed       bool
}

func New(svc Service, opts Options) *Panel {
	p := &Panel{
		svc:       svc,
		onAdvance: opts.OnAdvance,
		onChange:  opts.OnChange,
		delay:     opts.AdvanceDelay,
		now:       opts.Now,
		counters: map[string]*counter.Counter{
			models.SideA: {},
			models.SideB: {},
		},
	}
	if p.delay <= 0 {
		p.delay = DefaultAdvanceDelay
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

func (p *Panel) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}

// stopTimerLocked cancels a pending advance.
func (p *Panel) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Load fetches question id and makes it the current question. Any earlier
// Load still in flight is superseded and its result dropped, as is the result
// of a Load whose context was cancelled.
func (p *Panel) Load(ctx context.Context, id int64) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrStale
	}
	p.seq++
	seq := p.seq
	p.id = id
	p.state = Loading
	p.errText = ""
	p.votesVisible = false
	p.stopTimerLocked()
	p.mu.Unlock()
	p.changed()

	q, err := p.svc.GetQuestion(ctx, id)

	p.mu.Lock()
	if p.closed || p.seq != seq || errors.Is(ctx.Err(), context.Canceled) {
		p.mu.Unlock()
		slog.Debug("Discarding stale question", "question_id", id)
		return ErrStale
	}
	if err != nil {
		p.state = Error
		p.errText = err.Error()
		p.mu.Unlock()
		slog.Warn("Failed to load question", "question_id", id, "error", err)
		p.changed()
		return err
	}

	p.state = Loaded
	p.question = q
	p.counters[models.SideA].Set(q.VotesA)
	p.counters[models.SideB].Set(q.VotesB)
	p.mu.Unlock()
	p.changed()
	return nil
}

// Vote submits one vote for side on the current question. While a question
// is loading it returns ErrBusy. On failure the panel is left exactly as it
// was and the error is returned.
func (p *Panel) Vote(ctx context.Context, side string) error {
	if !models.ValidSide(side) {
		return fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}

	p.mu.Lock()
	switch {
	case p.closed:
		p.mu.Unlock()
		return ErrStale
	case p.state == Loading:
		p.mu.Unlock()
		return ErrBusy
	case p.state == Idle:
		p.mu.Unlock()
		return ErrNoQuestion
	}
	id, seq := p.id, p.seq
	p.mu.Unlock()

	q, err := p.svc.Vote(ctx, id, side, "")
	if err != nil {
		slog.Error("Failed to submit vote", "question_id", id, "side", side, "error", err)
		return err
	}

	p.mu.Lock()
	if p.closed || p.seq != seq {
		p.mu.Unlock()
		slog.Debug("Discarding stale vote result", "question_id", id)
		return ErrStale
	}
	p.counters[side].Retarget(q.Votes(side), p.now())
	p.votesVisible = true
	p.state = Voted
	p.stopTimerLocked()
	p.timer = time.AfterFunc(p.delay, func() { p.advance(seq, id) })
	p.mu.Unlock()
	p.changed()
	return nil
}

func (p *Panel) advance(seq uint64, id int64) {
	p.mu.Lock()
	if p.closed || p.seq != seq {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.mu.Unlock()

	if p.onAdvance != nil {
		p.onAdvance(id)
	}
}

// Close cancels any pending advance. Later results are discarded.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.stopTimerLocked()
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// QuestionID returns the id of the question being shown or loaded.
func (p *Panel) QuestionID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Label returns the text for side's button.
func (p *Panel) Label(side string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.labelLocked(side)
}

func (p *Panel) labelLocked(side string) string {
	switch p.state {
	case Loading:
		return LoadingLabel
	case Error:
		return ErrorPrefix + p.errText
	}
	if side == models.SideB {
		if p.question.OptionB != "" {
			return p.question.OptionB
		}
		return DefaultLabelB
	}
	if p.question.OptionA != "" {
		return p.question.OptionA
	}
	return DefaultLabelA
}

// VotesVisible reports whether counts should be shown.
func (p *Panel) VotesVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.votesVisible
}

// Count returns side's animated count at now, floored.
func (p *Panel) Count(side string, now time.Time) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[side]
	if !ok {
		return 0
	}
	return c.Display(now)
}

// Moving reports whether either counter is still animating at now.
func (p *Panel) Moving(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters[models.SideA].Moving(now) || p.counters[models.SideB].Moving(now)
}

// View is a consistent copy of everything needed to draw the panel.
type View struct {
	State        State
	QuestionID   int64
	LabelA       string
	LabelB       string
	CountA       int64
	CountB       int64
	VotesVisible bool
	Moving       bool
}

// Snapshot returns the panel as it looks at now.
func (p *Panel) Snapshot(now time.Time) View {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, b := p.counters[models.SideA], p.counters[models.SideB]
	return View{
		State:        p.state,
		QuestionID:   p.id,
		LabelA:       p.labelLocked(models.SideA),
		LabelB:       p.labelLocked(models.SideB),
		CountA:       a.Display(now),
		CountB:       b.Display(now),
		VotesVisible: p.votesVisible,
		Moving:       a.Moving(now) || b.Moving(now),
	}
}
