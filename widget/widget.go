// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package widget

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/versus/chatpanel"
	"github.com/danielhkuo/versus/selector"
	"github.com/danielhkuo/versus/votepanel"
)

// Service is everything the page needs from the API client.
type Service interface {
	votepanel.Service
	chatpanel.Service
}

// Options configures a Page. The zero value is usable.
type Options struct {
	// AdvanceDelay is passed to the vote panel.
	AdvanceDelay time.Duration
	// Now is passed to the vote panel.
	Now func() time.Time
}

// Page is a question selector with its vote panel and chat panel.
type Page struct {
	Selector *selector.Selector
	Votes    *votepanel.Panel
	Chat     *chatpanel.Panel

	onChange atomic.Pointer[func()]
}

// New wires the panels to svc and to sel. After a vote the selector advances,
// unless the question has changed since.
func New(svc Service, sel *selector.Selector, opts Options) *Page {
	p := &Page{Selector: sel}
	p.Votes = votepanel.New(svc, votepanel.Options{
		OnAdvance:    p.advanceFrom,
		OnChange:     p.changed,
		AdvanceDelay: opts.AdvanceDelay,
		Now:          opts.Now,
	})
	p.Chat = chatpanel.New(svc, p.changed)
	return p
}

// OnChange sets the hook run after any state change of either panel. It may
// be called from any goroutine and must not block for long.
func (p *Page) OnChange(f func()) {
	if f == nil {
		p.onChange.Store(nil)
		return
	}
	p.onChange.Store(&f)
}

func (p *Page) changed() {
	if f := p.onChange.Load(); f != nil {
		(*f)()
	}
}

func (p *Page) advanceFrom(questionID int64) {
	c := p.Selector.Current()
	if c.ID != questionID || !p.Selector.AdvanceFrom(c.Seq) {
		slog.Debug("Skipping advance for previous question", "question_id", questionID)
	}
}

// Next moves to a freshly drawn question.
func (p *Page) Next() {
	p.Selector.Advance()
}

// Ready reports whether both panels have finished loading the current
// question, successfully or not.
func (p *Page) Ready() bool {
	id := p.Selector.Current().ID
	s := p.Votes.State()
	return s != votepanel.Idle && s != votepanel.Loading &&
		p.Votes.QuestionID() == id &&
		p.Chat.QuestionID() == id && !p.Chat.Loading()
}

// Run loads both panels for the current question and again for every change
// of the selector until ctx is done. Loads of a superseded question are
// cancelled. Run returns after its loads have returned.
func (p *Page) Run(ctx context.Context) error {
	changes, cancel := p.Selector.Subscribe()
	defer cancel()

	var wg sync.WaitGroup
	defer wg.Wait()

	stop := func() {}
	defer func() { stop() }()

	for {
		select {
		case <-ctx.Done():
			p.Votes.Close()
			return ctx.Err()
		case c := <-changes:
			stop()
			loadCtx, cancelLoad := context.WithCancel(ctx)
			stop = cancelLoad

			slog.Debug("Loading question", "question_id", c.ID, "seq", c.Seq)
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = p.Votes.Load(loadCtx, c.ID)
			}()
			go func() {
				defer wg.Done()
				_ = p.Chat.Load(loadCtx, c.ID)
			}()
		}
	}
}
