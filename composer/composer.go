// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package composer holds the text of a labeled input and submits it.
package composer

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrEmpty is returned by Submit when the text is blank.
var ErrEmpty = errors.New("composer: text is empty")

// SubmitFunc receives the text as typed.
type SubmitFunc func(ctx context.Context, text string) error

// Composer is safe for concurrent use.
type Composer struct {
	Label string

	mu     sync.Mutex
	text   string
	submit SubmitFunc
}

// New creates a composer that hands its text to submit.
func New(label string, submit SubmitFunc) *Composer {
	return &Composer{Label: label, submit: submit}
}

func (c *Composer) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *Composer) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

// Blank reports whether the text is empty after trimming whitespace.
func (c *Composer) Blank() bool {
	return strings.TrimSpace(c.Text()) == ""
}

// Submit calls the submit function with the text and clears the text when it
// succeeds. Blank text returns ErrEmpty without calling it. Text typed
// while the submit is in flight is kept.
func (c *Composer) Submit(ctx context.Context) error {
	c.mu.Lock()
	sent := c.text
	submit := c.submit
	c.mu.Unlock()

	if strings.TrimSpace(sent) == "" {
		return ErrEmpty
	}
	if submit == nil {
		return errors.New("composer: no submit function")
	}

	if err := submit(ctx, sent); err != nil {
		return err
	}

	c.mu.Lock()
	if c.text == sent {
		c.text = ""
	}
	c.mu.Unlock()
	return nil
}
