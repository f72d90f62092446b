// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package composer

import (
	"context"
	"errors"
	"testing"
)

func TestSubmit(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		text      string
		submitErr error
		wantErr   error
		wantCalls int
		wantSent  string
		wantText  string
	}{
		{"sends text as typed", "  gg  ", nil, nil, 1, "  gg  ", ""},
		{"empty is rejected", "", nil, ErrEmpty, 0, "", ""},
		{"whitespace is rejected", " \t\n ", nil, ErrEmpty, 0, "", " \t\n "},
		{"failure keeps text", "hello", errBoom, errBoom, 1, "hello", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			var sent string
			c := New("Comment", func(ctx context.Context, text string) error {
				calls++
				sent = text
				return tt.submitErr
			})
			c.SetText(tt.text)

			err := c.Submit(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("submit called %d times, want %d", calls, tt.wantCalls)
			}
			if sent != tt.wantSent {
				t.Errorf("submitted %q, want %q", sent, tt.wantSent)
			}
			if got := c.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestSubmit_KeepsTextTypedDuringSubmit(t *testing.T) {
	var c *Composer
	c = New("Reply", func(ctx context.Context, text string) error {
		c.SetText("second thought")
		return nil
	})
	c.SetText("first")

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := c.Text(); got != "second thought" {
		t.Errorf("Text() = %q, want %q", got, "second thought")
	}
}

func TestSubmit_NoFunc(t *testing.T) {
	c := New("x", nil)
	c.SetText("hi")
	if err := c.Submit(context.Background()); err == nil {
		t.Error("expected error without submit function")
	}
	if got := c.Text(); got != "hi" {
		t.Errorf("Text() = %q, want %q", got, "hi")
	}
}

func TestBlank(t *testing.T) {
	c := New("x", nil)
	if !c.Blank() {
		t.Error("new composer should be blank")
	}
	c.SetText("  ")
	if !c.Blank() {
		t.Error("whitespace should be blank")
	}
	c.SetText(" a ")
	if c.Blank() {
		t.Error("text should not be blank")
	}
}
