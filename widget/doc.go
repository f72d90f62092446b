// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package widget composes the question selector, the vote panel and the chat
// panel into one page.
//
//	page := widget.New(client, selector.New(1, 10, nil), widget.Options{})
//	page.OnChange(redraw)
//	go page.Run(ctx)
//
// Run owns the selector subscription: every new question id loads both
// panels. A successful vote advances the selector after a short delay.
package widget
