// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tui renders a widget.Page in the terminal with bubbletea.
//
// Network operations run as commands and report back through resultMsg;
// state changes from the page's own goroutines arrive as Changed messages.
// The counter animation ticks at 30 frames per second while a counter moves.
package tui
