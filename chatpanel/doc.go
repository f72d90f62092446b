// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package chatpanel holds the chat thread of the current question: its
// messages, the comment composer, and one reply composer per message.
//
// Mutations are issued against the question that was current when they
// started. If the question changes before the server answers, the answer is
// dropped.
package chatpanel
