// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/versus/chatpanel"
	"github.com/danielhkuo/versus/models"
	"github.com/danielhkuo/versus/widget"
)

// FormatVotes renders a count as "1,234 votes".
func FormatVotes(n int64) string {
	if n == 1 {
		return "1 vote"
	}
	return humanize.Comma(n) + " votes"
}

// FormatLikes renders the like button of a message with its count.
func FormatLikes(n int64) string {
	return "♥ " + humanize.Comma(n)
}

// Snapshot renders the page as plain text at now, for output that is not a
// terminal.
func Snapshot(page *widget.Page, now time.Time) string {
	var b strings.Builder

	v := page.Votes.Snapshot(now)
	fmt.Fprintf(&b, "Question #%d\n", v.QuestionID)
	writeOption(&b, "A", v.LabelA, v.CountA, v.VotesVisible)
	writeOption(&b, "B", v.LabelB, v.CountB, v.VotesVisible)

	b.WriteString("\nChat\n")
	messages := page.Chat.Messages()
	if len(messages) == 0 {
		b.WriteString("  " + chatpanel.Placeholder + "\n")
	}
	for _, msg := range messages {
		writeMessage(&b, msg)
	}
	return b.String()
}

// writeOption hides the count until the votes are visible.
func writeOption(b *strings.Builder, key, label string, count int64, visible bool) {
	if !visible {
		fmt.Fprintf(b, "  %s: %s\n", key, label)
		return
	}
	fmt.Fprintf(b, "  %s: %s (%s)\n", key, label, FormatVotes(count))
}

func writeMessage(b *strings.Builder, msg models.ChatMessage) {
	b.WriteString("  - " + msg.Text + "  " + FormatLikes(msg.Likes) + "\n")
	for _, r := range msg.Replies {
		b.WriteString("      ↳ " + r.Text + "\n")
	}
}
