// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Versus is the terminal client for the versus API.

It shows a random question, lets you vote for one side, and shows the chat
thread of that question. After a vote the counts animate and the next
question follows a few seconds later.

# Usage

	versus [-u URL] [-timeout DURATION] [-min-id N] [-max-id N] [-log FILE]

Flags override the BACKEND_URL, REQUEST_TIMEOUT, MIN_QUESTION_ID,
MAX_QUESTION_ID and LOG_FILE environment variables, which may also come from a
.env file.

# Keys

	a, ←     vote for the first option
	b, →     vote for the second option
	n        next question
	tab      write a comment
	enter    send the comment, or reply to the selected message
	↑, ↓     select a message
	l        like the selected message
	r        reply to the selected message
	q        quit

When standard output is not a terminal, versus prints the first question and
its thread as plain text and exits.
*/
package main
