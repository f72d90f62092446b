// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the versus API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - QuestionHandler: question lookup and voting
  - ChatHandler: per-question chat threads, likes, and replies

Construct them with their New function:

	questionHandler := handlers.NewQuestionHandler(db, cfg)

# Voting

	POST /api/vote {"id": 1, "whichVote": "votes_a", "value": 1, "requestId": "..."}

The tally increment and the request id record happen in one transaction. A
request id seen before leaves the tallies alone and returns the current
question, so a client may retry a vote without counting it twice. Requests
without a request id are always counted.

# Chat

Threads are returned newest message first with replies oldest first, which
matches a client that prepends its own new messages. Message and reply text is
trimmed and must be non-empty and at most models.MaxTextLength bytes.

Likes and replies respond with the full updated message so a client can swap
it into its thread in place.
*/
package handlers
