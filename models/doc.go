// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the API
server and the client.

# Request Types

Types for parsing incoming JSON:

  - VoteRequest: id, whichVote, value, requestId
  - PostMessageRequest: questionId, text
  - LikeRequest: messageId
  - ReplyRequest: messageId, replyText

# Domain Types

  - Question: two labeled options and their tallies
  - ChatMessage: a chat message with likes and embedded replies
  - Reply: a reply embedded in exactly one ChatMessage

# Constants

Vote sides:

	SideA = "votes_a"
	SideB = "votes_b"

The side string doubles as the JSON key of the matching tally on Question.
*/
package models
