// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package votepanel holds the state behind the two vote buttons of a question.
//
// A panel moves through idle, loading, loaded, error and voted. Load fetches
// a question and sets both counters to its tallies without animation. Vote sends
// one vote, retargets the chosen side's counter to the server's count, reveals
// the counts, and schedules the advance callback.
//
// Every Load is tagged with a sequence number. Results of a superseded Load or
// of a vote on a question that is no longer current are dropped with ErrStale,
// and a new Load cancels any pending advance.
package votepanel
