// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "versus_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Business metrics
	VotesCast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "versus_votes_cast_total",
			Help: "Total votes applied to a tally",
		},
		[]string{"side"},
	)

	DuplicateVotes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "versus_duplicate_votes_total",
			Help: "Vote requests ignored because their request id was already applied",
		},
	)

	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "versus_chat_messages_posted_total",
			Help: "Total chat messages posted",
		},
	)

	MessagesLiked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "versus_chat_likes_total",
			Help: "Total chat message likes",
		},
	)

	RepliesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "versus_chat_replies_posted_total",
			Help: "Total chat replies posted",
		},
	)
)
