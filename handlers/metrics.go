// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storiesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyline_stories_created_total",
		Help: "Total number of stories created.",
	})

	storiesFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyline_stories_finalized_total",
		Help: "Total number of finalize requests that succeeded.",
	})

	contributionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyline_contributions_created_total",
		Help: "Total number of contributions submitted.",
	})

	votesCastTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storyline_votes_cast_total",
		Help: "Total number of contribution votes recorded.",
	})

	acceptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storyline_contribution_accepts_total",
			Help: "Total number of accept attempts by outcome.",
		},
		[]string{"outcome"},
	)
)
