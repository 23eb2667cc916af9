// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/danielhkuo/chain-vote/models"
)

type serviceMetrics struct {
	votes *prometheus.CounterVec
}

func newServiceMetrics(reg prometheus.Registerer) *serviceMetrics {
	factory := promauto.With(reg)
	return &serviceMetrics{
		votes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainvote_votes_total",
				Help: "Vote requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *serviceMetrics) observeVote(err error) {
	outcome := "accepted"
	if err != nil {
		outcome = string(models.KindOf(err))
	}
	m.votes.WithLabelValues(outcome).Inc()
}
