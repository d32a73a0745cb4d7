package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pullsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labsync_pull_requests_total",
		Help: "Total number of sync pull requests.",
	})

	pushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "labsync_push_requests_total",
		Help: "Total number of sync push requests.",
	})

	mutationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labsync_push_mutations_total",
		Help: "Pushed mutations by outcome.",
	}, []string{"outcome"})
)
