package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "segtimer_renders_total",
		Help: "Frames pushed to the strip, by the mode that drew them.",
	}, []string{"mode"})
	renderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "segtimer_render_errors_total",
		Help: "Frames the strip driver refused.",
	}, []string{"mode"})
	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "segtimer_mode_transitions_total",
		Help: "Mode changes.",
	}, []string{"from", "to"})
	tickDelay = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "segtimer_tick_delay_seconds",
		Help:    "How late a chain tick ran compared to when it was scheduled.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
	})
	countdownsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "segtimer_countdowns_expired_total",
		Help: "Countdowns that ran all the way to zero.",
	})
)
