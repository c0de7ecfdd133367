// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics provides reviewmatch.MetricsCollector implementations.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/someonegg/reviewmatch"
)

// PrometheusCollector implements reviewmatch.MetricsCollector backed by
// Prometheus. Collectors are registered on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	solves         *prometheus.CounterVec
	solveDuration  *prometheus.HistogramVec
	solverRuns     prometheus.Counter
	solverDuration prometheus.Histogram
	augmentations  prometheus.Histogram
	networkEdges   prometheus.Histogram
	lastPapers     prometheus.Gauge
	lastReviewers  prometheus.Gauge
}

var _ reviewmatch.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a collector registering on reg (the default
// registerer if nil) under namespace ("reviewmatch" if empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "reviewmatch"
	}
	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "solves_total",
			Help:      "Total classified solves by status.",
		}, []string{"status"})

		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve by status.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4.4m
		}, []string{"status"})

		p.solverRuns = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "runs_total",
			Help:      "Total min-cost flow solver invocations.",
		})

		p.solverDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall time of the min-cost flow solver.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		})

		p.augmentations = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "augmentations",
			Help:      "Shortest-path augmentations per solver run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		})

		p.networkEdges = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "network_edges",
			Help:      "Edges in the flow network handed to the solver.",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 10),
		})

		p.lastPapers = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "last_papers",
			Help:      "Papers in the most recent solver run.",
		})

		p.lastReviewers = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "last_reviewers",
			Help:      "Reviewers in the most recent solver run.",
		})

		p.reg.MustRegister(p.solves)
		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.solverRuns)
		p.reg.MustRegister(p.solverDuration)
		p.reg.MustRegister(p.augmentations)
		p.reg.MustRegister(p.networkEdges)
		p.reg.MustRegister(p.lastPapers)
		p.reg.MustRegister(p.lastReviewers)
	})
}

func (p *PrometheusCollector) RecordSolve(status reviewmatch.Status, seconds float64) {
	p.ensureRegistered()
	p.solves.WithLabelValues(status.String()).Inc()
	p.solveDuration.WithLabelValues(status.String()).Observe(seconds)
}

func (p *PrometheusCollector) RecordSolverRun(augmentations int, seconds float64) {
	p.ensureRegistered()
	p.solverRuns.Inc()
	p.solverDuration.Observe(seconds)
	p.augmentations.Observe(float64(augmentations))
}

func (p *PrometheusCollector) RecordProblemSize(papers, reviewers, edges int) {
	p.ensureRegistered()
	p.networkEdges.Observe(float64(edges))
	p.lastPapers.Set(float64(papers))
	p.lastReviewers.Set(float64(reviewers))
}
