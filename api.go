// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reviewmatch assigns reviewers to papers subject to review
// quotas, reviewer capacities, lock/veto constraints and conflicts of
// interest, maximizing total affinity with a min-cost flow.
package reviewmatch

type Paper struct {
	ID              string
	RequiredReviews int
}

type Reviewer struct {
	ID              string
	DefaultCapacity int
	CustomCapacity  *int // overrides DefaultCapacity when set
}

// Capacity returns the effective capacity, never negative.
func (r *Reviewer) Capacity() int {
	c := r.DefaultCapacity
	if r.CustomCapacity != nil {
		c = *r.CustomCapacity
	}
	if c < 0 {
		return 0
	}
	return c
}

type ConstraintKind int

const (
	Lock ConstraintKind = iota + 1
	Veto
)

func (k ConstraintKind) String() string {
	switch k {
	case Lock:
		return "LOCK"
	case Veto:
		return "VETO"
	}
	return "UNKNOWN"
}

type Pair struct {
	PaperID    string
	ReviewerID string
}

type Constraint struct {
	Pair
	Kind ConstraintKind
}

// AffinityTable supplies the desirability of a pairing. ok is false when the
// table has no opinion, in which case the neutral affinity is used.
type AffinityTable interface {
	Find(paperID, reviewerID string) (score float64, ok bool)
}

type Input struct {
	Papers      []Paper
	Reviewers   []Reviewer
	Constraints []Constraint
	Conflicts   []Pair
	Affinities  AffinityTable // can be nil
}

type Assignment map[string][]string // paperID

// Logger is a structured key/value logger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// MetricsCollector records engine metrics. Implementations must be safe for
// concurrent use since independent solves may run in parallel.
type MetricsCollector interface {
	// RecordSolve records one classified solve and its wall time in seconds.
	RecordSolve(status Status, seconds float64)

	// RecordSolverRun records one flow solver invocation.
	RecordSolverRun(augmentations int, seconds float64)

	// RecordProblemSize records the shape of a flow network handed to the solver.
	RecordProblemSize(papers, reviewers, edges int)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type nopMetrics struct{}

func (nopMetrics) RecordSolve(Status, float64)     {}
func (nopMetrics) RecordSolverRun(int, float64)    {}
func (nopMetrics) RecordProblemSize(int, int, int) {}
