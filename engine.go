// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Result is the classified outcome of one solve. Assignment, Loads and
// Objective are set only when Status is StatusComplete.
type Result struct {
	RunID  string
	Status Status

	Assignment Assignment
	Loads      map[string]int // reviewerID
	Objective  float64

	Demand int
	Supply int

	Detail  string
	Err     error
	Elapsed time.Duration
}

// Engine solves problem instances. It holds configuration only, so one
// Engine may serve concurrent solves.
type Engine struct {
	logger          Logger
	metrics         MetricsCollector
	timeout         time.Duration
	neutralAffinity float64
}

type Option func(*Engine)

func WithLogger(logger Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(metrics MetricsCollector) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// WithTimeout bounds the wall-clock time of the solver. Zero means no bound
// beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithDefaultAffinity sets the score Match uses for unscored pairs.
func WithDefaultAffinity(score float64) Option {
	return func(e *Engine) {
		e.neutralAffinity = score
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:          nopLogger{},
		metrics:         nopMetrics{},
		neutralAffinity: NeutralAffinity,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = nopLogger{}
	}
	if e.metrics == nil {
		e.metrics = nopMetrics{}
	}
	return e
}

// Match builds a Problem from in and solves it. Validation failures are
// classified StatusInvalidInput.
func (e *Engine) Match(ctx context.Context, in *Input) *Result {
	p, err := NewProblem(in, WithNeutralAffinity(e.neutralAffinity))
	if err != nil {
		res := &Result{RunID: uuid.NewString()}
		e.finish(res, StatusInvalidInput, err, time.Now())
		return res
	}
	return e.Solve(ctx, p)
}

// Solve classifies p and, when the pre-checks pass, computes a maximum
// affinity assignment. It never returns a partial assignment.
func (e *Engine) Solve(ctx context.Context, p *Problem) *Result {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}

	if p == nil {
		e.finish(res, StatusInvalidInput, &InvalidInputError{Problems: []string{"nil problem"}}, start)
		return res
	}
	res.Demand, res.Supply = p.demand, p.supply

	e.logger.Debug("solve started",
		"run", res.RunID, "papers", len(p.papers), "reviewers", len(p.reviewers),
		"demand", p.demand, "supply", p.supply)

	if err := CheckFeasibility(p); err != nil {
		e.finish(res, StatusInfeasibleSupply, err, start)
		return res
	}

	net := buildNetwork(p)
	e.metrics.RecordProblemSize(len(p.papers), len(p.reviewers), len(net.edges))

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	solverStart := time.Now()
	sol, err := solveNetwork(ctx, net)
	e.metrics.RecordSolverRun(sol.augmentations, time.Since(solverStart).Seconds())
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			e.finish(res, StatusInternalError, &EngineInternalError{Violations: []string{err.Error()}}, start)
			return res
		}
		e.finish(res, StatusTimeout, &TimeoutError{Elapsed: time.Since(start), Cause: err}, start)
		return res
	}
	if !sol.feasible() {
		e.finish(res, StatusNoSolution, &NoSolutionError{Placed: sol.placed, Demand: sol.required}, start)
		return res
	}

	assignment, loads, objective := extractAssignment(p, net, sol)
	if err := verifyAssignment(p, assignment); err != nil {
		e.finish(res, StatusInternalError, err, start)
		return res
	}

	res.Assignment = assignment
	res.Loads = loads
	res.Objective = objective
	e.finish(res, StatusComplete, nil, start)
	return res
}

func (e *Engine) finish(res *Result, status Status, err error, start time.Time) {
	res.Status = status
	res.Err = err
	if err != nil {
		res.Detail = err.Error()
	}
	res.Elapsed = time.Since(start)
	e.metrics.RecordSolve(status, res.Elapsed.Seconds())

	kv := []any{"run", res.RunID, "status", status.String(), "elapsed", res.Elapsed}
	switch status {
	case StatusComplete:
		e.logger.Info("solve finished", append(kv, "objective", res.Objective)...)
	case StatusInternalError:
		e.logger.Error("solve failed", append(kv, "defect", true, "error", err)...)
	default:
		e.logger.Warn("solve failed", append(kv, "error", err)...)
	}
}

// Solve runs a default Engine on p.
func Solve(ctx context.Context, p *Problem) *Result {
	return NewEngine().Solve(ctx, p)
}
