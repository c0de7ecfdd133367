// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors wrapped by the typed errors below.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInfeasibleSupply = errors.New("infeasible supply")
	ErrNoSolution       = errors.New("no solution")
	ErrEngineInternal   = errors.New("engine internal error")
	ErrTimeout          = errors.New("solver timeout")
)

// InvalidInputError lists every problem found while building a Problem.
type InvalidInputError struct {
	Problems []string
}

func (e *InvalidInputError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// InfeasibleSupplyError is returned by the pre-checks. Supply and Demand
// are always the aggregate figures; Reason is set when a finer-grained
// check (locks, eligible reviewers) failed instead.
type InfeasibleSupplyError struct {
	Supply int
	Demand int
	Reason string
}

func (e *InfeasibleSupplyError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("supply %d < demand %d", e.Supply, e.Demand)
}

func (e *InfeasibleSupplyError) Unwrap() error { return ErrInfeasibleSupply }

// NoSolutionError reports that no flow satisfies every bound. Placed is the
// largest number of reviews the solver could route.
type NoSolutionError struct {
	Placed int
	Demand int
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no feasible assignment: placed %d of %d reviews", e.Placed, e.Demand)
}

func (e *NoSolutionError) Unwrap() error { return ErrNoSolution }

type EngineInternalError struct {
	Violations []string
}

func (e *EngineInternalError) Error() string {
	return "assignment failed validation: " + strings.Join(e.Violations, "; ")
}

func (e *EngineInternalError) Unwrap() error { return ErrEngineInternal }

type TimeoutError struct {
	Elapsed time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver stopped after %v: %v", e.Elapsed.Round(time.Millisecond), e.Cause)
}

func (e *TimeoutError) Unwrap() []error { return []error{ErrTimeout, e.Cause} }
