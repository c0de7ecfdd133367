// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import "fmt"

// CheckFeasibility runs the necessary-condition checks that make a solver
// run pointless when they fail. Passing them does not imply a solution
// exists; the solver stays authoritative.
func CheckFeasibility(p *Problem) error {
	if p.supply < p.demand {
		return &InfeasibleSupplyError{Supply: p.supply, Demand: p.demand}
	}

	infeasible := func(format string, args ...any) error {
		return &InfeasibleSupplyError{
			Supply: p.supply,
			Demand: p.demand,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	paperLocks := make([]int, len(p.papers))
	reviewerLocks := make([]int, len(p.reviewers))
	for key, kind := range p.constraints {
		if kind == Lock {
			paperLocks[key.paper]++
			reviewerLocks[key.reviewer]++
		}
	}

	for j, r := range p.reviewers {
		if reviewerLocks[j] > p.capacity[j] {
			return infeasible("reviewer %s is locked to %d papers > capacity %d",
				r.ID, reviewerLocks[j], p.capacity[j])
		}
	}

	for i, paper := range p.papers {
		if paperLocks[i] > paper.RequiredReviews {
			return infeasible("paper %s has %d locks > required reviews %d",
				paper.ID, paperLocks[i], paper.RequiredReviews)
		}

		eligible := 0
		for j := range p.reviewers {
			if p.capacity[j] > 0 && !p.excluded(i, j) {
				eligible++
			}
		}
		if eligible < paper.RequiredReviews {
			return infeasible("paper %s has %d eligible reviewers < required reviews %d",
				paper.ID, eligible, paper.RequiredReviews)
		}
	}

	return nil
}
