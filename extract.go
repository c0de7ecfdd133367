// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import "fmt"

// extractAssignment reads the unit flows on paper→reviewer edges. Reviewer
// lists follow input order.
func extractAssignment(p *Problem, net *flowNetwork, sol *flowSolution) (Assignment, map[string]int, float64) {
	assignment := make(Assignment, len(p.papers))
	loads := make(map[string]int, len(p.reviewers))
	for _, paper := range p.papers {
		assignment[paper.ID] = []string{}
	}
	for _, r := range p.reviewers {
		loads[r.ID] = 0
	}

	var objective float64
	for _, pe := range net.pairs {
		if sol.flows[pe.edge] <= 0 {
			continue
		}
		paperID, reviewerID := p.papers[pe.paper].ID, p.reviewers[pe.reviewer].ID
		assignment[paperID] = append(assignment[paperID], reviewerID)
		loads[reviewerID]++
		objective += p.scores[pe.paper][pe.reviewer]
	}
	return assignment, loads, objective
}

// verifyAssignment re-checks every invariant of a complete assignment and
// returns an *EngineInternalError listing all violations.
func verifyAssignment(p *Problem, assignment Assignment) error {
	var violations []string
	violate := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	assigned := make(map[pairIndex]bool)
	load := make([]int, len(p.reviewers))
	for i, paper := range p.papers {
		reviewers := assignment[paper.ID]
		if len(reviewers) != paper.RequiredReviews {
			violate("paper %s has %d reviewers, requires %d", paper.ID, len(reviewers), paper.RequiredReviews)
		}
		for _, id := range reviewers {
			j, ok := p.reviewerIndex[id]
			if !ok {
				violate("paper %s assigned unknown reviewer %s", paper.ID, id)
				continue
			}
			key := pairIndex{i, j}
			if assigned[key] {
				violate("paper %s assigned reviewer %s twice", paper.ID, id)
			}
			assigned[key] = true
			load[j]++
			if p.excluded(i, j) {
				violate("paper %s assigned excluded reviewer %s", paper.ID, id)
			}
		}
	}

	for j, r := range p.reviewers {
		if load[j] > p.capacity[j] {
			violate("reviewer %s has %d papers > capacity %d", r.ID, load[j], p.capacity[j])
		}
	}

	for i, paper := range p.papers {
		for j, r := range p.reviewers {
			if p.locked(i, j) && !assigned[pairIndex{i, j}] {
				violate("locked pair paper %s reviewer %s missing", paper.ID, r.ID)
			}
		}
	}

	if len(violations) > 0 {
		return &EngineInternalError{Violations: violations}
	}
	return nil
}
