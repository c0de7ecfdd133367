// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import "math"

// costScale converts affinities to integer costs, keeping six decimals.
const costScale = 1e6

// flowEdge carries both bounds: a flow f on it must satisfy
// lower <= f <= upper.
type flowEdge struct {
	from, to     int
	lower, upper int
	cost         int64
}

type pairEdge struct {
	edge     int
	paper    int
	reviewer int
}

// flowNetwork lays out nodes as
//
//	source | papers... | reviewers... | sink
//
// Source→paper edges are exact demands (lower == upper), paper→reviewer
// edges exist for every pair that is neither vetoed nor conflicted, and
// locked pairs have lower bound 1.
type flowNetwork struct {
	nodes  int
	source int
	sink   int
	edges  []flowEdge
	pairs  []pairEdge
}

func buildNetwork(p *Problem) *flowNetwork {
	np, nr := len(p.papers), len(p.reviewers)

	net := &flowNetwork{
		nodes:  np + nr + 2,
		source: 0,
		sink:   np + nr + 1,
	}
	paperNode := func(i int) int { return 1 + i }
	reviewerNode := func(j int) int { return 1 + np + j }

	for i, paper := range p.papers {
		net.edges = append(net.edges, flowEdge{
			from:  net.source,
			to:    paperNode(i),
			lower: paper.RequiredReviews,
			upper: paper.RequiredReviews,
		})
	}

	for i := range p.papers {
		for j := range p.reviewers {
			if p.excluded(i, j) {
				continue
			}
			lower := 0
			if p.locked(i, j) {
				lower = 1
			}
			net.pairs = append(net.pairs, pairEdge{edge: len(net.edges), paper: i, reviewer: j})
			net.edges = append(net.edges, flowEdge{
				from:  paperNode(i),
				to:    reviewerNode(j),
				lower: lower,
				upper: 1,
				cost:  affinityCost(p.scores[i][j]),
			})
		}
	}

	for j := range p.reviewers {
		net.edges = append(net.edges, flowEdge{
			from:  reviewerNode(j),
			to:    net.sink,
			upper: p.capacity[j],
		})
	}

	return net
}

// affinityCost maps a score to a cost so that minimizing cost maximizes
// affinity.
func affinityCost(score float64) int64 {
	return -int64(math.Round(score * costScale))
}
