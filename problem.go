// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import (
	"fmt"
	"math"
)

const (
	// NeutralAffinity is used for pairs the affinity table does not score.
	NeutralAffinity = 0.0

	// MaxAffinity bounds the magnitude of any score so that scaled integer
	// costs cannot overflow.
	MaxAffinity = 1e6
)

type pairIndex struct {
	paper, reviewer int
}

// Problem is a validated, immutable problem instance. Papers and reviewers
// are indexed densely in input order.
type Problem struct {
	papers    []Paper
	reviewers []Reviewer
	capacity  []int

	paperIndex    map[string]int
	reviewerIndex map[string]int

	constraints map[pairIndex]ConstraintKind
	conflicts   map[pairIndex]bool
	scores      [][]float64

	demand int
	supply int
}

type ProblemOption func(*problemOptions)

type problemOptions struct {
	neutral float64
}

// WithNeutralAffinity overrides the score of pairs absent from the table.
func WithNeutralAffinity(score float64) ProblemOption {
	return func(o *problemOptions) {
		o.neutral = score
	}
}

// NewProblem validates and normalizes in. All problems found are reported
// together in an *InvalidInputError.
func NewProblem(in *Input, opts ...ProblemOption) (*Problem, error) {
	o := problemOptions{neutral: NeutralAffinity}
	for _, opt := range opts {
		opt(&o)
	}

	var bad []string
	badf := func(format string, args ...any) {
		bad = append(bad, fmt.Sprintf(format, args...))
	}

	if !validScore(o.neutral) {
		badf("neutral affinity %v out of range", o.neutral)
	}

	p := &Problem{
		papers:        make([]Paper, len(in.Papers)),
		reviewers:     make([]Reviewer, len(in.Reviewers)),
		capacity:      make([]int, len(in.Reviewers)),
		paperIndex:    make(map[string]int, len(in.Papers)),
		reviewerIndex: make(map[string]int, len(in.Reviewers)),
		constraints:   make(map[pairIndex]ConstraintKind),
		conflicts:     make(map[pairIndex]bool),
	}

	for i, paper := range in.Papers {
		p.papers[i] = paper
		switch {
		case paper.ID == "":
			badf("paper #%d has an empty id", i)
			continue
		case paper.RequiredReviews < 0:
			badf("paper %s requires %d reviews", paper.ID, paper.RequiredReviews)
		}
		if _, dup := p.paperIndex[paper.ID]; dup {
			badf("duplicate paper %s", paper.ID)
			continue
		}
		p.paperIndex[paper.ID] = i
		if paper.RequiredReviews > 0 {
			p.demand += paper.RequiredReviews
		}
	}

	for i, reviewer := range in.Reviewers {
		r := reviewer
		if r.CustomCapacity != nil {
			c := *r.CustomCapacity
			r.CustomCapacity = &c
		}
		p.reviewers[i] = r
		switch {
		case r.ID == "":
			badf("reviewer #%d has an empty id", i)
			continue
		case r.CustomCapacity != nil && *r.CustomCapacity < 0:
			badf("reviewer %s has custom capacity %d", r.ID, *r.CustomCapacity)
		}
		if _, dup := p.reviewerIndex[r.ID]; dup {
			badf("duplicate reviewer %s", r.ID)
			continue
		}
		p.reviewerIndex[r.ID] = i
		p.capacity[i] = r.Capacity()
		p.supply += p.capacity[i]
	}

	resolve := func(what string, pair Pair) (pairIndex, bool) {
		pi, okP := p.paperIndex[pair.PaperID]
		ri, okR := p.reviewerIndex[pair.ReviewerID]
		if !okP {
			badf("%s references unknown paper %q", what, pair.PaperID)
		}
		if !okR {
			badf("%s references unknown reviewer %q", what, pair.ReviewerID)
		}
		return pairIndex{pi, ri}, okP && okR
	}

	collided := make(map[pairIndex]bool)
	for _, c := range in.Constraints {
		if c.Kind != Lock && c.Kind != Veto {
			badf("constraint %s/%s has unknown kind %d", c.PaperID, c.ReviewerID, int(c.Kind))
			continue
		}
		key, ok := resolve(c.Kind.String(), c.Pair)
		if !ok {
			continue
		}
		if prev, seen := p.constraints[key]; seen && prev != c.Kind {
			if !collided[key] {
				collided[key] = true
				badf("paper %s reviewer %s is both LOCK and VETO", c.PaperID, c.ReviewerID)
			}
			continue
		}
		p.constraints[key] = c.Kind
	}

	for _, c := range in.Conflicts {
		key, ok := resolve("CONFLICT", c)
		if !ok {
			continue
		}
		if p.constraints[key] == Lock && !collided[key] {
			collided[key] = true
			badf("paper %s reviewer %s is both LOCK and CONFLICT", c.PaperID, c.ReviewerID)
		}
		p.conflicts[key] = true
	}

	p.scores = make([][]float64, len(p.papers))
	for i := range p.papers {
		p.scores[i] = make([]float64, len(p.reviewers))
		for j := range p.reviewers {
			score := o.neutral
			if in.Affinities != nil {
				if s, ok := in.Affinities.Find(p.papers[i].ID, p.reviewers[j].ID); ok {
					if !validScore(s) {
						badf("affinity of paper %s reviewer %s is %v", p.papers[i].ID, p.reviewers[j].ID, s)
					}
					score = s
				}
			}
			p.scores[i][j] = score
		}
	}

	if len(bad) > 0 {
		return nil, &InvalidInputError{Problems: bad}
	}
	return p, nil
}

func validScore(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0) && math.Abs(s) <= MaxAffinity
}

func (p *Problem) Papers() []Paper       { return p.papers }
func (p *Problem) Reviewers() []Reviewer { return p.reviewers }

// Demand is the total number of reviews required.
func (p *Problem) Demand() int { return p.demand }

// Supply is the total effective reviewer capacity.
func (p *Problem) Supply() int { return p.supply }

func (p *Problem) locked(paper, reviewer int) bool {
	return p.constraints[pairIndex{paper, reviewer}] == Lock
}

// excluded reports whether the pair is vetoed or conflicted.
func (p *Problem) excluded(paper, reviewer int) bool {
	key := pairIndex{paper, reviewer}
	return p.constraints[key] == Veto || p.conflicts[key]
}
