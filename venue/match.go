// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package venue

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/someonegg/reviewmatch"
	"github.com/someonegg/reviewmatch/affinity"
)

func (m *Matcher) init() {
	if m.NeutralAffinity == nil {
		m.na = DefaultNeutralAffinity
	} else {
		m.na = *m.NeutralAffinity
	}

	if m.Timeout == nil {
		m.timeout = DefaultTimeout
	} else {
		m.timeout = *m.Timeout
	}
}

// Match solves req. The returned error is the classified failure, nil when
// the status is COMPLETE; resp is always set.
func (m *Matcher) Match(ctx context.Context, req *Request) (resp *Response, err error) {
	m.init()

	if err := req.Validate(); err != nil {
		resp = &Response{
			RunID:  uuid.NewString(),
			Status: reviewmatch.StatusInvalidInput,
			Detail: err.Error(),
		}
		resp.Summary.PapersCount = len(req.Papers)
		resp.Summary.ReviewersCount = len(req.Reviewers)
		return resp, err
	}

	engine := reviewmatch.NewEngine(
		reviewmatch.WithLogger(m.Logger),
		reviewmatch.WithMetrics(m.Metrics),
		reviewmatch.WithTimeout(m.timeout),
		reviewmatch.WithDefaultAffinity(m.na),
	)
	res := engine.Match(ctx, req.Input())

	resp = &Response{
		RunID:  res.RunID,
		Status: res.Status,
		Detail: res.Detail,
	}
	if res.Status == reviewmatch.StatusComplete {
		objective := res.Objective
		resp.Assignment = res.Assignment
		resp.Objective = &objective
	}
	resp.Summary = summarize(req, res)
	return resp, res.Err
}

func summarize(req *Request, res *reviewmatch.Result) Summary {
	summ := Summary{
		PapersCount:    len(req.Papers),
		ReviewersCount: len(req.Reviewers),
		Demand:         res.Demand,
		Supply:         res.Supply,
		Spare:          res.Supply,
		Loads:          res.Loads,
		ElapsedMS:      float64(res.Elapsed) / float64(time.Millisecond),
	}
	for _, load := range res.Loads {
		summ.Spare -= load
	}
	return summ
}

// Input converts the wire request. Papers and reviewers keep request
// order; the keyed constraint maps are walked in sorted key order.
func (r *Request) Input() *reviewmatch.Input {
	in := &reviewmatch.Input{
		Papers:    make([]reviewmatch.Paper, len(r.Papers)),
		Reviewers: make([]reviewmatch.Reviewer, len(r.Reviewers)),
	}

	for i, paper := range r.Papers {
		in.Papers[i] = reviewmatch.Paper{
			ID:              paper.ID,
			RequiredReviews: paper.RequiredReviews,
		}
	}

	for i, reviewer := range r.Reviewers {
		in.Reviewers[i] = reviewmatch.Reviewer{
			ID:              reviewer.ID,
			DefaultCapacity: reviewer.DefaultCapacity,
			CustomCapacity:  reviewer.CustomCapacity,
		}
	}

	for _, pair := range genPairs(r.Constraints.Locks) {
		in.Constraints = append(in.Constraints, reviewmatch.Constraint{Pair: pair, Kind: reviewmatch.Lock})
	}
	for _, pair := range genPairs(r.Constraints.Vetos) {
		in.Constraints = append(in.Constraints, reviewmatch.Constraint{Pair: pair, Kind: reviewmatch.Veto})
	}
	in.Conflicts = genPairs(r.Conflicts)

	if len(r.Scores) > 0 {
		in.Affinities = affinity.Nested(r.Scores)
	}

	return in
}

func genPairs(byPaper map[string][]string) []reviewmatch.Pair {
	if len(byPaper) == 0 {
		return nil
	}

	paperIDs := make([]string, 0, len(byPaper))
	for paperID := range byPaper {
		paperIDs = append(paperIDs, paperID)
	}
	sort.Strings(paperIDs)

	var pairs []reviewmatch.Pair
	for _, paperID := range paperIDs {
		for _, reviewerID := range byPaper[paperID] {
			pairs = append(pairs, reviewmatch.Pair{PaperID: paperID, ReviewerID: reviewerID})
		}
	}
	return pairs
}
