// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package venue uses reviewmatch to assign the reviewers of a venue.
package venue

import (
	"time"

	"github.com/someonegg/reviewmatch"
)

type Paper struct {
	ID              string `json:"id" validate:"required"`
	RequiredReviews int    `json:"required_reviews"`
}

type Reviewer struct {
	ID              string `json:"id" validate:"required"`
	DefaultCapacity int    `json:"default_capacity"`
	CustomCapacity  *int   `json:"custom_capacity,omitempty"`
}

// Constraints are keyed by paper id.
type Constraints struct {
	Locks map[string][]string `json:"locks,omitempty" validate:"dive,keys,required,endkeys,dive,required"`
	Vetos map[string][]string `json:"vetos,omitempty" validate:"dive,keys,required,endkeys,dive,required"`
}

type Request struct {
	Papers      []Paper             `json:"papers" validate:"dive"`
	Reviewers   []Reviewer          `json:"reviewers" validate:"dive"`
	Constraints Constraints         `json:"constraints"`
	Conflicts   map[string][]string `json:"conflicts,omitempty" validate:"dive,keys,required,endkeys,dive,required"`

	// paperID -> reviewerID -> score
	Scores map[string]map[string]float64 `json:"scores,omitempty"`
}

type Response struct {
	RunID      string                 `json:"run_id"`
	Status     reviewmatch.Status     `json:"status"`
	Assignment reviewmatch.Assignment `json:"assignment,omitempty"`
	Objective  *float64               `json:"objective,omitempty"`
	Detail     string                 `json:"detail,omitempty"`
	Summary    Summary                `json:"summary"`
}

type Summary struct {
	PapersCount    int            `json:"papers"`
	ReviewersCount int            `json:"reviewers"`
	Demand         int            `json:"demand"`
	Supply         int            `json:"supply"`
	Spare          int            `json:"spare"`
	Loads          map[string]int `json:"loads,omitempty"`
	ElapsedMS      float64        `json:"elapsed_ms"`
}

const (
	DefaultNeutralAffinity = reviewmatch.NeutralAffinity
	DefaultTimeout         = 30 * time.Second
)

type Matcher struct {
	NeutralAffinity *float64       `json:"na"`
	Timeout         *time.Duration `json:"timeout"`

	Logger  reviewmatch.Logger           `json:"-"`
	Metrics reviewmatch.MetricsCollector `json:"-"`

	na      float64
	timeout time.Duration
}
