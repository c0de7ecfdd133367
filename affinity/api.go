// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package affinity provides paper-reviewer affinity tables.
package affinity

import "github.com/someonegg/reviewmatch"

type Key struct {
	Paper    string
	Reviewer string
}

type Record struct {
	Key
	Score float64
}

// Func adapts a function to reviewmatch.AffinityTable.
type Func func(paperID, reviewerID string) (float64, bool)

func (f Func) Find(paperID, reviewerID string) (float64, bool) {
	return f(paperID, reviewerID)
}

var _ reviewmatch.AffinityTable = Func(nil)
