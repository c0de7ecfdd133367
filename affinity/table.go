// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package affinity

import "github.com/someonegg/reviewmatch"

type matrix map[Key]float64

// NewMatrix returns a table holding exactly records. A later record for
// the same key replaces an earlier one.
func NewMatrix(records []Record) reviewmatch.AffinityTable {
	m := make(matrix, len(records))
	for _, rec := range records {
		m[rec.Key] = rec.Score
	}
	return m
}

func (m matrix) Find(paperID, reviewerID string) (float64, bool) {
	score, ok := m[Key{Paper: paperID, Reviewer: reviewerID}]
	return score, ok
}

// Nested is the wire shape: paperID -> reviewerID -> score.
type Nested map[string]map[string]float64

func (n Nested) Find(paperID, reviewerID string) (float64, bool) {
	score, ok := n[paperID][reviewerID]
	return score, ok
}

type complexTable struct {
	orig reviewmatch.AffinityTable
	recs matrix
}

// NewComplexTable layers records over orig: a record wins, otherwise orig
// is consulted. orig can be nil.
func NewComplexTable(orig reviewmatch.AffinityTable, records []Record) reviewmatch.AffinityTable {
	recs := make(matrix, len(records))
	for _, rec := range records {
		recs[rec.Key] = rec.Score
	}
	return &complexTable{
		orig: orig,
		recs: recs,
	}
}

func (t *complexTable) Find(paperID, reviewerID string) (float64, bool) {
	if score, ok := t.recs.Find(paperID, reviewerID); ok {
		return score, true
	}
	if t.orig == nil {
		return 0, false
	}
	return t.orig.Find(paperID, reviewerID)
}
