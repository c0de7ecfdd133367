// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package affinity_test

import (
	"testing"

	"github.com/someonegg/reviewmatch/affinity"
)

func TestNewMatrix(t *testing.T) {
	table := affinity.NewMatrix([]affinity.Record{
		{Key: affinity.Key{Paper: "p1", Reviewer: "r1"}, Score: 0.5},
		{Key: affinity.Key{Paper: "p1", Reviewer: "r2"}, Score: -1},
		{Key: affinity.Key{Paper: "p1", Reviewer: "r1"}, Score: 0.9},
	})

	t.Run("LastRecordWins", func(t *testing.T) {
		score, ok := table.Find("p1", "r1")
		if !ok || score != 0.9 {
			t.Errorf("Find(p1, r1) = %v, %v, want 0.9, true", score, ok)
		}
	})

	t.Run("Negative", func(t *testing.T) {
		score, ok := table.Find("p1", "r2")
		if !ok || score != -1 {
			t.Errorf("Find(p1, r2) = %v, %v, want -1, true", score, ok)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, ok := table.Find("p2", "r1"); ok {
			t.Error("Find(p2, r1) should report no score")
		}
	})
}

func TestNested(t *testing.T) {
	table := affinity.Nested{
		"p1": {"r1": 0.25},
	}

	if score, ok := table.Find("p1", "r1"); !ok || score != 0.25 {
		t.Errorf("Find(p1, r1) = %v, %v, want 0.25, true", score, ok)
	}
	if _, ok := table.Find("p1", "r9"); ok {
		t.Error("unknown reviewer should report no score")
	}
	if _, ok := table.Find("p9", "r1"); ok {
		t.Error("unknown paper should report no score")
	}
}

func TestNewComplexTable(t *testing.T) {
	base := affinity.Func(func(paperID, reviewerID string) (float64, bool) {
		if paperID == "p1" {
			return 0.1, true
		}
		return 0, false
	})

	t.Run("NoCustomRecords", func(t *testing.T) {
		table := affinity.NewComplexTable(base, nil)
		score, ok := table.Find("p1", "r1")
		if !ok || score != 0.1 {
			t.Errorf("Find(p1, r1) = %v, %v, want 0.1, true (delegated to base)", score, ok)
		}
	})

	t.Run("RecordOverridesBase", func(t *testing.T) {
		table := affinity.NewComplexTable(base, []affinity.Record{
			{Key: affinity.Key{Paper: "p1", Reviewer: "r1"}, Score: 0.8},
		})
		if score, _ := table.Find("p1", "r1"); score != 0.8 {
			t.Errorf("Find(p1, r1) = %v, want 0.8", score)
		}
		if score, _ := table.Find("p1", "r2"); score != 0.1 {
			t.Errorf("Find(p1, r2) = %v, want 0.1", score)
		}
	})

	t.Run("NilBase", func(t *testing.T) {
		table := affinity.NewComplexTable(nil, []affinity.Record{
			{Key: affinity.Key{Paper: "p2", Reviewer: "r2"}, Score: 2},
		})
		if _, ok := table.Find("p1", "r1"); ok {
			t.Error("nil base should report no score")
		}
		if score, ok := table.Find("p2", "r2"); !ok || score != 2 {
			t.Errorf("Find(p2, r2) = %v, %v, want 2, true", score, ok)
		}
	})
}
