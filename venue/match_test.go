// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package venue

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/someonegg/reviewmatch"
)

func intPtr(v int) *int { return &v }

func makeRequest() *Request {
	return &Request{
		Papers: []Paper{
			{ID: "p0", RequiredReviews: 2},
			{ID: "p1", RequiredReviews: 1},
		},
		Reviewers: []Reviewer{
			{ID: "r0", DefaultCapacity: 1},
			{ID: "r1", DefaultCapacity: 1},
			{ID: "r2", DefaultCapacity: 2, CustomCapacity: intPtr(1)},
		},
		Constraints: Constraints{
			Locks: map[string][]string{"p0": {"r2"}},
		},
		Scores: map[string]map[string]float64{
			"p0": {"r0": 0.1},
			"p1": {"r0": 0.9},
		},
	}
}

func TestRequestInput(t *testing.T) {
	req := makeRequest()
	req.Constraints.Vetos = map[string][]string{"p1": {"r1"}, "p0": {"r1"}}
	req.Conflicts = map[string][]string{"p1": {"r2"}}

	in := req.Input()

	if len(in.Papers) != 2 || in.Papers[1].ID != "p1" || in.Papers[1].RequiredReviews != 1 {
		t.Errorf("Unexpected papers %v", in.Papers)
	}
	if in.Reviewers[2].Capacity() != 1 {
		t.Errorf("Expected r2 capacity 1, got %d", in.Reviewers[2].Capacity())
	}

	want := []reviewmatch.Constraint{
		{Pair: reviewmatch.Pair{PaperID: "p0", ReviewerID: "r2"}, Kind: reviewmatch.Lock},
		{Pair: reviewmatch.Pair{PaperID: "p0", ReviewerID: "r1"}, Kind: reviewmatch.Veto},
		{Pair: reviewmatch.Pair{PaperID: "p1", ReviewerID: "r1"}, Kind: reviewmatch.Veto},
	}
	if !reflect.DeepEqual(in.Constraints, want) {
		t.Errorf("Constraints = %v, want %v", in.Constraints, want)
	}
	if !reflect.DeepEqual(in.Conflicts, []reviewmatch.Pair{{PaperID: "p1", ReviewerID: "r2"}}) {
		t.Errorf("Unexpected conflicts %v", in.Conflicts)
	}

	if score, ok := in.Affinities.Find("p1", "r0"); !ok || score != 0.9 {
		t.Errorf("Find(p1, r0) = %v, %v", score, ok)
	}

	req.Scores = nil
	if req.Input().Affinities != nil {
		t.Error("Expected no affinity table without scores")
	}
}

func TestMatch(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		m := &Matcher{}
		resp, err := m.Match(context.Background(), makeRequest())
		if err != nil {
			t.Fatalf("Unexpected error %v", err)
		}
		if resp.Status != reviewmatch.StatusComplete {
			t.Fatalf("Expected COMPLETE, got %v", resp.Status)
		}
		want := reviewmatch.Assignment{
			"p0": {"r1", "r2"},
			"p1": {"r0"},
		}
		if !reflect.DeepEqual(resp.Assignment, want) {
			t.Errorf("Assignment = %v, want %v", resp.Assignment, want)
		}
		if resp.Objective == nil || math.Abs(*resp.Objective-0.9) > 1e-9 {
			t.Errorf("Unexpected objective %v", resp.Objective)
		}

		summ := resp.Summary
		if summ.Demand != 3 || summ.Supply != 3 || summ.Spare != 0 {
			t.Errorf("Unexpected summary %+v", summ)
		}
		if summ.Loads["r0"] != 1 || summ.Loads["r2"] != 1 {
			t.Errorf("Unexpected loads %v", summ.Loads)
		}
		if resp.RunID == "" {
			t.Error("Expected a run id")
		}
	})

	t.Run("NeutralAffinity", func(t *testing.T) {
		// every unscored pair is worth 1, so the objective counts them
		na := 1.0
		m := &Matcher{NeutralAffinity: &na}
		resp, err := m.Match(context.Background(), makeRequest())
		if err != nil {
			t.Fatalf("Unexpected error %v", err)
		}
		if resp.Objective == nil || math.Abs(*resp.Objective-2.9) > 1e-9 {
			t.Errorf("Unexpected objective %v", resp.Objective)
		}
	})

	t.Run("InfeasibleSupply", func(t *testing.T) {
		req := makeRequest()
		req.Reviewers = req.Reviewers[:1]
		req.Constraints = Constraints{}

		resp, err := (&Matcher{}).Match(context.Background(), req)
		if !errors.Is(err, reviewmatch.ErrInfeasibleSupply) {
			t.Fatalf("Expected ErrInfeasibleSupply, got %v", err)
		}
		if resp.Status != reviewmatch.StatusInfeasibleSupply || resp.Detail != "supply 1 < demand 3" {
			t.Errorf("Unexpected response %+v", resp)
		}
		if resp.Assignment != nil || resp.Objective != nil {
			t.Error("Expected no assignment")
		}
		if resp.Summary.Spare != 1 {
			t.Errorf("Expected spare 1, got %d", resp.Summary.Spare)
		}
	})

	t.Run("InvalidReference", func(t *testing.T) {
		req := makeRequest()
		req.Conflicts = map[string][]string{"p9": {"r0"}}

		resp, err := (&Matcher{}).Match(context.Background(), req)
		if !errors.Is(err, reviewmatch.ErrInvalidInput) {
			t.Fatalf("Expected ErrInvalidInput, got %v", err)
		}
		if resp.Detail != `CONFLICT references unknown paper "p9"` {
			t.Errorf("Unexpected detail %q", resp.Detail)
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		resp, err := (&Matcher{}).Match(ctx, makeRequest())
		if !errors.Is(err, reviewmatch.ErrTimeout) {
			t.Fatalf("Expected ErrTimeout, got %v", err)
		}
		if resp.Status != reviewmatch.StatusTimeout {
			t.Errorf("Expected TIMEOUT, got %v", resp.Status)
		}
	})
}

func TestRequestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := makeRequest().Validate(); err != nil {
			t.Errorf("Unexpected error %v", err)
		}
	})

	t.Run("EmptyIDs", func(t *testing.T) {
		req := makeRequest()
		req.Papers[1].ID = ""
		req.Reviewers[0].ID = ""

		err := req.Validate()
		var iie *reviewmatch.InvalidInputError
		if !errors.As(err, &iie) {
			t.Fatalf("Expected InvalidInputError, got %v", err)
		}
		want := []string{"papers[1].id: required", "reviewers[0].id: required"}
		if !reflect.DeepEqual(iie.Problems, want) {
			t.Errorf("Problems = %q, want %q", iie.Problems, want)
		}
	})

	t.Run("EmptyReference", func(t *testing.T) {
		req := makeRequest()
		req.Constraints.Vetos = map[string][]string{"p0": {""}}

		resp, err := (&Matcher{}).Match(context.Background(), req)
		if !errors.Is(err, reviewmatch.ErrInvalidInput) {
			t.Fatalf("Expected ErrInvalidInput, got %v", err)
		}
		if resp.Status != reviewmatch.StatusInvalidInput || !strings.Contains(resp.Detail, "required") {
			t.Errorf("Unexpected response %+v", resp)
		}
		if resp.Summary.PapersCount != 2 || resp.Summary.ReviewersCount != 3 {
			t.Errorf("Unexpected summary %+v", resp.Summary)
		}
	})
}

func TestWireFormat(t *testing.T) {
	data := `{
		"papers": [{"id": "p0", "required_reviews": 1}],
		"reviewers": [
			{"id": "r0", "default_capacity": 1},
			{"id": "r1", "default_capacity": 3, "custom_capacity": 1}
		],
		"constraints": {"vetos": {"p0": ["r0"]}},
		"scores": {"p0": {"r0": 1.0, "r1": 0.5}}
	}`

	var req Request
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		t.Fatal(err)
	}
	if req.Reviewers[1].CustomCapacity == nil || *req.Reviewers[1].CustomCapacity != 1 {
		t.Fatalf("Unexpected reviewers %+v", req.Reviewers)
	}

	resp, err := (&Matcher{}).Match(context.Background(), &req)
	if err != nil {
		t.Fatalf("Unexpected error %v", err)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["status"] != "COMPLETE" {
		t.Errorf("Expected status COMPLETE, got %v", decoded["status"])
	}
	if decoded["objective"] != 0.5 {
		t.Errorf("Expected objective 0.5, got %v", decoded["objective"])
	}
	assignment, _ := decoded["assignment"].(map[string]any)
	if !reflect.DeepEqual(assignment["p0"], []any{"r1"}) {
		t.Errorf("Unexpected assignment %v", decoded["assignment"])
	}
}
