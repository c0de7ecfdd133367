// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import "fmt"

// Status classifies the outcome of a solve.
type Status int

const (
	StatusComplete Status = iota + 1
	StatusInfeasibleSupply
	StatusNoSolution
	StatusInvalidInput
	StatusTimeout
	// StatusInternalError is reported when a solver flow fails
	// re-validation. It is an engine defect, never a data problem.
	StatusInternalError
)

var statusNames = map[Status]string{
	StatusComplete:         "COMPLETE",
	StatusInfeasibleSupply: "INFEASIBLE_SUPPLY",
	StatusNoSolution:       "NO_SOLUTION",
	StatusInvalidInput:     "INVALID_INPUT",
	StatusTimeout:          "TIMEOUT",
	StatusInternalError:    "INTERNAL_ERROR",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Terminal reports whether retrying the same input can never change the
// outcome.
func (s Status) Terminal() bool {
	return s == StatusInfeasibleSupply || s == StatusNoSolution || s == StatusInvalidInput
}
