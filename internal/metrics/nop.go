// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import "github.com/someonegg/reviewmatch"

// NopMetrics discards all metrics.
type NopMetrics struct{}

var _ reviewmatch.MetricsCollector = (*NopMetrics)(nil)

func NewNop() *NopMetrics {
	return &NopMetrics{}
}

func (n *NopMetrics) RecordSolve(_ reviewmatch.Status, _ float64) {}
func (n *NopMetrics) RecordSolverRun(_ int, _ float64)            {}
func (n *NopMetrics) RecordProblemSize(_, _, _ int)               {}
