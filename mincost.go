// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reviewmatch

import (
	"container/heap"
	"context"
	"math"
)

const infCost = math.MaxInt64 / 4

type residualEdge struct {
	to   int
	rev  int
	cap  int
	cost int64
}

type edgeRef struct {
	node, idx int
}

// residualGraph is a min-cost flow graph solved by successive shortest
// paths with Johnson potentials.
type residualGraph struct {
	adj [][]residualEdge
}

func newResidualGraph(n int) *residualGraph {
	return &residualGraph{adj: make([][]residualEdge, n)}
}

func (g *residualGraph) addEdge(from, to, cap int, cost int64) edgeRef {
	ref := edgeRef{from, len(g.adj[from])}
	g.adj[from] = append(g.adj[from], residualEdge{to: to, rev: len(g.adj[to]), cap: cap, cost: cost})
	g.adj[to] = append(g.adj[to], residualEdge{to: from, rev: ref.idx, cap: 0, cost: -cost})
	return ref
}

func (g *residualGraph) edge(ref edgeRef) *residualEdge {
	return &g.adj[ref.node][ref.idx]
}

// potentials returns shortest distances from a virtual node joined to every
// node at cost zero. The graph must not hold a negative cycle.
func (g *residualGraph) potentials(ctx context.Context) ([]int64, error) {
	n := len(g.adj)
	dist := make([]int64, n)
	inQueue := make([]bool, n)
	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		queue = append(queue, v)
		inQueue[v] = true
	}

	for pops := 0; len(queue) > 0; pops++ {
		if pops&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false
		for _, e := range g.adj[u] {
			if e.cap > 0 && dist[u]+e.cost < dist[e.to] {
				dist[e.to] = dist[u] + e.cost
				if !inQueue[e.to] {
					inQueue[e.to] = true
					queue = append(queue, e.to)
				}
			}
		}
	}
	return dist, nil
}

type distItem struct {
	dist int64
	node int
}

type distHeap []distItem

func (h distHeap) Len() int { return len(h) }
func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].node < h[j].node
}
func (h distHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)   { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

type flowStats struct {
	flow          int
	cost          int64
	augmentations int
}

// minCostFlow sends up to limit units from s to t at minimum cost. It
// returns early with ctx's error when ctx is done.
func (g *residualGraph) minCostFlow(ctx context.Context, s, t, limit int) (flowStats, error) {
	var stats flowStats

	pot, err := g.potentials(ctx)
	if err != nil {
		return stats, err
	}

	n := len(g.adj)
	dist := make([]int64, n)
	done := make([]bool, n)
	prevNode := make([]int, n)
	prevEdge := make([]int, n)

	for stats.flow < limit {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		for v := 0; v < n; v++ {
			dist[v] = infCost
			done[v] = false
			prevNode[v] = -1
		}
		dist[s] = 0
		h := &distHeap{{0, s}}
		for h.Len() > 0 {
			it := heap.Pop(h).(distItem)
			u := it.node
			if done[u] {
				continue
			}
			done[u] = true
			if u == t {
				break
			}
			for i, e := range g.adj[u] {
				if e.cap <= 0 || done[e.to] {
					continue
				}
				nd := dist[u] + e.cost + pot[u] - pot[e.to]
				if nd < dist[e.to] {
					dist[e.to] = nd
					prevNode[e.to] = u
					prevEdge[e.to] = i
					heap.Push(h, distItem{nd, e.to})
				}
			}
		}
		if !done[t] {
			break
		}

		// Nodes not finalized are at least as far as t.
		for v := 0; v < n; v++ {
			if done[v] {
				pot[v] += dist[v]
			} else {
				pot[v] += dist[t]
			}
		}

		push := limit - stats.flow
		for v := t; v != s; v = prevNode[v] {
			if c := g.adj[prevNode[v]][prevEdge[v]].cap; c < push {
				push = c
			}
		}
		for v := t; v != s; v = prevNode[v] {
			e := &g.adj[prevNode[v]][prevEdge[v]]
			e.cap -= push
			g.adj[v][e.rev].cap += push
			stats.cost += int64(push) * e.cost
		}
		stats.flow += push
		stats.augmentations++
	}

	return stats, nil
}

type flowSolution struct {
	flows         []int // per network edge, lower bound included
	cost          int64
	placed        int
	required      int
	augmentations int
}

func (s *flowSolution) feasible() bool {
	return s.placed == s.required
}

// solveNetwork finds a min-cost flow honoring every lower and upper bound
// of net. Lower bounds are removed by the usual circulation reduction: each
// bounded edge keeps upper-lower capacity, the lower amount becomes node
// excess fed from a super source and drained to a super sink, and a
// sink→source return edge closes the circulation.
func solveNetwork(ctx context.Context, net *flowNetwork) (*flowSolution, error) {
	superSource, superSink := net.nodes, net.nodes+1
	g := newResidualGraph(net.nodes + 2)

	excess := make([]int, net.nodes)
	refs := make([]edgeRef, len(net.edges))
	var baseCost int64
	returnCap := 0
	for i, e := range net.edges {
		refs[i] = g.addEdge(e.from, e.to, e.upper-e.lower, e.cost)
		excess[e.to] += e.lower
		excess[e.from] -= e.lower
		baseCost += int64(e.lower) * e.cost
		if e.from == net.source {
			returnCap += e.upper
		}
	}
	g.addEdge(net.sink, net.source, returnCap, 0)

	sol := &flowSolution{flows: make([]int, len(net.edges))}
	for v, x := range excess {
		switch {
		case x > 0:
			g.addEdge(superSource, v, x, 0)
			sol.required += x
		case x < 0:
			g.addEdge(v, superSink, -x, 0)
		}
	}

	stats, err := g.minCostFlow(ctx, superSource, superSink, sol.required)
	sol.placed = stats.flow
	sol.augmentations = stats.augmentations
	sol.cost = baseCost + stats.cost
	if err != nil {
		return sol, err
	}

	for i, e := range net.edges {
		sol.flows[i] = e.upper - g.edge(refs[i]).cap
	}
	return sol, nil
}
