package pathfinder

import (
	"container/heap"

	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// frontierEntry wraps an entity with its scheduling key for the frontier's
// priority queue. seq provides FIFO ordering within the same cost, keeping
// equal-cost pops deterministic within one side; the cross-side "ties go
// forward" rule is applied by selectDirection, not by seq.
type frontierEntry struct {
	entity graph.EID
	cost   int64
	seq    uint64
	stale  bool // lazily-deleted: a cheaper entry for the same entity superseded this one
}

// entryHeap implements container/heap.Interface as a min-heap ordered by
// cost ascending, with FIFO tie-breaking on seq.
type entryHeap []*frontierEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*frontierEntry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Frontier is a priority queue of entities keyed by cost, supporting
// extract-min and decrease-key via lazy deletion: Insert pushes a fresh
// entry and marks any prior live entry for the same entity as stale, so
// Pop only ever returns each entity's cheapest still-valid entry.
type Frontier struct {
	h    entryHeap
	live map[graph.EID]*frontierEntry
	seq  uint64
}

// NewFrontier returns an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		h:    make(entryHeap, 0),
		live: make(map[graph.EID]*frontierEntry),
	}
}

// Insert pushes entity with the given cost, implementing decrease-key by
// lazily invalidating any previous live entry for the same entity — the
// stale entry is skipped over (not removed) when it eventually surfaces in
// Pop, which is the standard workaround for container/heap's lack of native
// decrease-key support.
func (f *Frontier) Insert(entity graph.EID, cost int64) {
	if prev, ok := f.live[entity]; ok {
		prev.stale = true
	}

	e := &frontierEntry{entity: entity, cost: cost, seq: f.seq}
	f.seq++
	f.live[entity] = e
	heap.Push(&f.h, e)
}

// Pop removes and returns the entity with the smallest live cost. Returns
// false if the frontier is empty.
func (f *Frontier) Pop() (graph.EID, int64, bool) {
	for f.h.Len() > 0 {
		e := heap.Pop(&f.h).(*frontierEntry)
		if e.stale {
			continue
		}
		delete(f.live, e.entity)
		return e.entity, e.cost, true
	}
	return "", 0, false
}

// PeekCost returns the cost of the entity Pop would return next, without
// removing it. Returns false if the frontier is empty.
func (f *Frontier) PeekCost() (int64, bool) {
	for f.h.Len() > 0 {
		top := f.h[0]
		if !top.stale {
			return top.cost, true
		}
		heap.Pop(&f.h)
	}
	return 0, false
}

// Empty reports whether the frontier currently has no live entries.
func (f *Frontier) Empty() bool {
	_, ok := f.PeekCost()
	return !ok
}
