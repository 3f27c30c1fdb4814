// Package pathfinder implements the bidirectional best-first search over
// the entity graph: two symmetric frontiers (source-side and target-side)
// expanded by cost, with intersection detection, producing a path and edge
// sequence or "not found."
package pathfinder

import (
	"github.com/kraklabs/bipass-pathfinder/internal/cost"
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
	"github.com/kraklabs/bipass-pathfinder/internal/rdf"
)

// Store is the subset of internal/store.Store the search needs: the
// adjacency oracle and the distance function the cost package consumes.
// Declared here (not imported from internal/store) so internal/cost and
// internal/pathfinder depend on the data model, not a concrete storage
// engine — the teacher's internal/search (engine) vs internal/store (data)
// split is the grounding for this seam.
type Store interface {
	GetAdjacentEntities(entity graph.EID) (graph.Adjacency, error)
	GetSemanticDistance(a, b graph.EID) (float64, error)
	GetLabel(entity graph.EID) string
	GetDescription(entity graph.EID) string
	GetPropLabel(prop graph.PID) string
	GetPropDescription(prop graph.PID) string
}

// sideState bundles all per-direction search state into one record, per
// spec §9's suggested re-architecture: "a cleaner re-architecture groups
// all per-side state ... into one record."
type sideState struct {
	*graph.PathState
	frontier *Frontier
	origin   graph.EID
}

func newSideState(origin graph.EID) *sideState {
	s := &sideState{
		PathState: graph.NewPathState(),
		frontier:  NewFrontier(),
		origin:    origin,
	}
	s.frontier.Insert(origin, 0)
	s.Cost[origin] = 0
	return s
}

// Result is the outcome of a find_path call.
type Result struct {
	PathForward   []graph.EID
	PathBackward  []graph.EID
	PropsForward  []graph.PID
	PropsBackward []graph.PID
	VisitedCount  int
	Serialized    string
}

// Found reports whether a connecting path was discovered.
func (r Result) Found() bool {
	return len(r.PathForward) > 0 || len(r.PathBackward) > 0
}

// FullPath composes the forward and backward halves into one source-to-
// target path, per spec §4.4's output-composition rule.
func (r Result) FullPath() []graph.EID {
	switch {
	case len(r.PathBackward) == 0:
		return r.PathForward
	case len(r.PathForward) == 0:
		reversed := make([]graph.EID, len(r.PathBackward))
		for i, e := range r.PathBackward {
			reversed[len(r.PathBackward)-1-i] = e
		}
		return reversed
	default:
		reversedTail := make([]graph.EID, len(r.PathBackward)-1)
		for i := 0; i < len(r.PathBackward)-1; i++ {
			reversedTail[i] = r.PathBackward[len(r.PathBackward)-2-i]
		}
		return append(append([]graph.EID{}, r.PathForward...), reversedTail...)
	}
}

// Pathfinder runs bidirectional best-first search against a Store.
type Pathfinder struct {
	store       Store
	entityLimit int
}

// New returns a Pathfinder bounded by entityLimit (the upper bound on
// |visited| across both sides, per spec §6's entity_limit config key).
func New(store Store, entityLimit int) *Pathfinder {
	return &Pathfinder{store: store, entityLimit: entityLimit}
}

// FindPath runs the search between source and target using weights w.
// considerPropFrequency is threaded through per the operation signature in
// spec §4.4 but, per spec §9, carries no weight in the cost function yet.
func (p *Pathfinder) FindPath(source, target graph.EID, w cost.Weights, considerPropFrequency bool) (Result, error) {
	_ = considerPropFrequency // future-work hook; not yet consulted by internal/cost

	// Prefetch warms the Store for both endpoints before the search loop,
	// per spec §4.4 initialization step 1.
	if _, err := p.store.GetAdjacentEntities(source); err != nil {
		return Result{}, err
	}
	if _, err := p.store.GetAdjacentEntities(target); err != nil {
		return Result{}, err
	}

	fwd := newSideState(source)
	bwd := newSideState(target)
	visited := make(map[graph.EID]struct{})

	distFn := func(a, b graph.EID) (float64, error) {
		return p.store.GetSemanticDistance(a, b)
	}

	for (!fwd.frontier.Empty() || !bwd.frontier.Empty()) && len(visited) < p.entityLimit {
		dir, current, _, ok := selectDirection(fwd, bwd)
		if !ok {
			break
		}

		visited[current] = struct{}{}

		var side *sideState
		if dir == graph.Forward {
			side = fwd
		} else {
			side = bwd
		}

		path, props := side.ReconstructPath(side.origin, current)

		if res, done := checkTermination(dir, current, source, target, fwd, bwd, path, props); done {
			res.VisitedCount = len(visited)
			res.Serialized = serialize(res, p.store)
			return res, nil
		}

		adj, err := p.store.GetAdjacentEntities(current)
		if err != nil {
			return Result{}, err
		}

		for _, edge := range adj {
			if containsEID(path, edge.To) {
				continue
			}

			candidatePath := append(append([]graph.EID{}, path...), edge.To)

			var directionalSource, directionalTarget graph.EID
			if dir == graph.Forward {
				directionalSource, directionalTarget = source, target
			} else {
				directionalSource, directionalTarget = target, source
			}

			k, err := cost.Compute(directionalSource, directionalTarget, candidatePath, w, distFn)
			if err != nil {
				return Result{}, err
			}

			existing, have := side.Cost[edge.To]
			if !have || k < existing {
				side.CameFrom[edge.To] = current
				side.PrevProp[edge.To] = edge.Prop
				side.Cost[edge.To] = k
				side.frontier.Insert(edge.To, k)
			}
		}
	}

	return Result{VisitedCount: len(visited)}, nil
}

// selectDirection peeks both frontiers and pops from the side with the
// smaller top cost, ties going to forward, per spec §4.4 step 1.
func selectDirection(fwd, bwd *sideState) (graph.Direction, graph.EID, int64, bool) {
	fwdCost, fwdOK := fwd.frontier.PeekCost()
	bwdCost, bwdOK := bwd.frontier.PeekCost()

	switch {
	case fwdOK && bwdOK:
		if fwdCost <= bwdCost {
			e, c, _ := fwd.frontier.Pop()
			return graph.Forward, e, c, true
		}
		e, c, _ := bwd.frontier.Pop()
		return graph.Backward, e, c, true
	case fwdOK:
		e, c, _ := fwd.frontier.Pop()
		return graph.Forward, e, c, true
	case bwdOK:
		e, c, _ := bwd.frontier.Pop()
		return graph.Backward, e, c, true
	default:
		return graph.Forward, "", 0, false
	}
}

// checkTermination implements spec §4.4 step 4's three ordered checks.
func checkTermination(
	dir graph.Direction,
	current, source, target graph.EID,
	fwd, bwd *sideState,
	path []graph.EID,
	props []graph.PID,
) (Result, bool) {
	if dir == graph.Forward && current == target {
		return Result{PathForward: path, PropsForward: props}, true
	}
	if dir == graph.Backward && current == source {
		return Result{PathBackward: path, PropsBackward: props}, true
	}

	_, inFwd := fwd.CameFrom[current]
	_, inBwd := bwd.CameFrom[current]
	isFwdOrigin := current == fwd.origin
	isBwdOrigin := current == bwd.origin

	if (inFwd || isFwdOrigin) && (inBwd || isBwdOrigin) {
		fPath, fProps := fwd.ReconstructPath(fwd.origin, current)
		bPath, bProps := bwd.ReconstructPath(bwd.origin, current)
		return Result{
			PathForward:   fPath,
			PropsForward:  fProps,
			PathBackward:  bPath,
			PropsBackward: bProps,
		}, true
	}

	return Result{}, false
}

func containsEID(path []graph.EID, e graph.EID) bool {
	for _, p := range path {
		if p == e {
			return true
		}
	}
	return false
}

// serialize renders the final path as Turtle, per spec §6.
func serialize(r Result, store Store) string {
	full := r.FullPath()
	props := fullProps(r)
	if len(full) == 0 {
		return ""
	}
	return rdf.Serialize(full, props, store)
}

// fullProps composes the forward and backward property lists the same way
// FullPath composes the entity lists.
func fullProps(r Result) []graph.PID {
	switch {
	case len(r.PropsBackward) == 0:
		return r.PropsForward
	case len(r.PropsForward) == 0:
		reversed := make([]graph.PID, len(r.PropsBackward))
		for i, p := range r.PropsBackward {
			reversed[len(r.PropsBackward)-1-i] = p
		}
		return reversed
	default:
		reversedTail := make([]graph.PID, len(r.PropsBackward))
		for i := range r.PropsBackward {
			reversedTail[i] = r.PropsBackward[len(r.PropsBackward)-1-i]
		}
		return append(append([]graph.PID{}, r.PropsForward...), reversedTail...)
	}
}
