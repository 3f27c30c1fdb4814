package harness

import (
	"fmt"

	"github.com/kraklabs/bipass-pathfinder/internal/cost"
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
	"github.com/kraklabs/bipass-pathfinder/internal/output"
	"github.com/kraklabs/bipass-pathfinder/internal/pathfinder"
)

// PlaygroundQuery is one built-in demo query, named after its scenario
// label for readable output.
type PlaygroundQuery struct {
	Label       string
	Source      graph.EID
	Target      graph.EID
	Weights     cost.Weights
	EntityLimit int
}

// fixtureGraphStore backs the playground's demo queries with a small
// hand-built Wikidata-shaped graph, avoiding any network dependency.
type fixtureGraphStore struct {
	adjacency  map[graph.EID]graph.Adjacency
	labels     map[graph.EID]string
	propLabels map[graph.PID]string
}

func (s *fixtureGraphStore) GetAdjacentEntities(e graph.EID) (graph.Adjacency, error) {
	return s.adjacency[e], nil
}

func (s *fixtureGraphStore) GetSemanticDistance(a, b graph.EID) (float64, error) {
	return 0.3, nil
}

func (s *fixtureGraphStore) GetLabel(e graph.EID) string { return s.labels[e] }

func (s *fixtureGraphStore) GetDescription(e graph.EID) string { return "" }

func (s *fixtureGraphStore) GetPropLabel(p graph.PID) string { return s.propLabels[p] }

func (s *fixtureGraphStore) GetPropDescription(p graph.PID) string { return "" }

func addBidirectionalEdge(adj map[graph.EID]graph.Adjacency, prop graph.PID, a, b graph.EID) {
	adj[a] = append(adj[a], graph.Edge{Prop: prop, To: b})
	adj[b] = append(adj[b], graph.Edge{Prop: prop, To: a})
}

// NewPlaygroundStore builds the fixture graph the spec's end-to-end
// scenario table (S1-S6) is defined over.
func NewPlaygroundStore() pathfinder.Store {
	adj := map[graph.EID]graph.Adjacency{}

	addBidirectionalEdge(adj, "P31", "Q42", "Q5") // S1/S2: direct edge

	addBidirectionalEdge(adj, "P106", "Q42", "Q18844224") // S3: Q42 -> mid -> Q762
	addBidirectionalEdge(adj, "P106", "Q18844224", "Q762")

	addBidirectionalEdge(adj, "P106", "Q42", "Q36180") // S4: Q42 -> a -> b -> Q389908
	addBidirectionalEdge(adj, "P106", "Q36180", "Q6625963")
	addBidirectionalEdge(adj, "P106", "Q6625963", "Q389908")

	addBidirectionalEdge(adj, "P69", "Q376657", "Q49112") // S5
	addBidirectionalEdge(adj, "P69", "Q49112", "Q1951366")

	return &fixtureGraphStore{
		adjacency: adj,
		labels: map[graph.EID]string{
			"Q42":      "Douglas Adams",
			"Q5":       "human",
			"Q762":     "scientist",
			"Q389908":  "lexicographer",
			"Q376657":  "Immanuel Kant",
			"Q1951366": "philosopher",
		},
		propLabels: map[graph.PID]string{
			"P31":  "instance of",
			"P106": "occupation",
			"P69":  "educated at",
		},
	}
}

// DefaultPlaygroundQueries is the S1-S6 demo set.
func DefaultPlaygroundQueries() []PlaygroundQuery {
	w := cost.Weights{Alpha: 0.23, Beta: 0.028, Gamma: 0.59}
	return []PlaygroundQuery{
		{Label: "S1", Source: "Q42", Target: "Q5", Weights: w, EntityLimit: 1000},
		{Label: "S2", Source: "Q5", Target: "Q42", Weights: w, EntityLimit: 1000},
		{Label: "S3", Source: "Q42", Target: "Q762", Weights: w, EntityLimit: 1000},
		{Label: "S4", Source: "Q42", Target: "Q389908", Weights: w, EntityLimit: 1000},
		{Label: "S5", Source: "Q376657", Target: "Q1951366", Weights: w, EntityLimit: 1000},
		{Label: "S6", Source: "Q42", Target: "Q389908", Weights: w, EntityLimit: 1},
	}
}

// RunPlayground executes every query in queries against store, printing
// each result through out.
func RunPlayground(store pathfinder.Store, queries []PlaygroundQuery, out *output.Writer) {
	for _, q := range queries {
		pf := pathfinder.New(store, q.EntityLimit)
		res, err := pf.FindPath(q.Source, q.Target, q.Weights, false)
		if err != nil {
			out.Errorf("%s: %v", q.Label, err)
			continue
		}

		if !res.Found() {
			out.Warningf("%s: no path found (%s -> %s), visited=%d", q.Label, q.Source, q.Target, res.VisitedCount)
			continue
		}

		full := res.FullPath()
		out.Successf("%s: %s (%d hops, visited=%d)", q.Label, renderPath(full, store), len(full)-1, res.VisitedCount)
	}
}

func renderPath(path []graph.EID, store pathfinder.Store) string {
	s := ""
	for i, e := range path {
		if i > 0 {
			s += " -> "
		}
		label := store.GetLabel(e)
		if label == "" {
			label = string(e)
		}
		s += fmt.Sprintf("%s (%s)", e, label)
	}
	return s
}
