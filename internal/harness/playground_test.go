package harness

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/bipass-pathfinder/internal/output"
)

func TestRunPlayground_S1DirectEdge_Succeeds(t *testing.T) {
	store := NewPlaygroundStore()
	var buf bytes.Buffer
	w := output.New(&buf)

	RunPlayground(store, []PlaygroundQuery{DefaultPlaygroundQueries()[0]}, w)

	assert.Contains(t, buf.String(), "S1:")
	assert.Contains(t, buf.String(), "1 hops")
}

func TestRunPlayground_S6EntityLimitOne_ReportsNoPath(t *testing.T) {
	store := NewPlaygroundStore()
	var buf bytes.Buffer
	w := output.New(&buf)

	queries := DefaultPlaygroundQueries()
	s6 := queries[len(queries)-1]
	RunPlayground(store, []PlaygroundQuery{s6}, w)

	assert.Contains(t, buf.String(), "no path found")
}

func TestRunPlayground_AllScenariosRunWithoutError(t *testing.T) {
	store := NewPlaygroundStore()
	var buf bytes.Buffer
	w := output.New(&buf)

	RunPlayground(store, DefaultPlaygroundQueries(), w)

	assert.NotContains(t, buf.String(), "❌")
}
