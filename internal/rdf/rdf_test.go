package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

type fixtureLabels struct {
	labels     map[graph.EID]string
	descs      map[graph.EID]string
	propLabels map[graph.PID]string
	propDescs  map[graph.PID]string
}

func (f fixtureLabels) GetLabel(e graph.EID) string       { return f.labels[e] }
func (f fixtureLabels) GetDescription(e graph.EID) string { return f.descs[e] }
func (f fixtureLabels) GetPropLabel(p graph.PID) string   { return f.propLabels[p] }
func (f fixtureLabels) GetPropDescription(p graph.PID) string {
	return f.propDescs[p]
}

func TestSerialize_IncludesPrefixBlock(t *testing.T) {
	out := Serialize(nil, nil, fixtureLabels{})

	assert.Contains(t, out, "@prefix wd:")
	assert.Contains(t, out, "@prefix wdt:")
	assert.Contains(t, out, "@prefix rdfs:")
	assert.Contains(t, out, "@prefix schema:")
}

func TestSerialize_SingleHop_EmitsEdgeAndLabels(t *testing.T) {
	src := fixtureLabels{
		labels:     map[graph.EID]string{"Q42": "Douglas Adams", "Q5": "human"},
		descs:      map[graph.EID]string{"Q42": "writer"},
		propLabels: map[graph.PID]string{"P31": "instance of"},
		propDescs:  map[graph.PID]string{"P31": "that class of which this subject is a particular example"},
	}

	out := Serialize([]graph.EID{"Q42", "Q5"}, []graph.PID{"P31"}, src)

	assert.Contains(t, out, "wd:Q42 wdt:P31 wd:Q5 .")
	assert.Contains(t, out, `wd:Q42 rdfs:label "Douglas Adams" .`)
	assert.Contains(t, out, `wd:Q42 schema:description "writer" .`)
	assert.Contains(t, out, "wd:Q5 rdfs:label \"human\" .")
	assert.Contains(t, out, `wdt:P31 rdfs:label "instance of" .`)
	assert.Contains(t, out, `wdt:P31 schema:description "that class of which this subject is a particular example" .`)
}

func TestSerialize_RepeatedProperty_EmitsLabelOnce(t *testing.T) {
	src := fixtureLabels{
		propLabels: map[graph.PID]string{"P31": "instance of"},
	}

	out := Serialize(
		[]graph.EID{"Q1", "Q2", "Q3"},
		[]graph.PID{"P31", "P31"},
		src,
	)

	assert.Equal(t, 1, strings.Count(out, `wdt:P31 rdfs:label "instance of" .`))
}

func TestSerialize_PropertyWithNoLabel_EmitsNoPropertyTriple(t *testing.T) {
	out := Serialize([]graph.EID{"Q1", "Q2"}, []graph.PID{"P31"}, fixtureLabels{})

	assert.NotContains(t, out, "wdt:P31 rdfs:label")
	assert.NotContains(t, out, "wdt:P31 schema:description")
}

func TestSerialize_MultiHop_EmitsAllEdgesInOrder(t *testing.T) {
	out := Serialize(
		[]graph.EID{"Q1", "Q2", "Q3"},
		[]graph.PID{"P10", "P20"},
		fixtureLabels{},
	)

	firstEdge := strings.Index(out, "wd:Q1 wdt:P10 wd:Q2 .")
	secondEdge := strings.Index(out, "wd:Q2 wdt:P20 wd:Q3 .")

	assert.GreaterOrEqual(t, firstEdge, 0)
	assert.GreaterOrEqual(t, secondEdge, 0)
	assert.Less(t, firstEdge, secondEdge)
}

func TestSerialize_SingleEntity_NoEdges(t *testing.T) {
	src := fixtureLabels{labels: map[graph.EID]string{"Q42": "Douglas Adams"}}

	out := Serialize([]graph.EID{"Q42"}, nil, src)

	assert.Contains(t, out, `wd:Q42 rdfs:label "Douglas Adams" .`)
	assert.NotContains(t, strings.TrimPrefix(out, prefixBlock), "wdt:")
}

func TestSerialize_EmptyPath_ReturnsOnlyPrefixBlock(t *testing.T) {
	out := Serialize(nil, nil, fixtureLabels{})

	assert.Equal(t, prefixBlock, out)
}

func TestQuote_EscapesQuotesAndBackslashes(t *testing.T) {
	assert.Equal(t, `"a \"quoted\" \\ value"`, quote(`a "quoted" \ value`))
}
