// Package rdf renders a discovered entity path as Turtle, using the
// prefixes and triple shape spec §6 specifies for serialized output.
package rdf

import (
	"fmt"
	"strings"

	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// LabelSource supplies the human-readable labels the serializer embeds as
// rdfs:label triples alongside the wdt: edges, for both the entity
// subjects and the properties used as predicates.
type LabelSource interface {
	GetLabel(entity graph.EID) string
	GetDescription(entity graph.EID) string
	GetPropLabel(prop graph.PID) string
	GetPropDescription(prop graph.PID) string
}

const (
	prefixBlock = `@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix schema: <http://schema.org/> .
@prefix wd: <http://www.wikidata.org/entity/> .
@prefix wdt: <http://www.wikidata.org/prop/direct/> .

`
)

// Serialize renders path (a sequence of n entities) connected by props (the
// n-1 properties between consecutive entities) as Turtle. path and props
// must satisfy len(path) == len(props)+1; a path of length 1 (no edges, a
// degenerate source==target match) serializes as a single entity's label
// and description triples.
func Serialize(path []graph.EID, props []graph.PID, src LabelSource) string {
	var b strings.Builder
	b.WriteString(prefixBlock)

	for _, e := range path {
		writeEntityTriples(&b, e, src)
	}

	seenProps := make(map[graph.PID]struct{}, len(props))
	for _, p := range props {
		if _, ok := seenProps[p]; ok {
			continue
		}
		seenProps[p] = struct{}{}
		writePropTriples(&b, p, src)
	}

	for i, p := range props {
		if i+1 >= len(path) {
			break
		}
		fmt.Fprintf(&b, "wd:%s wdt:%s wd:%s .\n", path[i], p, path[i+1])
	}

	return b.String()
}

func writeEntityTriples(b *strings.Builder, e graph.EID, src LabelSource) {
	label := src.GetLabel(e)
	desc := src.GetDescription(e)

	fmt.Fprintf(b, "wd:%s rdf:type schema:Thing .\n", e)
	if label != "" {
		fmt.Fprintf(b, "wd:%s rdfs:label %s .\n", e, quote(label))
	}
	if desc != "" {
		fmt.Fprintf(b, "wd:%s schema:description %s .\n", e, quote(desc))
	}
}

// writePropTriples emits the label/description triples for one unique
// property used as a predicate in the path, per spec §6's "label and
// description triples for every subject and every unique property."
func writePropTriples(b *strings.Builder, p graph.PID, src LabelSource) {
	label := src.GetPropLabel(p)
	desc := src.GetPropDescription(p)

	if label != "" {
		fmt.Fprintf(b, "wdt:%s rdfs:label %s .\n", p, quote(label))
	}
	if desc != "" {
		fmt.Fprintf(b, "wdt:%s schema:description %s .\n", p, quote(desc))
	}
}

// quote renders s as a Turtle string literal, escaping backslashes and
// double quotes per the Turtle grammar's STRING_LITERAL_QUOTE production.
func quote(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	return `"` + escaped + `"`
}
