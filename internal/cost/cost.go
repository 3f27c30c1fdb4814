// Package cost implements the pathfinder's composite cost function: a pure,
// I/O-free blend of mean semantic distance, path length, and a heuristic
// distance-to-target, encoded as a monotonic integer for the search
// frontier's priority queue.
package cost

import (
	"strconv"

	"github.com/kraklabs/bipass-pathfinder/internal/errors"
	"github.com/kraklabs/bipass-pathfinder/internal/graph"
)

// offsetAdded is the fixed offset added to the real-valued cost before
// integer encoding: a cost in [0, 99_999) becomes a shifted value in
// [C, 99_999+C), whose integer part always has six digits (100000-199999).
const offsetAdded = 100_000.000_001

// maxCost is the upper (exclusive) bound on a valid real-valued cost, per
// the assertion in the cost function's contract.
const maxCost = 99_999.0

// minEncoded is the minimum value a correctly encoded cost may take.
const minEncoded int64 = 100_000_000_000

// Weights holds the three non-negative tuning coefficients blended into the
// cost: alpha weights mean semantic distance to the directional target,
// beta weights path length, gamma weights the heuristic distance from the
// path's last entity to the directional target.
type Weights struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

// DistanceFunc returns the semantic distance between two entities, as
// sourced from the Store's GetSemanticDistance. Cost is deliberately
// decoupled from any concrete store implementation.
type DistanceFunc func(a, b graph.EID) (float64, error)

// Compute evaluates the composite cost of extending path toward source or
// target (whichever is not path's origin), returning the 12-digit encoded
// priority key. path must have length >= 1.
func Compute(source, target graph.EID, path []graph.EID, w Weights, dist DistanceFunc) (int64, error) {
	if len(path) == 0 {
		return 0, errors.MalformedPathError("cost function called with an empty path")
	}

	var directionalTarget graph.EID
	switch path[0] {
	case source:
		directionalTarget = target
	case target:
		directionalTarget = source
	default:
		return 0, errors.MalformedPathError(
			"path origin is neither source nor target: " + string(path[0]))
	}

	prefix := path[:len(path)-1]

	g1 := 0.0
	if w.Alpha != 0 && len(prefix) > 0 {
		sum := 0.0
		for _, e := range prefix {
			d, err := dist(e, directionalTarget)
			if err != nil {
				return 0, err
			}
			sum += d
		}
		g1 = w.Alpha * (sum / float64(len(prefix)))
	}

	g2 := w.Beta * float64(len(path)-1)

	h := 0.0
	if w.Gamma != 0 {
		d, err := dist(path[len(path)-1], directionalTarget)
		if err != nil {
			return 0, err
		}
		h = w.Gamma * d
	}

	total := g1 + g2 + h
	if total < 0 || total >= maxCost {
		return 0, errors.CostOutOfRangeError(
			"computed cost out of range: " + strconv.FormatFloat(total, 'f', -1, 64))
	}

	return encode(total)
}

// encode maps a real cost in [0, 99_999) to a monotonic 12-digit integer:
// add the fixed offset, render the decimal expansion without its point,
// truncate (left-aligned) to 12 characters, and parse as an integer. The
// ordering of the truncated decimal string dominates the float ordering
// given the bounded input range.
func encode(costVal float64) (int64, error) {
	shifted := costVal + offsetAdded

	// Six integer digits (100000-199999) plus 6 decimal places give exactly
	// 12 digits, so the 12-character truncation below keeps every digit.
	rendered := strconv.FormatFloat(shifted, 'f', 6, 64)

	digits := make([]byte, 0, len(rendered))
	for i := 0; i < len(rendered); i++ {
		if rendered[i] != '.' {
			digits = append(digits, rendered[i])
		}
	}

	if len(digits) > 12 {
		digits = digits[:12]
	}

	encoded, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, errors.InternalError("failed to parse encoded cost", err)
	}

	if encoded < minEncoded {
		return 0, errors.CostOutOfRangeError(
			"encoded cost below minimum: " + strconv.FormatInt(encoded, 10))
	}

	return encoded, nil
}
