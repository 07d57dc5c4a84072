// Package elo implements the logistic Elo rating update used for the
// schika ranking table.
package elo

import (
	"errors"
	"math"
)

// Outcome codes as they appear on the wire (the "who" parameter).
const (
	Draw       = 0
	FirstWins  = 1
	SecondWins = 2
)

// DefaultK is the maximum number of rating points transferable in one match.
const DefaultK = 16

// ErrInvalidOutcome is returned for outcome codes outside {0, 1, 2}.
var ErrInvalidOutcome = errors.New("elo: invalid outcome code")

// Update computes the new ratings for players x and y after a match.
// The expected score uses the standard base-400 logistic curve. Results
// are rounded half away from zero; before rounding the update is
// zero-sum.
func Update(x, y, outcome, k int) (int, int, error) {
	var sx, sy float64
	switch outcome {
	case Draw:
		sx, sy = 0.5, 0.5
	case FirstWins:
		sx, sy = 1, 0
	case SecondWins:
		sx, sy = 0, 1
	default:
		return 0, 0, ErrInvalidOutcome
	}

	rx := math.Pow(10, float64(x)/400)
	ry := math.Pow(10, float64(y)/400)

	ex := rx / (rx + ry)
	ey := ry / (rx + ry)

	nx := int(math.Round(float64(x) + float64(k)*(sx-ex)))
	ny := int(math.Round(float64(y) + float64(k)*(sy-ey)))
	return nx, ny, nil
}
