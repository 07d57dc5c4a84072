// Package ranking holds the schika player table and persists it as a
// single JSON document.
package ranking

import (
	"errors"
	"fmt"
)

// Record is one player's entry in the table. Inactive players stay in
// the document but are hidden from rendered output.
type Record struct {
	Score  int  `json:"score"`
	Active bool `json:"active"`
}

// Table maps a lowercase player handle to its record.
type Table map[string]Record

// ErrUnknownPlayer is returned when an operation names a handle that is
// not in the table.
var ErrUnknownPlayer = errors.New("ranking: unknown player")

// Has reports whether the handle is a known player.
func (t Table) Has(id string) bool {
	_, ok := t[id]
	return ok
}

// SetScore inserts or overwrites the record for id with the given score
// and marks it active.
func (t Table) SetScore(id string, score int) {
	t[id] = Record{Score: score, Active: true}
}

// AddResult overwrites the score for id without touching the active
// flag, so match results never unhide a hidden player.
func (t Table) AddResult(id string, score int) error {
	rec, ok := t[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	rec.Score = score
	t[id] = rec
	return nil
}

// SetActive hides or unhides an existing player.
func (t Table) SetActive(id string, active bool) error {
	rec, ok := t[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	rec.Active = active
	t[id] = rec
	return nil
}
