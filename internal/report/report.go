// Package report summarizes the locations visited during a replay.
package report

import (
	"fmt"
	"io"

	"github.com/gertd/go-pluralize"
	"github.com/rodaine/table"
)

var plural = pluralize.NewClient()

// Visit counts the steps spent at one location.
type Visit struct {
	LocationID int
	Count      int
	FirstStep  int // zero-based index into the id log
}

// VisitCounts tallies ids per location, ordered by first appearance.
func VisitCounts(ids []int) []Visit {
	index := map[int]int{}
	var visits []Visit
	for step, id := range ids {
		i, ok := index[id]
		if !ok {
			i = len(visits)
			index[id] = i
			visits = append(visits, Visit{LocationID: id, FirstStep: step})
		}
		visits[i].Count++
	}
	return visits
}

// WriteVisitTable writes one row per location to w.
func WriteVisitTable(w io.Writer, ids []int) {
	t := table.New("Location", "Visits", "First Step").WithWriter(w)
	for _, v := range VisitCounts(ids) {
		t.AddRow(v.LocationID, v.Count, v.FirstStep)
	}
	t.Print()
}

// Summary describes the size of a replay, e.g. "5 steps across 1 location".
func Summary(ids []int) string {
	locations := len(VisitCounts(ids))
	return fmt.Sprintf("%s across %s",
		plural.Pluralize("step", len(ids), true),
		plural.Pluralize("location", locations, true))
}
