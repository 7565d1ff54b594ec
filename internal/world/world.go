// Package world aggregates the stage histories of every application to a role
// into a transition graph for the role's world view.
//
// Nodes are stage positions: APPLIED and the final outcomes are shared by all
// paths, every other stage is keyed by the node that preceded it so branching
// journeys stay apart. Edges count transitions and accumulate elapsed hours.
package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/applytrail/applytrail/internal/models"
)

// ErrUnsorted is returned by Sorted when rows break the required ordering.
var ErrUnsorted = errors.New("world rows are not sorted by application desc, date asc")

// Row is one stage event of one application.
type Row struct {
	ApplicationID int64
	Type          models.StageType
	Date          time.Time
}

// SortedRows holds rows grouped by application (descending id) with each
// application's stages in ascending date order. Build relies on that order and
// never re-sorts, so the only way to obtain SortedRows is through Sorted.
type SortedRows struct {
	rows []Row
}

// Len returns the number of rows.
func (s SortedRows) Len() int { return len(s.rows) }

// Sorted checks that rows are in the order Build requires and wraps them.
// Sorting itself belongs to the query that produced the rows.
func Sorted(rows []Row) (SortedRows, error) {
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]

		switch {
		case cur.ApplicationID > prev.ApplicationID:
			return SortedRows{}, fmt.Errorf("%w: application %d follows %d at row %d",
				ErrUnsorted, cur.ApplicationID, prev.ApplicationID, i)
		case cur.ApplicationID == prev.ApplicationID && cur.Date.Before(prev.Date):
			return SortedRows{}, fmt.Errorf("%w: application %d goes back in time at row %d",
				ErrUnsorted, cur.ApplicationID, i)
		}
	}

	return SortedRows{rows: rows}, nil
}

// NodeID returns the graph node for a stage of type t reached from previous.
func NodeID(t models.StageType, previous string) string {
	if t.IsAnchor() {
		return string(t)
	}

	return string(t) + ":" + previous
}

type edgeKey struct {
	source, dest string
}

// Build walks the rows once and returns the aggregated graph. Nodes and edges
// appear in the order they are first seen, so equal input gives equal output.
func Build(rows SortedRows) models.WorldGraph {
	var (
		nodes     = make([]string, 0)
		seenNodes = make(map[string]struct{})
		edges     = make([]models.WorldEdge, 0)
		edgeIndex = make(map[edgeKey]int)

		started       bool
		previousAppID int64
		lastNodeID    string
		prevDate      time.Time
	)

	addNode := func(id string) {
		if _, ok := seenNodes[id]; ok {
			return
		}

		seenNodes[id] = struct{}{}
		nodes = append(nodes, id)
	}

	for _, row := range rows.rows {
		if !started || row.ApplicationID != previousAppID {
			started = true
			previousAppID = row.ApplicationID
			prevDate = row.Date
			lastNodeID = string(row.Type)
			addNode(lastNodeID)

			continue
		}

		elapsedHours := float64(row.Date.Sub(prevDate).Milliseconds()) / float64(time.Hour/time.Millisecond)
		currentNodeID := NodeID(row.Type, lastNodeID)

		key := edgeKey{source: lastNodeID, dest: currentNodeID}
		i, ok := edgeIndex[key]
		if !ok {
			i = len(edges)
			edgeIndex[key] = i
			edges = append(edges, models.WorldEdge{Source: lastNodeID, Dest: currentNodeID})
		}

		edges[i].UserCount++
		edges[i].TotalNumHours += elapsedHours
		addNode(currentNodeID)

		prevDate = row.Date
		lastNodeID = currentNodeID
	}

	return models.WorldGraph{Nodes: nodes, Edges: edges}
}

// ApplicationCount returns the number of distinct applications in rows.
func ApplicationCount(rows SortedRows) int {
	count := 0
	for i, row := range rows.rows {
		if i == 0 || row.ApplicationID != rows.rows[i-1].ApplicationID {
			count++
		}
	}

	return count
}
