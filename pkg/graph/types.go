// Package graph computes neighborhoods, shortest paths and connectivity statistics over the note link graph.
//
// Links are stored directed but every traversal here treats them as undirected: a node's neighbors are the
// targets of its outgoing links followed by the sources of its incoming links.
package graph

import (
	"context"

	"github.com/google/uuid"
)

type Node struct {
	ID    uuid.UUID
	Label string
	Type  string
	Tags  []string
}

// Edge is a directed link as stored.
type Edge struct {
	Source uuid.UUID
	Target uuid.UUID
}

type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Store is the read side of the note/link store the engine traverses.
// Every call is issued per request; nothing is cached between calls.
type Store interface {
	ListNodes(ctx context.Context) ([]Node, error)
	NodesByIDs(ctx context.Context, ids []uuid.UUID) ([]Node, error)
	ListEdges(ctx context.Context) ([]Edge, error)
	EdgesFrom(ctx context.Context, id uuid.UUID) ([]Edge, error)
	EdgesTo(ctx context.Context, id uuid.UUID) ([]Edge, error)
	CountNodes(ctx context.Context) (int64, error)
	CountEdges(ctx context.Context) (int64, error)
}

// Neighborhood is the result of a bounded-depth traversal.
// NodeIDs holds every id reached (root first, then level by level); Nodes holds the ones that still resolve.
type Neighborhood struct {
	Root    uuid.UUID
	Depth   int
	NodeIDs []uuid.UUID
	Nodes   []Node
	Edges   []Edge
}

type ConnectedNode struct {
	ID          uuid.UUID
	Title       string
	Connections int
}

type Stats struct {
	TotalNotes      int64
	TotalLinks      int64
	AvgLinksPerNote float64
	MostConnected   []ConnectedNode
	Degrees         map[uuid.UUID]int
}
