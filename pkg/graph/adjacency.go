package graph

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Adjacent holds the links touching one node, in discovery order.
type Adjacent struct {
	Outgoing []Edge // ascending by target
	Incoming []Edge // ascending by source
}

// Neighbors lists outgoing targets then incoming sources. Duplicates and the node itself may appear.
func (a Adjacent) Neighbors() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.Outgoing)+len(a.Incoming))
	for _, e := range a.Outgoing {
		ids = append(ids, e.Target)
	}
	for _, e := range a.Incoming {
		ids = append(ids, e.Source)
	}
	return ids
}

func (a Adjacent) Edges() []Edge {
	edges := make([]Edge, 0, len(a.Outgoing)+len(a.Incoming))
	edges = append(edges, a.Outgoing...)
	return append(edges, a.Incoming...)
}

// SymmetricAdjacency answers "who is connected to this node" over a directed store.
type SymmetricAdjacency struct {
	store Store
}

func NewSymmetricAdjacency(store Store) *SymmetricAdjacency {
	return &SymmetricAdjacency{store: store}
}

func (s *SymmetricAdjacency) Of(ctx context.Context, id uuid.UUID) (Adjacent, error) {
	outgoing, err := s.store.EdgesFrom(ctx, id)
	if err != nil {
		return Adjacent{}, fmt.Errorf("outgoing links of %s: %w", id, err)
	}
	incoming, err := s.store.EdgesTo(ctx, id)
	if err != nil {
		return Adjacent{}, fmt.Errorf("incoming links of %s: %w", id, err)
	}

	sort.SliceStable(outgoing, func(i, j int) bool {
		return compareIDs(outgoing[i].Target, outgoing[j].Target) < 0
	})
	sort.SliceStable(incoming, func(i, j int) bool {
		return compareIDs(incoming[i].Source, incoming[j].Source) < 0
	})

	return Adjacent{Outgoing: outgoing, Incoming: incoming}, nil
}

// compareIDs orders ids the same way their canonical string form sorts.
func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
