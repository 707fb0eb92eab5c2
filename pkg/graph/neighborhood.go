package graph

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Neighborhood runs a level-synchronous BFS from root over the symmetric adjacency.
// Level k+1 is never fetched before level k has fully resolved. depth 0 yields the root alone.
func (e *Engine) Neighborhood(ctx context.Context, root uuid.UUID, depth int) (*Neighborhood, error) {
	if depth < 0 {
		depth = 0
	}

	ctx, span := tracer.Start(ctx, "graph.Neighborhood")
	defer span.End()
	span.SetAttributes(attribute.String("root", root.String()), attribute.Int("depth", depth))

	visited := map[uuid.UUID]struct{}{root: {}}
	order := []uuid.UUID{root}
	seenEdges := make(map[Edge]struct{})
	edges := []Edge{}

	frontier := []uuid.UUID{root}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		adjacent, err := e.expandLevel(ctx, frontier)
		if err != nil {
			return nil, err
		}

		var next []uuid.UUID
		for i := range frontier {
			for _, edge := range adjacent[i].Edges() {
				if _, ok := seenEdges[edge]; ok {
					continue
				}
				seenEdges[edge] = struct{}{}
				edges = append(edges, edge)
			}
			for _, id := range adjacent[i].Neighbors() {
				if _, ok := visited[id]; ok {
					continue
				}
				visited[id] = struct{}{}
				next = append(next, id)
			}
		}

		order = append(order, next...)
		frontier = next
	}

	nodes, err := e.resolveNodes(ctx, order)
	if err != nil {
		return nil, err
	}

	return &Neighborhood{
		Root:    root,
		Depth:   depth,
		NodeIDs: order,
		Nodes:   nodes,
		Edges:   edges,
	}, nil
}

// resolveNodes loads node details in the given order, skipping ids that no longer exist.
func (e *Engine) resolveNodes(ctx context.Context, ids []uuid.UUID) ([]Node, error) {
	found, err := e.store.NodesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]Node, len(found))
	for _, n := range found {
		byID[n.ID] = n
	}

	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}
