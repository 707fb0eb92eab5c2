package graph

import (
	"context"

	"github.com/google/uuid"
)

// ShortestPath returns the node ids from start to end inclusive with the fewest edges,
// or an empty slice when end is unreachable.
//
// Among equally short paths the first one discovered wins: each node enqueues its
// outgoing neighbors (ascending target id) before its incoming ones (ascending source id).
func (e *Engine) ShortestPath(ctx context.Context, start, end uuid.UUID) ([]uuid.UUID, error) {
	if start == end {
		return []uuid.UUID{start}, nil
	}

	ctx, span := tracer.Start(ctx, "graph.ShortestPath")
	defer span.End()

	parent := make(map[uuid.UUID]uuid.UUID)
	visited := map[uuid.UUID]struct{}{start: {}}
	queue := []uuid.UUID{start}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := queue[0]
		queue = queue[1:]

		adj, err := e.adjacency.Of(ctx, current)
		if err != nil {
			return nil, err
		}

		for _, next := range adj.Neighbors() {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			parent[next] = current

			if next == end {
				return tracePath(parent, start, end), nil
			}
			queue = append(queue, next)
		}
	}

	return []uuid.UUID{}, nil
}

func tracePath(parent map[uuid.UUID]uuid.UUID, start, end uuid.UUID) []uuid.UUID {
	path := []uuid.UUID{end}
	for current := end; current != start; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
