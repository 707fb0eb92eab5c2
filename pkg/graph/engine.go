package graph

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultFetchConcurrency = 8
	MostConnectedLimit      = 5
)

var tracer = otel.Tracer("notegraph-be/pkg/graph")

type Engine struct {
	store            Store
	adjacency        *SymmetricAdjacency
	fetchConcurrency int
}

type Option func(*Engine)

// WithFetchConcurrency bounds how many nodes of one BFS level are expanded at once.
func WithFetchConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.fetchConcurrency = n
		}
	}
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:            store,
		adjacency:        NewSymmetricAdjacency(store),
		fetchConcurrency: DefaultFetchConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Global returns every note and every link, unfiltered.
func (e *Engine) Global(ctx context.Context) (*Graph, error) {
	ctx, span := tracer.Start(ctx, "graph.Global")
	defer span.End()

	var (
		nodes []Node
		edges []Edge
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nodes, err = e.store.ListNodes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		edges, err = e.store.ListEdges(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if nodes == nil {
		nodes = []Node{}
	}
	if edges == nil {
		edges = []Edge{}
	}
	return &Graph{Nodes: nodes, Edges: edges}, nil
}

// expandLevel fetches the adjacency of every frontier node concurrently and returns
// the results indexed like the frontier, so merging does not depend on completion order.
func (e *Engine) expandLevel(ctx context.Context, frontier []uuid.UUID) ([]Adjacent, error) {
	results := make([]Adjacent, len(frontier))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.fetchConcurrency)
	for i, id := range frontier {
		i, id := i, id
		g.Go(func() error {
			adj, err := e.adjacency.Of(gctx, id)
			if err != nil {
				return err
			}
			results[i] = adj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
