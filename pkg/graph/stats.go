package graph

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Stats computes per-note degree (outgoing + incoming) and the global totals.
// Totals are counted independently of the listings, as the store reports them.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	ctx, span := tracer.Start(ctx, "graph.Stats")
	defer span.End()

	var (
		totalNotes int64
		totalLinks int64
		nodes      []Node
		edges      []Edge
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalNotes, err = e.store.CountNodes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalLinks, err = e.store.CountEdges(gctx)
		return err
	})
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

	degrees := make(map[uuid.UUID]int, len(nodes))
	for _, n := range nodes {
		degrees[n.ID] = 0
	}
	for _, edge := range edges {
		if _, ok := degrees[edge.Source]; ok {
			degrees[edge.Source]++
		}
		if _, ok := degrees[edge.Target]; ok {
			degrees[edge.Target]++
		}
	}

	ranked := make([]ConnectedNode, 0, len(nodes))
	for _, n := range nodes {
		ranked = append(ranked, ConnectedNode{ID: n.ID, Title: n.Label, Connections: degrees[n.ID]})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Connections != ranked[j].Connections {
			return ranked[i].Connections > ranked[j].Connections
		}
		return compareIDs(ranked[i].ID, ranked[j].ID) < 0
	})
	if len(ranked) > MostConnectedLimit {
		ranked = ranked[:MostConnectedLimit]
	}

	return &Stats{
		TotalNotes:      totalNotes,
		TotalLinks:      totalLinks,
		AvgLinksPerNote: averageLinks(totalLinks, totalNotes),
		MostConnected:   ranked,
		Degrees:         degrees,
	}, nil
}

func averageLinks(totalLinks, totalNotes int64) float64 {
	if totalNotes == 0 {
		return 0
	}
	return float64(totalLinks) / float64(totalNotes)
}
