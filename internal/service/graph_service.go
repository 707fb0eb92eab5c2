package service

import (
	"context"
	"fmt"

	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/apperror"
	"notegraph-be/pkg/graph"

	"github.com/google/uuid"
)

type IGraphService interface {
	Global(ctx context.Context) (*dto.GraphResponse, error)
	Local(ctx context.Context, rootId uuid.UUID, depth *int) (*dto.LocalGraphResponse, error)
	ShortestPath(ctx context.Context, fromId, toId uuid.UUID) (*dto.ShortestPathResponse, error)
	Stats(ctx context.Context) (*dto.GraphStatsResponse, error)
}

type graphService struct {
	engine       *graph.Engine
	defaultDepth int
	maxDepth     int
}

func NewGraphService(engine *graph.Engine, defaultDepth, maxDepth int) IGraphService {
	return &graphService{
		engine:       engine,
		defaultDepth: defaultDepth,
		maxDepth:     maxDepth,
	}
}

func (s *graphService) Global(ctx context.Context) (*dto.GraphResponse, error) {
	g, err := s.engine.Global(ctx)
	if err != nil {
		return nil, err
	}
	res := toGraphResponse(g.Nodes, g.Edges)
	return &res, nil
}

// Local uses the configured default when depth is nil. Depths above the ceiling are rejected.
func (s *graphService) Local(ctx context.Context, rootId uuid.UUID, depth *int) (*dto.LocalGraphResponse, error) {
	d := s.defaultDepth
	if depth != nil {
		d = *depth
	}
	if d < 0 {
		d = 0
	}
	if s.maxDepth > 0 && d > s.maxDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds maximum %d", apperror.ErrInvalidInput, d, s.maxDepth)
	}

	n, err := s.engine.Neighborhood(ctx, rootId, d)
	if err != nil {
		return nil, err
	}
	return &dto.LocalGraphResponse{
		RootId:        n.Root,
		Depth:         n.Depth,
		GraphResponse: toGraphResponse(n.Nodes, n.Edges),
	}, nil
}

func (s *graphService) ShortestPath(ctx context.Context, fromId, toId uuid.UUID) (*dto.ShortestPathResponse, error) {
	path, err := s.engine.ShortestPath(ctx, fromId, toId)
	if err != nil {
		return nil, err
	}
	if path == nil {
		path = []uuid.UUID{}
	}
	return &dto.ShortestPathResponse{Path: path}, nil
}

func (s *graphService) Stats(ctx context.Context) (*dto.GraphStatsResponse, error) {
	st, err := s.engine.Stats(ctx)
	if err != nil {
		return nil, err
	}
	top := make([]dto.ConnectedNote, 0, len(st.MostConnected))
	for _, c := range st.MostConnected {
		top = append(top, dto.ConnectedNote{Id: c.ID, Title: c.Title, Connections: c.Connections})
	}
	return &dto.GraphStatsResponse{
		TotalNotes:      st.TotalNotes,
		TotalLinks:      st.TotalLinks,
		AvgLinksPerNote: st.AvgLinksPerNote,
		MostConnected:   top,
	}, nil
}

func toGraphResponse(nodes []graph.Node, edges []graph.Edge) dto.GraphResponse {
	res := dto.GraphResponse{
		Nodes: make([]dto.GraphNode, 0, len(nodes)),
		Links: make([]dto.GraphLink, 0, len(edges)),
	}
	for _, n := range nodes {
		res.Nodes = append(res.Nodes, dto.GraphNode{Id: n.ID, Label: n.Label, Type: n.Type, Tags: n.Tags})
	}
	for _, e := range edges {
		res.Links = append(res.Links, dto.GraphLink{Source: e.Source, Target: e.Target})
	}
	return res
}
