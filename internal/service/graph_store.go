package service

import (
	"context"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/repository/specification"
	"notegraph-be/internal/repository/unitofwork"
	"notegraph-be/pkg/graph"

	"github.com/google/uuid"
)

// graphStore exposes the note/link repositories as the graph engine's read port.
// Every call opens its own unit of work; reads are not transactional.
type graphStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGraphStore(uowFactory unitofwork.RepositoryFactory) graph.Store {
	return &graphStore{uowFactory: uowFactory}
}

func (s *graphStore) ListNodes(ctx context.Context) ([]graph.Node, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.OrderBy{Field: "created_at"})
	if err != nil {
		return nil, err
	}
	return toGraphNodes(notes), nil
}

func (s *graphStore) NodesByIDs(ctx context.Context, ids []uuid.UUID) ([]graph.Node, error) {
	if len(ids) == 0 {
		return []graph.Node{}, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	return toGraphNodes(notes), nil
}

func (s *graphStore) ListEdges(ctx context.Context) ([]graph.Edge, error) {
	return s.edges(ctx)
}

func (s *graphStore) EdgesFrom(ctx context.Context, id uuid.UUID) ([]graph.Edge, error) {
	return s.edges(ctx, specification.BySourceID{SourceID: id})
}

func (s *graphStore) EdgesTo(ctx context.Context, id uuid.UUID) ([]graph.Edge, error) {
	return s.edges(ctx, specification.ByTargetID{TargetID: id})
}

func (s *graphStore) CountNodes(ctx context.Context) (int64, error) {
	return s.uowFactory.NewUnitOfWork(ctx).NoteRepository().Count(ctx)
}

func (s *graphStore) CountEdges(ctx context.Context) (int64, error) {
	return s.uowFactory.NewUnitOfWork(ctx).NoteLinkRepository().Count(ctx)
}

func (s *graphStore) edges(ctx context.Context, specs ...specification.Specification) ([]graph.Edge, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	links, err := uow.NoteLinkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	edges := make([]graph.Edge, 0, len(links))
	for _, l := range links {
		edges = append(edges, graph.Edge{Source: l.SourceId, Target: l.TargetId})
	}
	return edges, nil
}

func toGraphNodes(notes []*entity.Note) []graph.Node {
	nodes := make([]graph.Node, 0, len(notes))
	for _, n := range notes {
		tags := n.Tags
		if tags == nil {
			tags = []string{}
		}
		nodes = append(nodes, graph.Node{ID: n.Id, Label: n.Title, Type: string(n.Type), Tags: tags})
	}
	return nodes
}
