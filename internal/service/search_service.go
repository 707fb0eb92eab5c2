package service

import (
	"context"
	"strings"

	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/pkg/search"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var searchTracer = otel.Tracer("notegraph-be/internal/service/search")

type ISearchService interface {
	// Search serves user queries; slash commands in the text become filters.
	Search(ctx context.Context, req *dto.SearchNotesRequest) ([]*dto.RetrievedExcerpt, error)
	// SearchNotes runs query verbatim against the index. A blank query matches nothing.
	SearchNotes(ctx context.Context, query string, filters search.Filters) ([]*dto.RetrievedExcerpt, error)
	ConsistencyLog(level string, limit, offset int) ([]dto.ConsistencyLogEntry, error)
}

type searchService struct {
	index          search.Index
	logger         logger.ILogger
	consistencyLog logger.ILogger
}

func NewSearchService(index search.Index, log logger.ILogger, consistencyLog logger.ILogger) ISearchService {
	return &searchService{
		index:          index,
		logger:         log,
		consistencyLog: consistencyLog,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchNotesRequest) ([]*dto.RetrievedExcerpt, error) {
	inline := search.ParseQuery(req.Query)
	filters := search.Filters{
		Type:   req.Type,
		Tags:   req.Tags,
		SortBy: search.ParseSortBy(req.SortBy),
	}.Merge(inline)

	return s.SearchNotes(ctx, inline.SearchQuery, filters)
}

func (s *searchService) SearchNotes(ctx context.Context, query string, filters search.Filters) ([]*dto.RetrievedExcerpt, error) {
	if strings.TrimSpace(query) == "" {
		return []*dto.RetrievedExcerpt{}, nil
	}

	ctx, span := searchTracer.Start(ctx, "search.SearchNotes")
	defer span.End()
	span.SetAttributes(
		attribute.String("search.type", filters.Type),
		attribute.Int("search.tags", len(filters.Tags)),
		attribute.String("search.sort", string(filters.SortBy)),
	)

	result, err := s.index.Query(ctx, search.BuildNoteQuery(query, filters))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	excerpts := make([]*dto.RetrievedExcerpt, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ex := search.ToExcerpt(hit)
		id, err := uuid.Parse(ex.ID)
		if err != nil {
			s.logger.Warn("SEARCH_SERVICE", "Skipping hit with foreign id", map[string]interface{}{"id": ex.ID})
			continue
		}
		excerpts = append(excerpts, &dto.RetrievedExcerpt{
			Id:        id,
			Title:     ex.Title,
			Excerpt:   ex.Text,
			Tags:      ex.Tags,
			Score:     ex.Score,
			UpdatedAt: ex.UpdatedAt,
		})
	}
	span.SetAttributes(attribute.Int("search.hits", len(excerpts)))
	return excerpts, nil
}

func (s *searchService) ConsistencyLog(level string, limit, offset int) ([]dto.ConsistencyLogEntry, error) {
	entries, err := s.consistencyLog.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}
	res := make([]dto.ConsistencyLogEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, dto.ConsistencyLogEntry{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Message:   e.Message,
			Details:   e.Details,
		})
	}
	return res, nil
}
