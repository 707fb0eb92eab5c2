package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notegraph-be/internal/constant"
	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/apperror"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/internal/repository/specification"
	"notegraph-be/internal/repository/unitofwork"
	"notegraph-be/pkg/llm"
	ragcontext "notegraph-be/pkg/rag/context"
	"notegraph-be/pkg/rag/prompt"
	"notegraph-be/pkg/rag/response"
	"notegraph-be/pkg/search"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var aiTracer = otel.Tracer("notegraph-be/internal/service/ai")

type IAIService interface {
	AnswerQuestion(ctx context.Context, question string) (*dto.ChatResponse, error)
	SuggestLinks(ctx context.Context, noteId uuid.UUID) ([]dto.LinkSuggestion, error)
	GenerateTags(ctx context.Context, content string) ([]string, error)
	ImproveWriting(ctx context.Context, content string) (string, error)
	GenerateSummary(ctx context.Context, content string) (string, error)
}

type aiService struct {
	uowFactory    unitofwork.RepositoryFactory
	searchService ISearchService
	fetcher       *ragcontext.Fetcher
	llmProvider   llm.LLMProvider
	llmTimeout    time.Duration
	logger        logger.ILogger
}

func NewAIService(
	uowFactory unitofwork.RepositoryFactory,
	searchService ISearchService,
	llmProvider llm.LLMProvider,
	llmTimeout time.Duration,
	log logger.ILogger,
) IAIService {
	return &aiService{
		uowFactory:    uowFactory,
		searchService: searchService,
		fetcher:       ragcontext.NewFetcher(&noteLoader{uowFactory: uowFactory}, ragcontext.DefaultFanOut),
		llmProvider:   llmProvider,
		llmTimeout:    llmTimeout,
		logger:        log,
	}
}

// AnswerQuestion grounds a completion in the top ranked notes. With no hits the
// model still runs, on an empty context.
func (s *aiService) AnswerQuestion(ctx context.Context, question string) (*dto.ChatResponse, error) {
	ctx, span := aiTracer.Start(ctx, "rag.AnswerQuestion")
	defer span.End()

	hits, err := s.searchService.SearchNotes(ctx, question, search.Filters{SortBy: search.SortRelevance})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ranked := make([]uuid.UUID, 0, ragcontext.DefaultFanOut)
	for _, h := range hits {
		if len(ranked) == ragcontext.DefaultFanOut {
			break
		}
		ranked = append(ranked, h.Id)
	}

	notes, err := s.fetcher.FetchRanked(ctx, ranked)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("rag.hits", len(hits)), attribute.Int("rag.grounded", len(notes)))

	answer, err := s.complete(ctx, prompt.BuildAnswerMessages(ragcontext.Assemble(notes), question))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		answer = constant.ChatFallbackAnswer
	}

	sources := make([]dto.SourceNote, 0, len(notes))
	for _, n := range notes {
		sources = append(sources, dto.SourceNote{Id: n.ID, Title: n.Title})
	}

	return &dto.ChatResponse{Answer: answer, SourceNotes: sources}, nil
}

// SuggestLinks queries the index with the note's own content. A missing note yields no suggestions.
func (s *aiService) SuggestLinks(ctx context.Context, noteId uuid.UUID) ([]dto.LinkSuggestion, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return []dto.LinkSuggestion{}, nil
	}

	hits, err := s.searchService.SearchNotes(ctx, note.Content, search.Filters{SortBy: search.SortRelevance})
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.LinkSuggestion, 0, constant.SuggestLinkLimit)
	for _, h := range hits {
		if h.Id == noteId {
			continue
		}
		suggestions = append(suggestions, dto.LinkSuggestion{
			Id:     h.Id,
			Title:  h.Title,
			Reason: constant.SuggestLinkReason,
		})
		if len(suggestions) == constant.SuggestLinkLimit {
			break
		}
	}
	return suggestions, nil
}

// GenerateTags never fails on unusable model output; it returns no tags instead.
func (s *aiService) GenerateTags(ctx context.Context, content string) ([]string, error) {
	raw, err := s.complete(ctx,
		prompt.BuildSingleShot(constant.TagsSystemPrompt, constant.TagsUserPrompt, content),
		llm.WithJSONMode(),
	)
	if err != nil {
		return nil, err
	}

	tags := response.ParseTags(raw)
	if len(tags) == 0 && strings.TrimSpace(raw) != "" {
		s.logger.Warn("AI_SERVICE", "Model returned no usable tags", map[string]interface{}{
			"output_length": len(raw),
		})
	}
	return tags, nil
}

func (s *aiService) ImproveWriting(ctx context.Context, content string) (string, error) {
	out, err := s.complete(ctx, prompt.BuildSingleShot(constant.ImproveSystemPrompt, constant.ImproveUserPrompt, content))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return content, nil
	}
	return out, nil
}

func (s *aiService) GenerateSummary(ctx context.Context, content string) (string, error) {
	return s.complete(ctx, prompt.BuildSingleShot(constant.SummarySystemPrompt, constant.SummaryUserPrompt, content))
}

func (s *aiService) complete(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	if s.llmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.llmTimeout)
		defer cancel()
	}

	out, err := s.llmProvider.Chat(ctx, messages, opts...)
	if err != nil {
		s.logger.Error("AI_SERVICE", "LLM completion failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", apperror.ErrLLMFailure, err)
	}
	return out, nil
}

// noteLoader reads grounding notes straight from the store.
type noteLoader struct {
	uowFactory unitofwork.RepositoryFactory
}

func (l *noteLoader) LoadNote(ctx context.Context, id uuid.UUID) (*ragcontext.NoteContent, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNotFound
	}
	return &ragcontext.NoteContent{ID: note.Id, Title: note.Title, Content: note.Content}, nil
}
