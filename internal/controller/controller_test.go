package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/apperror"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/internal/pkg/serverutils"
	"notegraph-be/internal/service"
	"notegraph-be/pkg/search"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotes struct {
	service.INoteService
	created *dto.CreateNoteRequest
	link    *dto.CreateLinkRequest
}

func (s *stubNotes) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.WriteNoteResponse, error) {
	s.created = req
	return &dto.WriteNoteResponse{Id: uuid.New(), SearchIndexed: false}, nil
}

func (s *stubNotes) Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	return nil, apperror.ErrNotFound
}

func (s *stubNotes) CreateLink(ctx context.Context, req *dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	s.link = req
	return &dto.LinkResponse{SourceId: req.SourceId, TargetId: req.TargetId}, nil
}

type stubSearch struct {
	service.ISearchService
	got *dto.SearchNotesRequest
}

func (s *stubSearch) Search(ctx context.Context, req *dto.SearchNotesRequest) ([]*dto.RetrievedExcerpt, error) {
	s.got = req
	return []*dto.RetrievedExcerpt{}, nil
}

func (s *stubSearch) SearchNotes(ctx context.Context, q string, f search.Filters) ([]*dto.RetrievedExcerpt, error) {
	return nil, nil
}

type stubGraph struct {
	service.IGraphService
	depth *int
}

func (s *stubGraph) Local(ctx context.Context, root uuid.UUID, depth *int) (*dto.LocalGraphResponse, error) {
	s.depth = depth
	return &dto.LocalGraphResponse{RootId: root}, nil
}

type stubAI struct {
	service.IAIService
	err error
}

func (s *stubAI) AnswerQuestion(ctx context.Context, q string) (*dto.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ChatResponse{Answer: "a", SourceNotes: []dto.SourceNote{}}, nil
}

func (s *stubAI) GenerateTags(ctx context.Context, content string) ([]string, error) {
	return []string{"go"}, nil
}

type fixture struct {
	app    *fiber.App
	notes  *stubNotes
	search *stubSearch
	graph  *stubGraph
	ai     *stubAI
}

func newFixture() *fixture {
	f := &fixture{notes: &stubNotes{}, search: &stubSearch{}, graph: &stubGraph{}, ai: &stubAI{}}
	log := logger.NewNopLogger()
	f.app = fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(log)})
	api := f.app.Group("/api")
	guard := serverutils.NewJwtMiddleware("")
	NewNoteController(f.notes).RegisterRoutes(api, guard)
	NewSearchController(f.search, f.notes).RegisterRoutes(api, guard)
	NewGraphController(f.graph, nil).RegisterRoutes(api, guard)
	NewChatController(f.ai, log).RegisterRoutes(api, guard)
	NewAIController(f.ai).RegisterRoutes(api, guard)
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestNoteRoutes(t *testing.T) {
	f := newFixture()

	status, body := f.do(t, http.MethodPost, "/api/note/v1", `{"title":"Raft","tags":["consensus"]}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, false, body["data"].(map[string]interface{})["searchIndexed"])
	assert.Equal(t, []string{"consensus"}, f.notes.created.Tags)

	status, _ = f.do(t, http.MethodPost, "/api/note/v1", `{"content":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = f.do(t, http.MethodGet, "/api/note/v1/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, serverutils.MessageNotFound, body["message"])

	status, _ = f.do(t, http.MethodGet, "/api/note/v1/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	source, target := uuid.New(), uuid.New()
	status, _ = f.do(t, http.MethodPost, "/api/note/v1/"+source.String()+"/links", `{"targetId":"`+target.String()+`"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, source, f.notes.link.SourceId)
	assert.Equal(t, target, f.notes.link.TargetId)
}

func TestSearchRoute(t *testing.T) {
	f := newFixture()

	status, _ := f.do(t, http.MethodGet, "/api/search/v1?q=graph&type=outline&tags[]=a&tags=b&sortBy=date", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "graph", f.search.got.Query)
	assert.Equal(t, "outline", f.search.got.Type)
	assert.Equal(t, []string{"b", "a"}, f.search.got.Tags)
	assert.Equal(t, "date", f.search.got.SortBy)

	status, _ = f.do(t, http.MethodGet, "/api/search/v1?q=x&type=spreadsheet", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGraphLocalDepth(t *testing.T) {
	f := newFixture()
	root := uuid.NewString()

	status, _ := f.do(t, http.MethodGet, "/api/graph/v1/local/"+root, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, f.graph.depth)

	status, _ = f.do(t, http.MethodGet, "/api/graph/v1/local/"+root+"?depth=3", "")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, f.graph.depth)
	assert.Equal(t, 3, *f.graph.depth)

	status, _ = f.do(t, http.MethodGet, "/api/graph/v1/local/"+root+"?depth=deep", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestChatAndAIRoutes(t *testing.T) {
	f := newFixture()

	status, body := f.do(t, http.MethodPost, "/api/chat/v1", `{"question":"why?"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a", body["data"].(map[string]interface{})["answer"])

	f.ai.err = errors.Join(apperror.ErrLLMFailure, errors.New("dial tcp 10.0.0.3:11434"))
	status, body = f.do(t, http.MethodPost, "/api/chat/v1", `{"question":"why?"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, serverutils.MessageInternal, body["message"])

	status, body = f.do(t, http.MethodPost, "/api/ai/v1/tags", `{"content":"go notes"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{"go"}, body["data"].(map[string]interface{})["tags"])

	status, _ = f.do(t, http.MethodPost, "/api/ai/v1/tags", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
