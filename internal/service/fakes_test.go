package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"notegraph-be/internal/entity"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/internal/repository/contract"
	"notegraph-be/internal/repository/specification"
	"notegraph-be/internal/repository/unitofwork"
	"notegraph-be/pkg/events"
	"notegraph-be/pkg/llm"
	"notegraph-be/pkg/search"

	"github.com/google/uuid"
)

// ---- store ----

type linkKey struct{ source, target uuid.UUID }

type fakeDB struct {
	mu    sync.Mutex
	notes map[uuid.UUID]entity.Note
	links map[linkKey]entity.NoteLink
	txs   int
}

func newFakeDB() *fakeDB {
	return &fakeDB{notes: map[uuid.UUID]entity.Note{}, links: map[linkKey]entity.NoteLink{}}
}

func (db *fakeDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{db: db}
}

func (db *fakeDB) note(id uuid.UUID) (entity.Note, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	n, ok := db.notes[id]
	return n, ok
}

func (db *fakeDB) hasLink(source, target uuid.UUID) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.links[linkKey{source, target}]
	return ok
}

type fakeUoW struct {
	db       *fakeDB
	snapshot *fakeDB
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	if u.snapshot != nil {
		return errors.New("transaction already started")
	}
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	snap := newFakeDB()
	for k, v := range u.db.notes {
		snap.notes[k] = v
	}
	for k, v := range u.db.links {
		snap.links[k] = v
	}
	u.snapshot = snap
	u.db.txs++
	return nil
}

func (u *fakeUoW) Commit() error {
	if u.snapshot == nil {
		return errors.New("no transaction to commit")
	}
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	if u.snapshot == nil {
		return errors.New("no transaction to rollback")
	}
	u.db.mu.Lock()
	u.db.notes, u.db.links = u.snapshot.notes, u.snapshot.links
	u.db.mu.Unlock()
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) NoteRepository() contract.NoteRepository         { return &fakeNoteRepo{db: u.db} }
func (u *fakeUoW) NoteLinkRepository() contract.NoteLinkRepository { return &fakeLinkRepo{db: u.db} }

type fakeNoteRepo struct{ db *fakeDB }

func matchNote(n entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if id == n.Id {
					found = true
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.notes[note.Id] = *note
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	return r.Create(ctx, note)
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.notes, id)
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.Note{}
	for _, n := range r.db.notes {
		if matchNote(n, specs) {
			n := n
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Id.String() < out[j].Id.String()
	})
	return out, nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeLinkRepo struct{ db *fakeDB }

func matchLink(l entity.NoteLink, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySourceID:
			if l.SourceId != s.SourceID {
				return false
			}
		case specification.ByTargetID:
			if l.TargetId != s.TargetID {
				return false
			}
		case specification.ByLinkPair:
			if l.SourceId != s.SourceID || l.TargetId != s.TargetID {
				return false
			}
		case specification.TouchingNote:
			if l.SourceId != s.NoteID && l.TargetId != s.NoteID {
				return false
			}
		}
	}
	return true
}

func (r *fakeLinkRepo) Create(ctx context.Context, link *entity.NoteLink) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := linkKey{link.SourceId, link.TargetId}
	if existing, ok := r.db.links[key]; ok {
		*link = existing
		return nil
	}
	r.db.links[key] = *link
	return nil
}

func (r *fakeLinkRepo) Delete(ctx context.Context, sourceId, targetId uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := linkKey{sourceId, targetId}
	if _, ok := r.db.links[key]; !ok {
		return false, nil
	}
	delete(r.db.links, key)
	return true, nil
}

func (r *fakeLinkRepo) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k := range r.db.links {
		if k.source == noteId || k.target == noteId {
			delete(r.db.links, k)
		}
	}
	return nil
}

func (r *fakeLinkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteLink, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.NoteLink{}
	for _, l := range r.db.links {
		if matchLink(l, specs) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceId != out[j].SourceId {
			return out[i].SourceId.String() < out[j].SourceId.String()
		}
		return out[i].TargetId.String() < out[j].TargetId.String()
	})
	return out, nil
}

func (r *fakeLinkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// ---- search index ----

// fakeIndex ranks documents by how many query words they contain, title words counting double.
type fakeIndex struct {
	mu        sync.Mutex
	docs      map[string]search.Document
	writeErr  error
	queryErr  error
	queries   []search.Request
	extraHits []search.Hit
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]search.Document{}}
}

func (f *fakeIndex) EnsureIndex(ctx context.Context) error { return nil }

func (f *fakeIndex) IndexDocument(ctx context.Context, id string, doc search.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.docs[id] = doc
	return nil
}

func (f *fakeIndex) UpdateDocument(ctx context.Context, id string, doc search.Document) error {
	return f.IndexDocument(ctx, id, doc)
}

func (f *fakeIndex) DeleteDocument(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) doc(id uuid.UUID) (search.Document, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id.String()]
	return d, ok
}

func (f *fakeIndex) Query(ctx context.Context, req search.Request) (*search.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, req)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var hits []search.Hit
	for id, doc := range f.docs {
		score, ok := matchDocument(doc, req.Query.Must)
		if ok {
			hits = append(hits, search.Hit{ID: id, Score: score, Source: doc})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	hits = append(hits, f.extraHits...)
	return &search.Result{Total: len(hits), Hits: hits}, nil
}

func matchDocument(doc search.Document, must []search.Clause) (float64, bool) {
	var score float64
	for _, clause := range must {
		switch c := clause.(type) {
		case search.MatchClause:
			title := strings.Fields(strings.ToLower(doc.Title))
			body := strings.Fields(strings.ToLower(doc.Content))
			for _, w := range strings.Fields(strings.ToLower(c.Query)) {
				score += 2 * float64(count(title, w))
				score += float64(count(body, w))
			}
			if score == 0 {
				return 0, false
			}
		case search.TermClause:
			if c.Field == search.FieldType && doc.Type != c.Value {
				return 0, false
			}
		case search.TermsClause:
			hit := false
			for _, want := range c.Values {
				for _, have := range doc.Tags {
					if want == have {
						hit = true
					}
				}
			}
			if !hit {
				return 0, false
			}
		}
	}
	return score, true
}

func count(words []string, w string) int {
	n := 0
	for _, x := range words {
		if x == w {
			n++
		}
	}
	return n
}

// ---- events ----

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// ---- logging ----

type logLine struct {
	Level   string
	Module  string
	Message string
	Details map[string]interface{}
}

type fakeLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *fakeLogger) add(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{level, module, message, details})
}

func (l *fakeLogger) Debug(module, message string, details map[string]interface{}) {
	l.add("DEBUG", module, message, details)
}
func (l *fakeLogger) Info(module, message string, details map[string]interface{}) {
	l.add("INFO", module, message, details)
}
func (l *fakeLogger) Warn(module, message string, details map[string]interface{}) {
	l.add("WARN", module, message, details)
}
func (l *fakeLogger) Error(module, message string, details map[string]interface{}) {
	l.add("ERROR", module, message, details)
}
func (l *fakeLogger) Sync() error { return nil }

func (l *fakeLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []logger.LogEntry{}
	for _, line := range l.lines {
		if level != "" && line.Level != level {
			continue
		}
		out = append(out, logger.LogEntry{Level: line.Level, Module: line.Module, Message: line.Message, Details: line.Details})
	}
	return out, nil
}

func (l *fakeLogger) GetLogById(id string) (*logger.LogEntry, error) {
	return nil, errors.New("not supported")
}

func (l *fakeLogger) count(level string) int {
	entries, _ := l.GetLogs(level, 0, 0)
	return len(entries)
}

// ---- language model ----

type llmCall struct {
	Messages []llm.Message
	Options  llm.Options
}

type fakeLLM struct {
	mu      sync.Mutex
	calls   []llmCall
	respond func(messages []llm.Message) (string, error)
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, llmCall{Messages: history, Options: llm.Apply(llm.Options{}, opts...)})
	f.mu.Unlock()
	if f.respond == nil {
		return "", nil
	}
	return f.respond(history)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

func replyWith(s string) func([]llm.Message) (string, error) {
	return func([]llm.Message) (string, error) { return s, nil }
}
