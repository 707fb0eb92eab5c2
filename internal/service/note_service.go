package service

import (
	"context"
	"fmt"
	"time"

	"notegraph-be/internal/dto"
	"notegraph-be/internal/entity"
	"notegraph-be/internal/pkg/apperror"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/internal/repository/contract"
	"notegraph-be/internal/repository/specification"
	"notegraph-be/internal/repository/unitofwork"
	"notegraph-be/pkg/events"
	"notegraph-be/pkg/search"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.WriteNoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.WriteNoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.WriteNoteResponse, error)
	CreateLink(ctx context.Context, req *dto.CreateLinkRequest) (*dto.LinkResponse, error)
	DeleteLink(ctx context.Context, sourceId, targetId uuid.UUID) error

	// Reindex copies the stored state of one note into the search index and clears its backlog entry.
	Reindex(ctx context.Context, id uuid.UUID) (*dto.ReindexResponse, error)
	IndexBacklog(ctx context.Context) ([]*dto.IndexFailureResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	index            search.Index
	backlog          contract.IndexBacklogRepository
	publisherService IPublisherService
	logger           logger.ILogger
	consistencyLog   logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	index search.Index,
	backlog contract.IndexBacklogRepository,
	publisherService IPublisherService,
	log logger.ILogger,
	consistencyLog logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		index:            index,
		backlog:          backlog,
		publisherService: publisherService,
		logger:           log,
		consistencyLog:   consistencyLog,
	}
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.WriteNoteResponse, error) {
	noteType := entity.NoteType(req.Type)
	if noteType == "" {
		noteType = entity.NoteTypeDocument
	}
	if !noteType.Valid() {
		return nil, fmt.Errorf("%w: unknown note type %q", apperror.ErrInvalidInput, req.Type)
	}

	now := time.Now()
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Type:      noteType,
		Tags:      normalizeTags(req.Tags),
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Metadata == nil {
		note.Metadata = map[string]interface{}{}
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	indexed := c.mirror(ctx, entity.IndexOperationIndex, &note)
	c.publish(ctx, events.NoteCreated, map[string]interface{}{
		"note_id":        note.Id.String(),
		"title":          note.Title,
		"search_indexed": indexed,
	})

	return &dto.WriteNoteResponse{Id: note.Id, SearchIndexed: indexed}, nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNotFound
	}

	outgoing, err := uow.NoteLinkRepository().FindAll(ctx,
		specification.BySourceID{SourceID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	incoming, err := uow.NoteLinkRepository().FindAll(ctx,
		specification.ByTargetID{TargetID: id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	peerIds := make([]uuid.UUID, 0, len(outgoing)+len(incoming))
	for _, l := range outgoing {
		peerIds = append(peerIds, l.TargetId)
	}
	for _, l := range incoming {
		peerIds = append(peerIds, l.SourceId)
	}
	titles := map[uuid.UUID]string{}
	if len(peerIds) > 0 {
		peers, err := uow.NoteRepository().FindAll(ctx, specification.ByIDs{IDs: peerIds})
		if err != nil {
			return nil, err
		}
		for _, p := range peers {
			titles[p.Id] = p.Title
		}
	}

	res := dto.ShowNoteResponse{
		NoteResponse:  toNoteResponse(note),
		OutgoingLinks: make([]dto.LinkedNote, 0, len(outgoing)),
		IncomingLinks: make([]dto.LinkedNote, 0, len(incoming)),
	}
	for _, l := range outgoing {
		res.OutgoingLinks = append(res.OutgoingLinks, dto.LinkedNote{Id: l.TargetId, Title: titles[l.TargetId], LinkedAt: l.CreatedAt})
	}
	for _, l := range incoming {
		res.IncomingLinks = append(res.IncomingLinks, dto.LinkedNote{Id: l.SourceId, Title: titles[l.SourceId], LinkedAt: l.CreatedAt})
	}

	return &res, nil
}

func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.WriteNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNotFound
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Type != nil {
		t := entity.NoteType(*req.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: unknown note type %q", apperror.ErrInvalidInput, *req.Type)
		}
		note.Type = t
	}
	if req.Tags != nil {
		note.Tags = normalizeTags(*req.Tags)
	}
	if req.Metadata != nil {
		note.Metadata = req.Metadata
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	indexed := c.mirror(ctx, entity.IndexOperationUpdate, note)
	c.publish(ctx, events.NoteUpdated, map[string]interface{}{
		"note_id":        note.Id.String(),
		"title":          note.Title,
		"search_indexed": indexed,
	})

	return &dto.WriteNoteResponse{Id: note.Id, SearchIndexed: indexed}, nil
}

// Delete removes the note and every link touching it in one transaction, then the index document.
func (c *noteService) Delete(ctx context.Context, id uuid.UUID) (*dto.WriteNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.ErrNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.NoteLinkRepository().DeleteByNoteId(ctx, id); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	indexed := c.mirror(ctx, entity.IndexOperationDelete, note)
	c.publish(ctx, events.NoteDeleted, map[string]interface{}{
		"note_id":        id.String(),
		"title":          note.Title,
		"search_indexed": indexed,
	})

	return &dto.WriteNoteResponse{Id: id, SearchIndexed: indexed}, nil
}

func (c *noteService) CreateLink(ctx context.Context, req *dto.CreateLinkRequest) (*dto.LinkResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	ids := []uuid.UUID{req.SourceId}
	if req.TargetId != req.SourceId {
		ids = append(ids, req.TargetId)
	}
	found, err := uow.NoteRepository().Count(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	if found != int64(len(ids)) {
		return nil, apperror.ErrNotFound
	}

	link := entity.NoteLink{
		SourceId:  req.SourceId,
		TargetId:  req.TargetId,
		CreatedAt: time.Now(),
	}
	if err := uow.NoteLinkRepository().Create(ctx, &link); err != nil {
		return nil, err
	}

	c.publish(ctx, events.LinkCreated, map[string]interface{}{
		"source_id": link.SourceId.String(),
		"target_id": link.TargetId.String(),
	})

	return &dto.LinkResponse{SourceId: link.SourceId, TargetId: link.TargetId, CreatedAt: link.CreatedAt}, nil
}

func (c *noteService) DeleteLink(ctx context.Context, sourceId, targetId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	removed, err := uow.NoteLinkRepository().Delete(ctx, sourceId, targetId)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.ErrNotFound
	}

	c.publish(ctx, events.LinkDeleted, map[string]interface{}{
		"source_id": sourceId.String(),
		"target_id": targetId.String(),
	})
	return nil
}

func (c *noteService) Reindex(ctx context.Context, id uuid.UUID) (*dto.ReindexResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}

	res := &dto.ReindexResponse{NoteId: id}
	if note == nil {
		if err := c.index.DeleteDocument(ctx, id.String()); err != nil {
			return nil, err
		}
		res.Action = "removed"
	} else {
		if err := c.index.IndexDocument(ctx, id.String(), toSearchDocument(note)); err != nil {
			return nil, err
		}
		res.Action = "indexed"
	}

	if err := c.backlog.Resolve(ctx, id); err != nil {
		c.logger.Warn("NOTE_SERVICE", "Reindexed but failed to clear backlog entry", map[string]interface{}{
			"note_id": id.String(),
			"error":   err.Error(),
		})
	}
	c.consistencyLog.Info("INDEX_CONSISTENCY", "Note reindexed", map[string]interface{}{
		"note_id": id.String(),
		"action":  res.Action,
	})
	return res, nil
}

func (c *noteService) IndexBacklog(ctx context.Context) ([]*dto.IndexFailureResponse, error) {
	failures, err := c.backlog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.IndexFailureResponse, 0, len(failures))
	for _, f := range failures {
		res = append(res, &dto.IndexFailureResponse{
			NoteId:     f.NoteId,
			Operation:  string(f.Operation),
			Error:      f.Error,
			OccurredAt: f.OccurredAt,
		})
	}
	return res, nil
}

// mirror performs the index half of a note write. The store write has already
// succeeded; a failure here is surfaced and recorded but never rolls it back.
func (c *noteService) mirror(ctx context.Context, op entity.IndexOperation, note *entity.Note) bool {
	id := note.Id.String()

	var err error
	switch op {
	case entity.IndexOperationIndex:
		err = c.index.IndexDocument(ctx, id, toSearchDocument(note))
	case entity.IndexOperationUpdate:
		err = c.index.UpdateDocument(ctx, id, toSearchDocument(note))
	case entity.IndexOperationDelete:
		err = c.index.DeleteDocument(ctx, id)
	}

	// the request may be gone by now; bookkeeping still has to land
	detached := context.WithoutCancel(ctx)
	if err == nil {
		if rerr := c.backlog.Resolve(detached, note.Id); rerr != nil {
			c.logger.Warn("NOTE_SERVICE", "Failed to clear index backlog entry", map[string]interface{}{
				"note_id": id,
				"error":   rerr.Error(),
			})
		}
		return true
	}

	c.surfaceIndexFailure(detached, op, note.Id, err)
	return false
}

func (c *noteService) surfaceIndexFailure(ctx context.Context, op entity.IndexOperation, noteId uuid.UUID, cause error) {
	details := map[string]interface{}{
		"note_id":   noteId.String(),
		"operation": string(op),
		"error":     cause.Error(),
	}

	c.logger.Warn("NOTE_SERVICE", "Note persisted but search index write failed", details)
	c.consistencyLog.Warn("INDEX_CONSISTENCY", "Index write failed after store write", details)

	failure := &entity.IndexFailure{
		NoteId:     noteId,
		Operation:  op,
		Error:      cause.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if err := c.backlog.Record(ctx, failure); err != nil {
		c.logger.Error("NOTE_SERVICE", "Failed to record index backlog entry", map[string]interface{}{
			"note_id": noteId.String(),
			"error":   err.Error(),
		})
	}

	c.publish(ctx, events.IndexWriteFailed, details)
}

func (c *noteService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if err := c.publisherService.Publish(ctx, events.New(eventType, data)); err != nil {
		c.logger.Warn("NOTE_SERVICE", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toSearchDocument(note *entity.Note) search.Document {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return search.Document{
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		Type:      string(note.Type),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func toNoteResponse(note *entity.Note) dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	metadata := note.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Type:      string(note.Type),
		Tags:      tags,
		Metadata:  metadata,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
