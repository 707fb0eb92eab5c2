package controller

import (
	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/serverutils"
	"notegraph-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	Search(ctx *fiber.Ctx) error
	Backlog(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
	ConsistencyLog(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
	noteService   service.INoteService
}

func NewSearchController(searchService service.ISearchService, noteService service.INoteService) ISearchController {
	return &searchController{
		searchService: searchService,
		noteService:   noteService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/search/v1")
	h.Use(guard)
	h.Get("", c.Search)
	h.Get("backlog", c.Backlog)
	h.Post("reindex/:id", c.Reindex)
	h.Get("consistency-log", c.ConsistencyLog)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	req := dto.SearchNotesRequest{
		Query:  ctx.Query("q"),
		Type:   ctx.Query("type"),
		Tags:   queryList(ctx, "tags"),
		SortBy: ctx.Query("sortBy"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Search(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search notes", res))
}

func (c *searchController) Backlog(ctx *fiber.Ctx) error {
	res, err := c.noteService.IndexBacklog(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get index backlog", res))
}

func (c *searchController) Reindex(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.noteService.Reindex(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reindex note", res))
}

func (c *searchController) ConsistencyLog(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.searchService.ConsistencyLog(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get consistency log", res))
}
