package controller

import (
	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/serverutils"
	"notegraph-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	SuggestLinks(ctx *fiber.Ctx) error
	GenerateTags(ctx *fiber.Ctx) error
	ImproveWriting(ctx *fiber.Ctx) error
	GenerateSummary(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAIService
}

func NewAIController(aiService service.IAIService) IAIController {
	return &aiController{aiService: aiService}
}

func (c *aiController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/ai/v1")
	h.Use(guard)
	h.Get("suggest-links/:id", c.SuggestLinks)
	h.Post("tags", c.GenerateTags)
	h.Post("improve", c.ImproveWriting)
	h.Post("summary", c.GenerateSummary)
}

func (c *aiController) SuggestLinks(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}
	res, err := c.aiService.SuggestLinks(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success suggest links", res))
}

func (c *aiController) GenerateTags(ctx *fiber.Ctx) error {
	req, err := parseContent(ctx)
	if err != nil {
		return err
	}
	tags, err := c.aiService.GenerateTags(ctx.UserContext(), req.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate tags", dto.TagsResponse{Tags: tags}))
}

func (c *aiController) ImproveWriting(ctx *fiber.Ctx) error {
	req, err := parseContent(ctx)
	if err != nil {
		return err
	}
	out, err := c.aiService.ImproveWriting(ctx.UserContext(), req.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success improve writing", dto.ImproveWritingResponse{Content: out}))
}

func (c *aiController) GenerateSummary(ctx *fiber.Ctx) error {
	req, err := parseContent(ctx)
	if err != nil {
		return err
	}
	out, err := c.aiService.GenerateSummary(ctx.UserContext(), req.Content)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate summary", dto.SummaryResponse{Summary: out}))
}

func parseContent(ctx *fiber.Ctx) (*dto.ContentRequest, error) {
	var req dto.ContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}
