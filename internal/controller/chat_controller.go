package controller

import (
	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/logger"
	"notegraph-be/internal/pkg/serverutils"
	"notegraph-be/internal/service"
	internalWS "notegraph-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	Ask(ctx *fiber.Ctx) error
}

type chatController struct {
	aiService service.IAIService
	logger    logger.ILogger
}

func NewChatController(aiService service.IAIService, log logger.ILogger) IChatController {
	return &chatController{
		aiService: aiService,
		logger:    log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Use(guard)
	h.Post("", c.Ask)
	h.Get("ws", requireUpgrade, websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeChat(c.aiService, c.logger, conn)
	}))
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.AnswerQuestion(ctx.UserContext(), req.Question)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}
