package controller

import (
	"fmt"
	"strconv"

	"notegraph-be/internal/pkg/apperror"
	"notegraph-be/internal/pkg/serverutils"
	"notegraph-be/internal/service"
	internalWS "notegraph-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IGraphController interface {
	RegisterRoutes(r fiber.Router, guard fiber.Handler)
	Global(ctx *fiber.Ctx) error
	Local(ctx *fiber.Ctx) error
	ShortestPath(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type graphController struct {
	graphService service.IGraphService
	hub          *internalWS.Hub
}

func NewGraphController(graphService service.IGraphService, hub *internalWS.Hub) IGraphController {
	return &graphController{
		graphService: graphService,
		hub:          hub,
	}
}

func (c *graphController) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	h := r.Group("/graph/v1")
	h.Use(guard)
	h.Get("", c.Global)
	h.Get("local/:id", c.Local)
	h.Get("path", c.ShortestPath)
	h.Get("stats", c.Stats)
	if c.hub != nil {
		h.Get("ws", requireUpgrade, websocket.New(func(conn *websocket.Conn) {
			internalWS.ServeGraphFeed(c.hub, conn)
		}))
	}
}

func (c *graphController) Global(ctx *fiber.Ctx) error {
	res, err := c.graphService.Global(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get graph", res))
}

func (c *graphController) Local(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var depth *int
	if raw := ctx.Query("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: depth must be an integer", apperror.ErrInvalidInput)
		}
		depth = &d
	}

	res, err := c.graphService.Local(ctx.UserContext(), id, depth)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get local graph", res))
}

func (c *graphController) ShortestPath(ctx *fiber.Ctx) error {
	from, err := queryUUID(ctx, "from")
	if err != nil {
		return err
	}
	to, err := queryUUID(ctx, "to")
	if err != nil {
		return err
	}

	res, err := c.graphService.ShortestPath(ctx.UserContext(), from, to)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get shortest path", res))
}

func (c *graphController) Stats(ctx *fiber.Ctx) error {
	res, err := c.graphService.Stats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get graph stats", res))
}

func requireUpgrade(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}
	return fiber.ErrUpgradeRequired
}
