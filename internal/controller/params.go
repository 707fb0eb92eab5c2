package controller

import (
	"fmt"

	"notegraph-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	return parseUUID(ctx.Params(name), name)
}

func queryUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	return parseUUID(ctx.Query(name), name)
}

func parseUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid id", apperror.ErrInvalidInput, name)
	}
	return id, nil
}

// queryList collects a repeated query parameter, accepting both "name" and "name[]".
func queryList(ctx *fiber.Ctx, name string) []string {
	args := ctx.Context().QueryArgs()
	var out []string
	for _, key := range []string{name, name + "[]"} {
		for _, v := range args.PeekMulti(key) {
			if len(v) > 0 {
				out = append(out, string(v))
			}
		}
	}
	return out
}
