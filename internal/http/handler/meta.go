package handler

import (
	"github.com/gofiber/fiber/v2"

	"skystash/internal/http/middleware"
	"skystash/internal/service"
)

type starRequest struct {
	NodeID string `json:"nodeId" validate:"required,uuid"`
}

// ListStarred godoc
// @Summary List the caller's starred nodes
// @Tags meta
// @Success 200 {array} model.NodeView
// @Router /api/meta/starred [get]
func ListStarred(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Starred(c.UserContext(), middleware.GetUserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// ListRecent godoc
// @Summary List recently updated nodes
// @Tags meta
// @Success 200 {array} model.NodeView
// @Router /api/meta/recent [get]
func ListRecent(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Recent(c.UserContext(), middleware.GetUserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// StarNode godoc
// @Summary Star a node
// @Tags meta
// @Router /api/meta/stars [post]
func StarNode(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req starRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		if err := svc.Star(c.UserContext(), middleware.GetUserID(c), req.NodeID); err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item starred."})
	}
}

// UnstarNode godoc
// @Summary Remove a star
// @Tags meta
// @Param nodeId path string true "Node id"
// @Router /api/meta/stars/{nodeId} [delete]
func UnstarNode(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Unstar(c.UserContext(), middleware.GetUserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Item unstarred."})
	}
}
