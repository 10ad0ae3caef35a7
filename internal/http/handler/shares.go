package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"skystash/internal/http/middleware"
	"skystash/internal/model"
	"skystash/internal/service"
)

type grantRequest struct {
	ResourceID   string `json:"resourceId" validate:"required,uuid"`
	GranteeEmail string `json:"granteeEmail" validate:"omitempty,email"`
	GranteeID    string `json:"granteeId" validate:"omitempty,uuid"`
	Role         string `json:"role" validate:"required"`
}

type linkRequest struct {
	ResourceID string `json:"resourceId" validate:"required,uuid"`
}

// ListGrantees godoc
// @Summary List users a resource is shared with
// @Tags shares
// @Param resourceId path string true "Resource id"
// @Success 200 {array} model.Grantee
// @Router /api/shares/{resourceId} [get]
func ListGrantees(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "resourceId")
		if !ok {
			return invalidID(c)
		}
		items, err := svc.ListGrantees(c.UserContext(), middleware.GetUserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GrantShare godoc
// @Summary Share a resource with a user, by email or id
// @Tags shares
// @Success 201 {object} model.Share
// @Router /api/shares [post]
func GrantShare(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req grantRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}

		owner := middleware.GetUserID(c)
		role := model.Role(req.Role)
		var (
			share *model.Share
			err   error
		)
		switch {
		case req.GranteeID != "":
			share, err = svc.Grant(c.UserContext(), owner, req.ResourceID, req.GranteeID, role)
		case req.GranteeEmail != "":
			share, err = svc.GrantByEmail(c.UserContext(), owner, req.ResourceID, req.GranteeEmail, role)
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "granteeEmail or granteeId is required")
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(share)
	}
}

// RevokeShare godoc
// @Summary Revoke a grant created by the caller
// @Tags shares
// @Param shareId path string true "Share id"
// @Router /api/shares/{shareId} [delete]
func RevokeShare(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "shareId")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Revoke(c.UserContext(), middleware.GetUserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Access revoked."})
	}
}

// CreateLink godoc
// @Summary Create, or return the existing, public link for a resource
// @Tags shares
// @Success 201 {object} model.LinkShare
// @Router /api/shares/link [post]
func CreateLink(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req linkRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		link, err := svc.CreateLink(c.UserContext(), middleware.GetUserID(c), req.ResourceID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(link)
	}
}

// GetLink godoc
// @Summary Get the caller's public link for a resource; null when none
// @Tags shares
// @Param resourceId path string true "Resource id"
// @Success 200 {object} model.LinkShare
// @Router /api/shares/link/{resourceId} [get]
func GetLink(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "resourceId")
		if !ok {
			return invalidID(c)
		}
		link, err := svc.GetLink(c.UserContext(), middleware.GetUserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if link == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString("null")
		}
		return c.JSON(link)
	}
}

// DeleteLink godoc
// @Summary Delete a public link created by the caller
// @Tags shares
// @Param linkId path string true "Link id"
// @Router /api/shares/link/{linkId} [delete]
func DeleteLink(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "linkId")
		if !ok {
			return invalidID(c)
		}
		if err := svc.DeleteLink(c.UserContext(), middleware.GetUserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Link deleted"})
	}
}

// ResolveLink godoc
// @Summary Resolve a public link token; no authentication required
// @Tags public
// @Param token path string true "Link token"
// @Success 200 {object} model.LinkTarget
// @Router /api/public/links/{token} [get]
func ResolveLink(svc service.SharingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target, err := svc.ResolveLink(c.UserContext(), utils.CopyString(c.Params("token")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(target)
	}
}
