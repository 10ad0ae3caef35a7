package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skystash/internal/http/middleware"
	"skystash/internal/service"
)

type createFolderRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
}

type commitMetadataRequest struct {
	Name     string `json:"name" validate:"required"`
	Path     string `json:"path" validate:"required"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size" validate:"gte=0"`
	ParentID string `json:"parentId" validate:"omitempty,uuid"`
}

type signedURLRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType"`
}

type moveRequest struct {
	NewParentID string `json:"newParentId" validate:"omitempty,uuid"`
}

type renameRequest struct {
	NewName string `json:"newName" validate:"required"`
}

// ListNodes godoc
// @Summary List drive or trash contents
// @Tags files
// @Param parentId query string false "Parent folder id"
// @Param view query string false "drive or trash"
// @Param sortBy query string false "name, size, updated_at, created_at, mime_type"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {array} model.NodeView
// @Router /api/files [get]
func ListNodes(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := service.ListQuery{
			View:      queryParam(c, "view"),
			SortBy:    queryParam(c, "sortBy"),
			SortOrder: queryParam(c, "sortOrder"),
		}
		if p := queryParam(c, "parentId"); p != "" {
			if _, err := uuid.Parse(p); err != nil {
				return invalidID(c)
			}
			q.ParentID = &p
		}

		items, err := svc.List(c.UserContext(), middleware.GetUserID(c), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// SearchNodes godoc
// @Summary Search visible nodes by name
// @Tags files
// @Param q query string true "Substring to match"
// @Success 200 {array} model.NodeView
// @Router /api/files/search [get]
func SearchNodes(svc service.QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := queryParam(c, "q")
		if q == "" {
			return writeError(c, fiber.StatusBadRequest, "QUERY_REQUIRED", `query parameter "q" is required`)
		}
		items, err := svc.Search(c.UserContext(), middleware.GetUserID(c), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// RequestUploadSlot godoc
// @Summary Issue a signed upload URL
// @Tags files
// @Success 200 {object} service.UploadSlot
// @Router /api/files/signed-url [post]
func RequestUploadSlot(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signedURLRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		slot, err := svc.RequestUploadSlot(c.UserContext(), middleware.GetUserID(c), req.FileName, req.ContentType)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(slot)
	}
}

// CommitFileMetadata godoc
// @Summary Record an uploaded file
// @Tags files
// @Success 201 {object} model.Node
// @Router /api/files/metadata [post]
func CommitFileMetadata(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commitMetadataRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		n, err := svc.CommitFileMetadata(c.UserContext(), middleware.GetUserID(c), service.FileMetadata{
			Name:       req.Name,
			StorageKey: req.Path,
			MimeType:   req.MimeType,
			Size:       req.Size,
			ParentID:   emptyToNil(req.ParentID),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags files
// @Success 201 {object} model.Node
// @Router /api/files [post]
func CreateFolder(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFolderRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		n, err := svc.CreateFolder(c.UserContext(), middleware.GetUserID(c), req.Name, emptyToNil(req.ParentID))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// RequestDownloadURL godoc
// @Summary Issue a signed download URL for a file
// @Tags files
// @Param nodeId path string true "Node id"
// @Router /api/files/{nodeId}/download [get]
func RequestDownloadURL(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		url, err := svc.RequestDownloadURL(c.UserContext(), middleware.GetUserID(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"downloadUrl": url})
	}
}

// MoveNode godoc
// @Summary Move a node under another folder, or to the root
// @Tags files
// @Param nodeId path string true "Node id"
// @Success 200 {object} model.Node
// @Failure 409 {object} errorPayload
// @Router /api/files/{nodeId}/move [patch]
func MoveNode(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		var req moveRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		n, err := svc.Move(c.UserContext(), middleware.GetUserID(c), id, emptyToNil(req.NewParentID))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(n)
	}
}

// RenameNode godoc
// @Summary Rename a node
// @Tags files
// @Param nodeId path string true "Node id"
// @Success 200 {object} model.Node
// @Router /api/files/{nodeId}/rename [patch]
func RenameNode(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		var req renameRequest
		if err := bindJSON(c, &req); err != nil {
			return writeBindError(c, err)
		}
		n, err := svc.Rename(c.UserContext(), middleware.GetUserID(c), id, req.NewName)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(n)
	}
}

// TrashNode godoc
// @Summary Move a node to the trash
// @Tags files
// @Param nodeId path string true "Node id"
// @Router /api/files/{nodeId}/trash [patch]
func TrashNode(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		if _, err := svc.Trash(c.UserContext(), middleware.GetUserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Item moved to trash"})
	}
}

// RestoreNode godoc
// @Summary Restore a node from the trash
// @Tags files
// @Param nodeId path string true "Node id"
// @Router /api/files/{nodeId}/restore [patch]
func RestoreNode(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		if _, err := svc.Restore(c.UserContext(), middleware.GetUserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Item restored"})
	}
}

// DeleteNode godoc
// @Summary Permanently delete a node and its subtree
// @Tags files
// @Param nodeId path string true "Node id"
// @Router /api/files/{nodeId} [delete]
func DeleteNode(svc service.NodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathUUID(c, "nodeId")
		if !ok {
			return invalidID(c)
		}
		if err := svc.HardDelete(c.UserContext(), middleware.GetUserID(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Item permanently deleted"})
	}
}
