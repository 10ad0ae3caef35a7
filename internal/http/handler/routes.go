package handler

import (
	"github.com/gofiber/fiber/v2"

	"skystash/internal/auth"
	"skystash/internal/http/middleware"
	"skystash/internal/service"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Nodes     service.NodeService
	Queries   service.QueryService
	Favorites service.FavoriteService
	Sharing   service.SharingService
	Uploads   service.UploadService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Everything below /api/files, /api/meta and /api/shares requires a bearer credential.
func RegisterRoutes(app *fiber.App, db Pinger, verifier auth.Verifier, svc Services) {
	app.Get("/", Banner())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	requireUser := middleware.Auth(verifier)

	files := api.Group("/files", requireUser)
	files.Get("/", ListNodes(svc.Queries))
	files.Get("/search", SearchNodes(svc.Queries))
	files.Post("/signed-url", RequestUploadSlot(svc.Uploads))
	files.Post("/metadata", CommitFileMetadata(svc.Nodes))
	files.Post("/", CreateFolder(svc.Nodes))
	files.Get("/:nodeId/download", RequestDownloadURL(svc.Uploads))
	files.Patch("/:nodeId/move", MoveNode(svc.Nodes))
	files.Patch("/:nodeId/rename", RenameNode(svc.Nodes))
	files.Patch("/:nodeId/trash", TrashNode(svc.Nodes))
	files.Patch("/:nodeId/restore", RestoreNode(svc.Nodes))
	files.Delete("/:nodeId", DeleteNode(svc.Nodes))

	meta := api.Group("/meta", requireUser)
	meta.Get("/starred", ListStarred(svc.Queries))
	meta.Get("/recent", ListRecent(svc.Queries))
	meta.Post("/stars", StarNode(svc.Favorites))
	meta.Delete("/stars/:nodeId", UnstarNode(svc.Favorites))

	// Link routes go first so "link" is never captured as a resource or share id.
	shares := api.Group("/shares", requireUser)
	shares.Post("/link", CreateLink(svc.Sharing))
	shares.Get("/link/:resourceId", GetLink(svc.Sharing))
	shares.Delete("/link/:linkId", DeleteLink(svc.Sharing))
	shares.Get("/:resourceId", ListGrantees(svc.Sharing))
	shares.Post("/", GrantShare(svc.Sharing))
	shares.Delete("/:shareId", RevokeShare(svc.Sharing))

	api.Get("/public/links/:token", ResolveLink(svc.Sharing))
}
