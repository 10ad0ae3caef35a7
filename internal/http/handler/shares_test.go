package handler

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skystash/internal/model"
	"skystash/internal/service"
	serviceMocks "skystash/internal/service/mocks"
)

func TestGrantShare(t *testing.T) {
	mockSvc := new(serviceMocks.MockSharingService)
	app := newTestApp(func(app *fiber.App) {
		app.Post("/shares", GrantShare(mockSvc))
	})
	rid := uuid.New().String()

	t.Run("by email", func(t *testing.T) {
		share := &model.Share{ID: uuid.New().String(), ResourceID: rid, Role: model.RoleViewer}
		mockSvc.On("GrantByEmail", mock.Anything, testUser, rid, "bob@example.com", model.RoleViewer).Return(share, nil).Once()

		resp := doRequest(t, app, http.MethodPost, "/shares", map[string]string{
			"resourceId": rid, "granteeEmail": "bob@example.com", "role": "viewer",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		got := decodeBody[model.Share](t, resp)
		assert.Equal(t, share.ID, got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("by id", func(t *testing.T) {
		gid := uuid.New().String()
		share := &model.Share{ID: uuid.New().String(), GranteeUserID: gid, Role: model.RoleEditor}
		mockSvc.On("Grant", mock.Anything, testUser, rid, gid, model.RoleEditor).Return(share, nil).Once()

		resp := doRequest(t, app, http.MethodPost, "/shares", map[string]string{
			"resourceId": rid, "granteeId": gid, "role": "editor",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no grantee", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/shares", map[string]string{"resourceId": rid, "role": "viewer"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))
	})

	t.Run("bad email", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/shares", map[string]string{
			"resourceId": rid, "granteeEmail": "not-an-email", "role": "viewer",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))
	})

	t.Run("not owner", func(t *testing.T) {
		mockSvc.On("GrantByEmail", mock.Anything, testUser, rid, "eve@example.com", model.RoleViewer).Return(nil, service.ErrForbidden).Once()

		resp := doRequest(t, app, http.MethodPost, "/shares", map[string]string{
			"resourceId": rid, "granteeEmail": "eve@example.com", "role": "viewer",
		})

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
	})
}

func TestListGranteesAndRevoke(t *testing.T) {
	mockSvc := new(serviceMocks.MockSharingService)
	app := newTestApp(func(app *fiber.App) {
		app.Get("/shares/:resourceId", ListGrantees(mockSvc))
		app.Delete("/shares/:shareId", RevokeShare(mockSvc))
	})

	rid, sid := uuid.New().String(), uuid.New().String()
	grantees := []model.Grantee{{ID: sid, Role: model.RoleViewer, Grantee: model.User{ID: uuid.New().String(), Email: "bob@example.com"}}}
	mockSvc.On("ListGrantees", mock.Anything, testUser, rid).Return(grantees, nil).Once()
	mockSvc.On("Revoke", mock.Anything, testUser, sid).Return(nil).Once()

	resp := doRequest(t, app, http.MethodGet, "/shares/"+rid, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[[]model.Grantee](t, resp)
	assert.Equal(t, "bob@example.com", got[0].Grantee.Email)

	resp = doRequest(t, app, http.MethodDelete, "/shares/"+sid, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Access revoked.", decodeBody[map[string]string](t, resp)["message"])

	mockSvc.AssertExpectations(t)
}

func TestLinkHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockSharingService)
	app := newTestApp(func(app *fiber.App) {
		app.Post("/shares/link", CreateLink(mockSvc))
		app.Get("/shares/link/:resourceId", GetLink(mockSvc))
		app.Delete("/shares/link/:linkId", DeleteLink(mockSvc))
		app.Get("/public/links/:token", ResolveLink(mockSvc))
	})

	t.Run("create", func(t *testing.T) {
		rid := uuid.New().String()
		link := &model.LinkShare{ID: uuid.New().String(), ResourceID: rid, Token: "0123456789abcdef0123456789abcdef"}
		mockSvc.On("CreateLink", mock.Anything, testUser, rid).Return(link, nil).Once()

		resp := doRequest(t, app, http.MethodPost, "/shares/link", map[string]string{"resourceId": rid})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, link.Token, decodeBody[model.LinkShare](t, resp).Token)
	})

	t.Run("get existing", func(t *testing.T) {
		rid := uuid.New().String()
		link := &model.LinkShare{ID: uuid.New().String(), ResourceID: rid}
		mockSvc.On("GetLink", mock.Anything, testUser, rid).Return(link, nil).Once()

		resp := doRequest(t, app, http.MethodGet, "/shares/link/"+rid, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, link.ID, decodeBody[model.LinkShare](t, resp).ID)
	})

	t.Run("get none is null", func(t *testing.T) {
		rid := uuid.New().String()
		mockSvc.On("GetLink", mock.Anything, testUser, rid).Return(nil, nil).Once()

		resp := doRequest(t, app, http.MethodGet, "/shares/link/"+rid, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "null", string(raw))
	})

	t.Run("delete", func(t *testing.T) {
		lid := uuid.New().String()
		mockSvc.On("DeleteLink", mock.Anything, testUser, lid).Return(nil).Once()

		resp := doRequest(t, app, http.MethodDelete, "/shares/link/"+lid, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Link deleted", decodeBody[map[string]string](t, resp)["message"])
	})

	t.Run("delete foreign link", func(t *testing.T) {
		lid := uuid.New().String()
		mockSvc.On("DeleteLink", mock.Anything, testUser, lid).Return(service.ErrNotFound).Once()

		resp := doRequest(t, app, http.MethodDelete, "/shares/link/"+lid, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("resolve folder", func(t *testing.T) {
		target := &model.LinkTarget{
			Node:     model.PublicNode{ID: uuid.New().String(), Name: "Docs", IsFolder: true},
			Children: []model.PublicNode{{Name: "a.txt"}},
		}
		mockSvc.On("ResolveLink", mock.Anything, "tok").Return(target, nil).Once()

		resp := doRequest(t, app, http.MethodGet, "/public/links/tok", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeBody[model.LinkTarget](t, resp)
		assert.Len(t, got.Children, 1)
		assert.Empty(t, got.DownloadURL)
	})

	t.Run("resolve unknown", func(t *testing.T) {
		mockSvc.On("ResolveLink", mock.Anything, "gone").Return(nil, service.ErrNotFound).Once()

		resp := doRequest(t, app, http.MethodGet, "/public/links/gone", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
	})

	mockSvc.AssertExpectations(t)
}
