package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skystash/internal/auth"
	"skystash/internal/model"
	"skystash/internal/repository"
	"skystash/internal/storage"
)

const (
	// granteeLookupLimit caps concurrent identity lookups in ListGrantees.
	granteeLookupLimit = 8
	linkTokenBytes     = 16
	linkTokenAttempts  = 3
)

// SharingService manages user grants and public links on owned resources.
// Grants and links are scoped to their creator: revoking or deleting someone
// else's entry silently does nothing.
type SharingService interface {
	// Grant gives granteeID a role on resourceID, replacing any previous role.
	Grant(ctx context.Context, owner, resourceID, granteeID string, role model.Role) (*model.Share, error)

	// GrantByEmail resolves email through the identity directory and grants to that user.
	GrantByEmail(ctx context.Context, owner, resourceID, email string, role model.Role) (*model.Share, error)

	Revoke(ctx context.Context, owner, shareID string) error

	// ListGrantees returns the grants on resourceID with each grantee's identity.
	// Grantees the directory cannot resolve are left out.
	ListGrantees(ctx context.Context, owner, resourceID string) ([]model.Grantee, error)

	// CreateLink returns the caller's public link for resourceID, creating it when absent.
	CreateLink(ctx context.Context, owner, resourceID string) (*model.LinkShare, error)

	// GetLink returns the caller's link for resourceID, or nil when there is none.
	GetLink(ctx context.Context, owner, resourceID string) (*model.LinkShare, error)

	DeleteLink(ctx context.Context, owner, linkID string) error

	// ResolveLink resolves a public token without authentication. Links to
	// missing, trashed or hidden nodes resolve to ErrNotFound.
	ResolveLink(ctx context.Context, token string) (*model.LinkTarget, error)
}

type sharingService struct {
	nodes       repository.NodeRepository
	shares      repository.ShareRepository
	links       repository.LinkRepository
	dir         auth.Directory
	blobs       storage.BlobStore
	downloadTTL time.Duration
	log         *zap.Logger
	now         func() time.Time
	newToken    func() (string, error)
}

// NewSharingService constructs a new SharingService.
func NewSharingService(
	nodes repository.NodeRepository,
	shares repository.ShareRepository,
	links repository.LinkRepository,
	dir auth.Directory,
	blobs storage.BlobStore,
	downloadTTL time.Duration,
	log *zap.Logger,
) SharingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &sharingService{
		nodes:       nodes,
		shares:      shares,
		links:       links,
		dir:         dir,
		blobs:       blobs,
		downloadTTL: downloadTTL,
		log:         log.Named("sharing"),
		now:         utcNow,
		newToken:    newLinkToken,
	}
}

func (s *sharingService) Grant(ctx context.Context, owner, resourceID, granteeID string, role model.Role) (*model.Share, error) {
	if err := validateGrant(owner, granteeID, role); err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, owner, resourceID); err != nil {
		return nil, err
	}
	return s.upsert(ctx, owner, resourceID, granteeID, role)
}

func (s *sharingService) GrantByEmail(ctx context.Context, owner, resourceID, email string, role model.Role) (*model.Share, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: grantee email is required", ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if err := s.requireOwner(ctx, owner, resourceID); err != nil {
		return nil, err
	}

	u, err := s.dir.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: no user with that email", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: lookup grantee: %v", ErrUpstream, err)
	}
	if err := validateGrant(owner, u.ID, role); err != nil {
		return nil, err
	}
	return s.upsert(ctx, owner, resourceID, u.ID, role)
}

func validateGrant(owner, granteeID string, role model.Role) error {
	switch {
	case !role.Valid():
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	case granteeID == "":
		return fmt.Errorf("%w: grantee is required", ErrInvalidInput)
	case granteeID == owner:
		return fmt.Errorf("%w: cannot share with yourself", ErrInvalidInput)
	}
	return nil
}

func (s *sharingService) upsert(ctx context.Context, owner, resourceID, granteeID string, role model.Role) (*model.Share, error) {
	return s.shares.Upsert(ctx, &model.Share{
		ID:            uuid.New().String(),
		ResourceID:    resourceID,
		GranteeUserID: granteeID,
		Role:          role,
		CreatedBy:     owner,
		CreatedAt:     s.now(),
	})
}

func (s *sharingService) Revoke(ctx context.Context, owner, shareID string) error {
	return s.shares.Delete(ctx, owner, shareID)
}

func (s *sharingService) ListGrantees(ctx context.Context, owner, resourceID string) ([]model.Grantee, error) {
	if err := s.requireOwner(ctx, owner, resourceID); err != nil {
		return nil, err
	}
	shares, err := s.shares.ListByResource(ctx, owner, resourceID)
	if err != nil {
		return nil, err
	}

	resolved := make([]*model.Grantee, len(shares))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(granteeLookupLimit)
	for i, sh := range shares {
		g.Go(func() error {
			u, err := s.dir.LookupByID(gctx, sh.GranteeUserID)
			if err != nil {
				s.log.Warn("grantee_unresolved",
					zap.String("share_id", sh.ID),
					zap.String("grantee_user_id", sh.GranteeUserID),
					zap.Error(err),
				)
				return nil
			}
			resolved[i] = &model.Grantee{ID: sh.ID, Role: sh.Role, Grantee: *u}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Grantee, 0, len(resolved))
	for _, r := range resolved {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *sharingService) CreateLink(ctx context.Context, owner, resourceID string) (*model.LinkShare, error) {
	if err := s.requireOwner(ctx, owner, resourceID); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < linkTokenAttempts; i++ {
		token, err := s.newToken()
		if err != nil {
			return nil, fmt.Errorf("generate link token: %w", err)
		}
		link, err := s.links.Create(ctx, &model.LinkShare{
			ID:         uuid.New().String(),
			ResourceID: resourceID,
			Token:      token,
			CreatedBy:  owner,
			CreatedAt:  s.now(),
		})
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("create link: %w", lastErr)
}

func (s *sharingService) GetLink(ctx context.Context, owner, resourceID string) (*model.LinkShare, error) {
	link, err := s.links.FindByResource(ctx, owner, resourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return link, nil
}

func (s *sharingService) DeleteLink(ctx context.Context, owner, linkID string) error {
	return s.links.Delete(ctx, owner, linkID)
}

func (s *sharingService) ResolveLink(ctx context.Context, token string) (*model.LinkTarget, error) {
	if !validLinkToken(token) {
		return nil, ErrNotFound
	}
	link, err := s.links.FindByToken(ctx, token)
	if err != nil {
		return nil, mapRowError(err)
	}
	n, err := s.nodes.FindVisible(ctx, link.CreatedBy, link.ResourceID)
	if err != nil {
		return nil, mapRowError(err)
	}

	target := &model.LinkTarget{Node: n.Public()}
	if !n.IsFolder {
		if n.StorageKey == nil || *n.StorageKey == "" {
			return nil, ErrNotFound
		}
		target.DownloadURL, err = signDownload(ctx, s.blobs, *n.StorageKey, s.downloadTTL)
		if err != nil {
			return nil, err
		}
		return target, nil
	}

	children, err := s.nodes.ListChildren(ctx, link.CreatedBy, &n.ID, repository.Sort{Field: repository.SortByName})
	if err != nil {
		return nil, err
	}
	target.Children = make([]model.PublicNode, len(children))
	for i, c := range children {
		target.Children[i] = c.Public()
	}
	return target, nil
}

// requireOwner fails with ErrForbidden unless owner owns resourceID.
func (s *sharingService) requireOwner(ctx context.Context, owner, resourceID string) error {
	if _, err := s.nodes.FindByID(ctx, owner, resourceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: resource is not owned by the caller", ErrForbidden)
		}
		return err
	}
	return nil
}

func newLinkToken() (string, error) {
	b := make([]byte, linkTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func validLinkToken(token string) bool {
	if len(token) != 2*linkTokenBytes {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
