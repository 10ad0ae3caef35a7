package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// maxAncestorDepth bounds the cycle-check walk during Move.
const maxAncestorDepth = 1024

const defaultMimeType = "application/octet-stream"

// FileMetadata describes an uploaded object to be materialized as a file node.
type FileMetadata struct {
	Name       string
	StorageKey string
	MimeType   string
	Size       int64
	ParentID   *string
}

// NodeService owns the node tree and its lifecycle. Every operation is scoped
// to owner; nodes belonging to anyone else behave as if they did not exist.
type NodeService interface {
	// CreateFolder creates a folder under parentID, or at the root when nil.
	CreateFolder(ctx context.Context, owner, name string, parentID *string) (*model.Node, error)

	// CommitFileMetadata records a file whose bytes were uploaded through a signed slot.
	CommitFileMetadata(ctx context.Context, owner string, in FileMetadata) (*model.Node, error)

	Rename(ctx context.Context, owner, id, name string) (*model.Node, error)

	// Move reparents a node. A nil newParentID moves it to the root.
	// Fails with ErrCycleDetected when the target is the node itself or one of its descendants.
	Move(ctx context.Context, owner, id string, newParentID *string) (*model.Node, error)

	// Trash soft-deletes a node. Descendants are hidden, not modified.
	Trash(ctx context.Context, owner, id string) (*model.Node, error)

	// Restore clears the soft-delete state. A node under a trashed ancestor stays hidden.
	Restore(ctx context.Context, owner, id string) (*model.Node, error)

	// HardDelete permanently removes a node and its subtree.
	HardDelete(ctx context.Context, owner, id string) error
}

type nodeService struct {
	repo repository.NodeRepository
	now  func() time.Time
}

// NewNodeService constructs a new NodeService.
func NewNodeService(repo repository.NodeRepository) NodeService {
	return &nodeService{repo: repo, now: utcNow}
}

func utcNow() time.Time { return time.Now().UTC() }

func (s *nodeService) CreateFolder(ctx context.Context, owner, name string, parentID *string) (*model.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := s.validateParent(ctx, owner, parentID); err != nil {
		return nil, err
	}

	now := s.now()
	out, err := s.repo.Create(ctx, &model.Node{
		ID:        uuid.New().String(),
		OwnerID:   owner,
		Name:      name,
		IsFolder:  true,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, mapCreateError(err)
	}
	return out, nil
}

func (s *nodeService) CommitFileMetadata(ctx context.Context, owner string, in FileMetadata) (*model.Node, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case in.Size < 0:
		return nil, fmt.Errorf("%w: size must not be negative", ErrInvalidInput)
	case in.StorageKey == "":
		return nil, fmt.Errorf("%w: storage key is required", ErrInvalidInput)
	case !inNamespace(owner, in.StorageKey):
		return nil, fmt.Errorf("%w: storage key is outside the caller's namespace", ErrInvalidInput)
	}
	if _, err := s.validateParent(ctx, owner, in.ParentID); err != nil {
		return nil, err
	}

	mime := in.MimeType
	if mime == "" {
		mime = defaultMimeType
	}
	key := in.StorageKey
	size := in.Size
	now := s.now()

	out, err := s.repo.Create(ctx, &model.Node{
		ID:         uuid.New().String(),
		OwnerID:    owner,
		Name:       name,
		ParentID:   in.ParentID,
		StorageKey: &key,
		MimeType:   &mime,
		SizeBytes:  &size,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, mapCreateError(err)
	}
	return out, nil
}

func (s *nodeService) Rename(ctx context.Context, owner, id, name string) (*model.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	out, err := s.repo.Rename(ctx, owner, id, name, s.now())
	if err != nil {
		return nil, mapRowError(err)
	}
	return out, nil
}

func (s *nodeService) Move(ctx context.Context, owner, id string, newParentID *string) (*model.Node, error) {
	if _, err := s.repo.FindByID(ctx, owner, id); err != nil {
		return nil, mapRowError(err)
	}

	if newParentID != nil {
		if *newParentID == id {
			return nil, fmt.Errorf("%w: a node cannot be its own parent", ErrCycleDetected)
		}
		parent, err := s.validateParent(ctx, owner, newParentID)
		if err != nil {
			return nil, err
		}
		if err := s.checkAncestors(ctx, owner, id, parent); err != nil {
			return nil, err
		}
	}

	out, err := s.repo.Move(ctx, owner, id, newParentID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, fmt.Errorf("%w: parent no longer exists", ErrInvalidParent)
		}
		return nil, mapRowError(err)
	}
	return out, nil
}

// checkAncestors walks up from parent and fails if id is reached.
// A revisited node or an over-deep chain is reported as a cycle.
func (s *nodeService) checkAncestors(ctx context.Context, owner, id string, parent *model.Node) error {
	seen := map[string]struct{}{parent.ID: {}}
	cur := parent.ParentID
	for depth := 0; cur != nil; depth++ {
		if depth >= maxAncestorDepth {
			return fmt.Errorf("%w: ancestor chain too deep", ErrCycleDetected)
		}
		if *cur == id {
			return fmt.Errorf("%w: target is a descendant of the node", ErrCycleDetected)
		}
		if _, ok := seen[*cur]; ok {
			return fmt.Errorf("%w: ancestor chain loops", ErrCycleDetected)
		}
		seen[*cur] = struct{}{}

		n, err := s.repo.FindByID(ctx, owner, *cur)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		cur = n.ParentID
	}
	return nil
}

func (s *nodeService) Trash(ctx context.Context, owner, id string) (*model.Node, error) {
	out, err := s.repo.SetTrashed(ctx, owner, id, true, s.now())
	if err != nil {
		return nil, mapRowError(err)
	}
	return out, nil
}

func (s *nodeService) Restore(ctx context.Context, owner, id string) (*model.Node, error) {
	out, err := s.repo.SetTrashed(ctx, owner, id, false, s.now())
	if err != nil {
		return nil, mapRowError(err)
	}
	return out, nil
}

func (s *nodeService) HardDelete(ctx context.Context, owner, id string) error {
	return mapRowError(s.repo.Delete(ctx, owner, id))
}

// validateParent checks that parentID, when set, is an active folder of owner.
func (s *nodeService) validateParent(ctx context.Context, owner string, parentID *string) (*model.Node, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := s.repo.FindVisible(ctx, owner, *parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: parent folder not found", ErrInvalidParent)
		}
		return nil, err
	}
	if !parent.IsFolder {
		return nil, fmt.Errorf("%w: parent is not a folder", ErrInvalidParent)
	}
	return parent, nil
}

// inNamespace reports whether key lives under the "<owner>/" prefix.
func inNamespace(owner, key string) bool {
	rest, ok := strings.CutPrefix(key, owner+"/")
	return ok && rest != "" && !slices.Contains(strings.Split(rest, "/"), "..")
}

func mapCreateError(err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: storage key already bound to another node", ErrInvalidInput)
	case errors.Is(err, repository.ErrMissingReference):
		return fmt.Errorf("%w: parent no longer exists", ErrInvalidParent)
	}
	return err
}

// mapRowError turns a missing row into ErrNotFound.
func mapRowError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
