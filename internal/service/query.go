package service

import (
	"context"
	"fmt"
	"strings"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// View selects which slice of the owner's nodes List returns.
type View string

const (
	ViewDrive View = "drive"
	ViewTrash View = "trash"
)

// RecentLimit is the number of nodes returned by Recent.
const RecentLimit = 20

// ListQuery holds the raw listing parameters as received from a client.
// Empty fields take their defaults: drive view, name, ascending.
type ListQuery struct {
	ParentID  *string
	View      string
	SortBy    string
	SortOrder string
}

// QueryService answers read-only listing questions. Every returned node is
// annotated with the caller's favorite state.
type QueryService interface {
	// List returns the direct visible children of ParentID (drive view) or every trashed node (trash view).
	List(ctx context.Context, owner string, q ListQuery) ([]model.NodeView, error)

	// Search matches visible node names containing query, ignoring case.
	Search(ctx context.Context, owner, query string) ([]model.NodeView, error)

	Recent(ctx context.Context, owner string) ([]model.NodeView, error)

	// Starred resolves the caller's stars to visible nodes; dangling stars are dropped.
	Starred(ctx context.Context, owner string) ([]model.NodeView, error)
}

type queryService struct {
	nodes repository.NodeRepository
	stars repository.StarRepository
}

// NewQueryService constructs a new QueryService.
func NewQueryService(nodes repository.NodeRepository, stars repository.StarRepository) QueryService {
	return &queryService{nodes: nodes, stars: stars}
}

func (s *queryService) List(ctx context.Context, owner string, q ListQuery) ([]model.NodeView, error) {
	view := View(strings.ToLower(q.View))
	if view == "" {
		view = ViewDrive
	}

	switch view {
	case ViewTrash:
		return s.nodes.ListTrashed(ctx, owner)
	case ViewDrive:
		sort, err := parseSort(q.SortBy, q.SortOrder)
		if err != nil {
			return nil, err
		}
		return s.nodes.ListChildren(ctx, owner, q.ParentID, sort)
	default:
		return nil, fmt.Errorf("%w: unknown view %q", ErrInvalidInput, q.View)
	}
}

func parseSort(by, order string) (repository.Sort, error) {
	field := repository.SortField(strings.ToLower(by))
	if field == "" {
		field = repository.SortByName
	}
	if _, ok := field.Column(); !ok {
		return repository.Sort{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, by)
	}

	switch strings.ToLower(order) {
	case "", "asc":
		return repository.Sort{Field: field}, nil
	case "desc":
		return repository.Sort{Field: field, Desc: true}, nil
	default:
		return repository.Sort{}, fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, order)
	}
}

func (s *queryService) Search(ctx context.Context, owner, query string) ([]model.NodeView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.nodes.Search(ctx, owner, query)
}

func (s *queryService) Recent(ctx context.Context, owner string) ([]model.NodeView, error) {
	return s.nodes.ListRecent(ctx, owner, RecentLimit)
}

func (s *queryService) Starred(ctx context.Context, owner string) ([]model.NodeView, error) {
	return s.stars.ListNodes(ctx, owner)
}
