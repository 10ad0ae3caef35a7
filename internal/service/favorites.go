package service

import (
	"context"
	"time"

	"skystash/internal/repository"
)

// FavoriteService maintains the caller's starred nodes.
type FavoriteService interface {
	// Star marks an owned node as favorite. Starring twice is a no-op.
	Star(ctx context.Context, owner, nodeID string) error
	// Unstar removes the mark if present.
	Unstar(ctx context.Context, owner, nodeID string) error
}

type favoriteService struct {
	nodes repository.NodeRepository
	stars repository.StarRepository
	now   func() time.Time
}

// NewFavoriteService constructs a new FavoriteService.
func NewFavoriteService(nodes repository.NodeRepository, stars repository.StarRepository) FavoriteService {
	return &favoriteService{nodes: nodes, stars: stars, now: utcNow}
}

func (s *favoriteService) Star(ctx context.Context, owner, nodeID string) error {
	if _, err := s.nodes.FindByID(ctx, owner, nodeID); err != nil {
		return mapRowError(err)
	}
	return s.stars.Add(ctx, owner, nodeID, s.now())
}

func (s *favoriteService) Unstar(ctx context.Context, owner, nodeID string) error {
	return s.stars.Remove(ctx, owner, nodeID)
}
