package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skystash/internal/model"
	"skystash/internal/repository"
	repoMocks "skystash/internal/repository/mocks"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newTestNodeService(repo *repoMocks.MockNodeRepository) *nodeService {
	return &nodeService{repo: repo, now: func() time.Time { return fixedNow }}
}

func TestNodeService_CreateFolder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		folderName string
		parentID   *string
		setupMocks func(m *repoMocks.MockNodeRepository)
		wantErr    error
	}{
		{
			name:       "root folder",
			folderName: "  Docs ",
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(n *model.Node) bool {
					return n.Name == "Docs" && n.IsFolder && n.ParentID == nil &&
						n.OwnerID == "user-a" && n.ID != "" && n.CreatedAt.Equal(fixedNow)
				})).Return(&model.Node{ID: "f1", Name: "Docs", IsFolder: true}, nil)
			},
		},
		{
			name:       "blank name",
			folderName: "   ",
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "missing parent",
			folderName: "Sub",
			parentID:   strPtr("p1"),
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("FindVisible", ctx, "user-a", "p1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidParent,
		},
		{
			name:       "parent is a file",
			folderName: "Sub",
			parentID:   strPtr("p1"),
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("FindVisible", ctx, "user-a", "p1").Return(&model.Node{ID: "p1"}, nil)
			},
			wantErr: ErrInvalidParent,
		},
		{
			name:       "parent deleted concurrently",
			folderName: "Sub",
			parentID:   strPtr("p1"),
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("FindVisible", ctx, "user-a", "p1").Return(&model.Node{ID: "p1", IsFolder: true}, nil)
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrMissingReference)
			},
			wantErr: ErrInvalidParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockNodeRepository)
			tt.setupMocks(m)
			s := newTestNodeService(m)

			out, err := s.CreateFolder(ctx, "user-a", tt.folderName, tt.parentID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "f1", out.ID)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestNodeService_CommitFileMetadata(t *testing.T) {
	ctx := context.Background()
	valid := FileMetadata{Name: "a.txt", StorageKey: "user-a/1700000000000_a.txt", MimeType: "text/plain", Size: 5}

	tests := []struct {
		name       string
		in         func() FileMetadata
		setupMocks func(m *repoMocks.MockNodeRepository)
		wantErr    error
	}{
		{
			name: "success",
			in:   func() FileMetadata { return valid },
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(n *model.Node) bool {
					return !n.IsFolder && *n.StorageKey == valid.StorageKey &&
						*n.MimeType == "text/plain" && *n.SizeBytes == 5
				})).Return(&model.Node{ID: "n1"}, nil)
			},
		},
		{
			name: "default mime type",
			in: func() FileMetadata {
				in := valid
				in.MimeType = ""
				return in
			},
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(n *model.Node) bool {
					return *n.MimeType == "application/octet-stream"
				})).Return(&model.Node{ID: "n1"}, nil)
			},
		},
		{
			name:       "empty name",
			in:         func() FileMetadata { in := valid; in.Name = ""; return in },
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "negative size",
			in:         func() FileMetadata { in := valid; in.Size = -1; return in },
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "empty storage key",
			in:         func() FileMetadata { in := valid; in.StorageKey = ""; return in },
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "foreign namespace",
			in:         func() FileMetadata { in := valid; in.StorageKey = "user-b/1_a.txt"; return in },
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "prefix lookalike",
			in:         func() FileMetadata { in := valid; in.StorageKey = "user-abc/1_a.txt"; return in },
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "path traversal",
			in:         func() FileMetadata { in := valid; in.StorageKey = "user-a/../user-b/1_a.txt"; return in },
			setupMocks: func(m *repoMocks.MockNodeRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name: "storage key already bound",
			in:   func() FileMetadata { return valid },
			setupMocks: func(m *repoMocks.MockNodeRepository) {
				m.On("Create", ctx, mock.Anything).Return(nil, repository.ErrConflict)
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockNodeRepository)
			tt.setupMocks(m)
			s := newTestNodeService(m)

			out, err := s.CommitFileMetadata(ctx, "user-a", tt.in())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "n1", out.ID)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestNodeService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("Rename", ctx, "user-a", "n1", "b.txt", fixedNow).Return(&model.Node{ID: "n1", Name: "b.txt"}, nil)

		out, err := newTestNodeService(m).Rename(ctx, "user-a", "n1", " b.txt ")

		require.NoError(t, err)
		assert.Equal(t, "b.txt", out.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		_, err := newTestNodeService(m).Rename(ctx, "user-a", "n1", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		m.AssertNotCalled(t, "Rename", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not owned", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("Rename", ctx, "user-a", "n1", "b.txt", fixedNow).Return(nil, sql.ErrNoRows)
		_, err := newTestNodeService(m).Rename(ctx, "user-a", "n1", "b.txt")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("db error passes through", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		dbErr := errors.New("connection reset")
		m.On("Rename", ctx, "user-a", "n1", "b.txt", fixedNow).Return(nil, dbErr)
		_, err := newTestNodeService(m).Rename(ctx, "user-a", "n1", "b.txt")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestNodeService_Move(t *testing.T) {
	ctx := context.Background()
	node := &model.Node{ID: "n1", OwnerID: "user-a"}

	t.Run("node not found", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("FindByID", ctx, "user-a", "n1").Return(nil, sql.ErrNoRows)
		_, err := newTestNodeService(m).Move(ctx, "user-a", "n1", strPtr("p1"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("into itself", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("FindByID", ctx, "user-a", "n1").Return(node, nil)
		_, err := newTestNodeService(m).Move(ctx, "user-a", "n1", strPtr("n1"))
		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("to root skips the walk", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("FindByID", ctx, "user-a", "n1").Return(node, nil)
		m.On("Move", ctx, "user-a", "n1", (*string)(nil), fixedNow).Return(&model.Node{ID: "n1"}, nil)

		out, err := newTestNodeService(m).Move(ctx, "user-a", "n1", nil)

		require.NoError(t, err)
		assert.Nil(t, out.ParentID)
		m.AssertNotCalled(t, "FindVisible", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("walk finds descendant", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("FindByID", ctx, "user-a", "n1").Return(node, nil)
		m.On("FindVisible", ctx, "user-a", "p2").Return(&model.Node{ID: "p2", IsFolder: true, ParentID: strPtr("p1")}, nil)
		m.On("FindByID", ctx, "user-a", "p1").Return(&model.Node{ID: "p1", IsFolder: true, ParentID: strPtr("n1")}, nil)

		_, err := newTestNodeService(m).Move(ctx, "user-a", "n1", strPtr("p2"))

		assert.ErrorIs(t, err, ErrCycleDetected)
		m.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("walk detects a pre-existing loop", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("FindByID", ctx, "user-a", "n1").Return(node, nil)
		m.On("FindVisible", ctx, "user-a", "p1").Return(&model.Node{ID: "p1", IsFolder: true, ParentID: strPtr("p2")}, nil)
		m.On("FindByID", ctx, "user-a", "p2").Return(&model.Node{ID: "p2", IsFolder: true, ParentID: strPtr("p1")}, nil)

		_, err := newTestNodeService(m).Move(ctx, "user-a", "n1", strPtr("p1"))

		assert.ErrorIs(t, err, ErrCycleDetected)
	})

	t.Run("success", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("FindByID", ctx, "user-a", "n1").Return(node, nil)
		m.On("FindVisible", ctx, "user-a", "p2").Return(&model.Node{ID: "p2", IsFolder: true, ParentID: strPtr("p1")}, nil)
		m.On("FindByID", ctx, "user-a", "p1").Return(&model.Node{ID: "p1", IsFolder: true}, nil)
		m.On("Move", ctx, "user-a", "n1", strPtr("p2"), fixedNow).Return(&model.Node{ID: "n1", ParentID: strPtr("p2")}, nil)

		out, err := newTestNodeService(m).Move(ctx, "user-a", "n1", strPtr("p2"))

		require.NoError(t, err)
		assert.Equal(t, "p2", *out.ParentID)
		m.AssertExpectations(t)
	})
}

func TestNodeService_CheckAncestorsDepthLimit(t *testing.T) {
	ctx := context.Background()

	chain := func(length int) (*memStore, *model.Node) {
		store := newMemStore()
		for i := 0; i < length; i++ {
			n := model.Node{ID: fmt.Sprintf("c%d", i), OwnerID: "user-a", IsFolder: true}
			if i+1 < length {
				n.ParentID = strPtr(fmt.Sprintf("c%d", i+1))
			}
			store.nodes[n.ID] = n
		}
		bottom := store.nodes["c0"]
		return store, &bottom
	}

	store, bottom := chain(maxAncestorDepth + 10)
	s := &nodeService{repo: store, now: func() time.Time { return fixedNow }}
	assert.ErrorIs(t, s.checkAncestors(ctx, "user-a", "n1", bottom), ErrCycleDetected)

	store, bottom = chain(100)
	s = &nodeService{repo: store, now: func() time.Time { return fixedNow }}
	assert.NoError(t, s.checkAncestors(ctx, "user-a", "n1", bottom))
}

func TestNodeService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("trash", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("SetTrashed", ctx, "user-a", "n1", true, fixedNow).Return(&model.Node{ID: "n1", IsDeleted: true}, nil)
		out, err := newTestNodeService(m).Trash(ctx, "user-a", "n1")
		require.NoError(t, err)
		assert.True(t, out.IsDeleted)
	})

	t.Run("restore not found", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("SetTrashed", ctx, "user-a", "n1", false, fixedNow).Return(nil, sql.ErrNoRows)
		_, err := newTestNodeService(m).Restore(ctx, "user-a", "n1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("hard delete", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("Delete", ctx, "user-a", "n1").Return(nil)
		assert.NoError(t, newTestNodeService(m).HardDelete(ctx, "user-a", "n1"))
	})

	t.Run("hard delete not found", func(t *testing.T) {
		m := new(repoMocks.MockNodeRepository)
		m.On("Delete", ctx, "user-a", "n1").Return(sql.ErrNoRows)
		assert.ErrorIs(t, newTestNodeService(m).HardDelete(ctx, "user-a", "n1"), ErrNotFound)
	})
}
