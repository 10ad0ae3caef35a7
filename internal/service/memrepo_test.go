package service

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"strings"
	"sync"
	"time"

	"skystash/internal/model"
	"skystash/internal/repository"
)

// memStore is an in-memory NodeRepository and StarRepository with the same
// visibility and ordering rules as the PostgreSQL implementation.
type memStore struct {
	mu    sync.Mutex
	nodes map[string]model.Node
	keys  map[string]string
	stars map[string]map[string]time.Time
}

var (
	_ repository.NodeRepository = (*memStore)(nil)
	_ repository.StarRepository = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		nodes: map[string]model.Node{},
		keys:  map[string]string{},
		stars: map[string]map[string]time.Time{},
	}
}

func (m *memStore) owned(ownerID, id string) (model.Node, bool) {
	n, ok := m.nodes[id]
	if !ok || n.OwnerID != ownerID {
		return model.Node{}, false
	}
	return n, true
}

// hidden reports whether n or an ancestor is trashed.
func (m *memStore) hidden(n model.Node) bool {
	seen := map[string]bool{}
	for {
		if n.IsDeleted {
			return true
		}
		if n.ParentID == nil || seen[n.ID] {
			return false
		}
		seen[n.ID] = true
		p, ok := m.nodes[*n.ParentID]
		if !ok {
			return false
		}
		n = p
	}
}

func (m *memStore) view(ownerID string, n model.Node) model.NodeView {
	_, starred := m.stars[ownerID][n.ID]
	return model.NodeView{Node: n, IsStarred: starred}
}

func (m *memStore) Create(_ context.Context, n *model.Node) (*model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.StorageKey != nil {
		if _, dup := m.keys[*n.StorageKey]; dup {
			return nil, repository.ErrConflict
		}
	}
	if n.ParentID != nil {
		if _, ok := m.nodes[*n.ParentID]; !ok {
			return nil, repository.ErrMissingReference
		}
	}
	out := *n
	out.IsDeleted = false
	out.DeletedAt = nil
	out.UpdatedAt = n.CreatedAt
	m.nodes[out.ID] = out
	if out.StorageKey != nil {
		m.keys[*out.StorageKey] = out.ID
	}
	return &out, nil
}

func (m *memStore) FindByID(_ context.Context, ownerID, id string) (*model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.owned(ownerID, id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &n, nil
}

func (m *memStore) FindVisible(_ context.Context, ownerID, id string) (*model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.owned(ownerID, id)
	if !ok || m.hidden(n) {
		return nil, sql.ErrNoRows
	}
	return &n, nil
}

func (m *memStore) update(ownerID, id string, fn func(n *model.Node)) (*model.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.owned(ownerID, id)
	if !ok {
		return nil, sql.ErrNoRows
	}
	fn(&n)
	m.nodes[id] = n
	return &n, nil
}

func (m *memStore) Rename(_ context.Context, ownerID, id, name string, at time.Time) (*model.Node, error) {
	return m.update(ownerID, id, func(n *model.Node) {
		n.Name = name
		n.UpdatedAt = at
	})
}

func (m *memStore) Move(_ context.Context, ownerID, id string, parentID *string, at time.Time) (*model.Node, error) {
	return m.update(ownerID, id, func(n *model.Node) {
		n.ParentID = parentID
		n.UpdatedAt = at
	})
}

func (m *memStore) SetTrashed(_ context.Context, ownerID, id string, trashed bool, at time.Time) (*model.Node, error) {
	return m.update(ownerID, id, func(n *model.Node) {
		if trashed {
			if n.DeletedAt == nil {
				n.DeletedAt = &at
			}
		} else {
			n.DeletedAt = nil
		}
		n.IsDeleted = trashed
		n.UpdatedAt = at
	})
}

func (m *memStore) Delete(_ context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.owned(ownerID, id); !ok {
		return sql.ErrNoRows
	}
	doomed := []string{id}
	for len(doomed) > 0 {
		cur := doomed[0]
		doomed = doomed[1:]
		if n, ok := m.nodes[cur]; ok && n.StorageKey != nil {
			delete(m.keys, *n.StorageKey)
		}
		delete(m.nodes, cur)
		for cid, c := range m.nodes {
			if c.ParentID != nil && *c.ParentID == cur {
				doomed = append(doomed, cid)
			}
		}
	}
	return nil
}

func (m *memStore) collect(ownerID string, keep func(n model.Node) bool) []model.NodeView {
	out := make([]model.NodeView, 0)
	for _, n := range m.nodes {
		if n.OwnerID == ownerID && keep(n) {
			out = append(out, m.view(ownerID, n))
		}
	}
	return out
}

func (m *memStore) ListChildren(_ context.Context, ownerID string, parentID *string, sort repository.Sort) ([]model.NodeView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.collect(ownerID, func(n model.Node) bool {
		sameParent := (parentID == nil && n.ParentID == nil) ||
			(parentID != nil && n.ParentID != nil && *n.ParentID == *parentID)
		return sameParent && !m.hidden(n)
	})
	slices.SortFunc(out, func(a, b model.NodeView) int {
		if a.IsFolder != b.IsFolder {
			if a.IsFolder {
				return -1
			}
			return 1
		}
		c := compareField(a.Node, b.Node, sort.Field)
		if sort.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func compareField(a, b model.Node, f repository.SortField) int {
	switch f {
	case repository.SortBySize, "size_bytes":
		return cmp.Compare(deref(a.SizeBytes), deref(b.SizeBytes))
	case repository.SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case repository.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case repository.SortByMimeType:
		return strings.Compare(deref(a.MimeType), deref(b.MimeType))
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (m *memStore) ListTrashed(_ context.Context, ownerID string) ([]model.NodeView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.collect(ownerID, func(n model.Node) bool { return n.IsDeleted })
	slices.SortFunc(out, func(a, b model.NodeView) int {
		if c := b.DeletedAt.Compare(*a.DeletedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *memStore) Search(_ context.Context, ownerID, query string) ([]model.NodeView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	out := m.collect(ownerID, func(n model.Node) bool {
		return strings.Contains(strings.ToLower(n.Name), q) && !m.hidden(n)
	})
	slices.SortFunc(out, func(a, b model.NodeView) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (m *memStore) ListRecent(_ context.Context, ownerID string, limit int) ([]model.NodeView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.collect(ownerID, func(n model.Node) bool { return !m.hidden(n) })
	slices.SortFunc(out, func(a, b model.NodeView) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), strings.Compare(a.ID, b.ID))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Add(_ context.Context, userID, nodeID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stars[userID] == nil {
		m.stars[userID] = map[string]time.Time{}
	}
	if _, ok := m.stars[userID][nodeID]; !ok {
		m.stars[userID][nodeID] = at
	}
	return nil
}

func (m *memStore) Remove(_ context.Context, userID, nodeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stars[userID], nodeID)
	return nil
}

func (m *memStore) ListNodes(_ context.Context, userID string) ([]model.NodeView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.NodeView, 0)
	for id := range m.stars[userID] {
		n, ok := m.owned(userID, id)
		if ok && !m.hidden(n) {
			out = append(out, m.view(userID, n))
		}
	}
	slices.SortFunc(out, func(a, b model.NodeView) int {
		ta, tb := m.stars[userID][a.ID], m.stars[userID][b.ID]
		return cmp.Or(tb.Compare(ta), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

// clock returns increasing timestamps so updated_at strictly advances.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}
