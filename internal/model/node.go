package model

import "time"

// Node is a file or folder in an owner's hierarchy.
// ParentID nil means the node sits at the owner's root. StorageKey, MimeType and
// SizeBytes are only populated for files.
type Node struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Name       string     `json:"name"`
	IsFolder   bool       `json:"is_folder"`
	ParentID   *string    `json:"parent_id"`
	StorageKey *string    `json:"path"`
	MimeType   *string    `json:"mime_type"`
	SizeBytes  *int64     `json:"size_bytes"`
	IsDeleted  bool       `json:"is_deleted"`
	DeletedAt  *time.Time `json:"deleted_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NodeView is a Node as returned by listing queries, annotated with the
// caller's favorite state.
type NodeView struct {
	Node
	IsStarred bool `json:"is_starred"`
}

// PublicNode is the view of a Node shown to anonymous link holders.
// It leaves out the owner, the hierarchy and the storage key.
type PublicNode struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsFolder  bool      `json:"is_folder"`
	MimeType  *string   `json:"mime_type"`
	SizeBytes *int64    `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the anonymous view of n.
func (n Node) Public() PublicNode {
	return PublicNode{
		ID:        n.ID,
		Name:      n.Name,
		IsFolder:  n.IsFolder,
		MimeType:  n.MimeType,
		SizeBytes: n.SizeBytes,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
