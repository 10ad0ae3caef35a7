package model

import "time"

// Role is the capability level carried by a Share.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleViewer || r == RoleEditor
}

// Share grants a specific user a role on a resource.
type Share struct {
	ID            string    `json:"id"`
	ResourceID    string    `json:"resource_id"`
	GranteeUserID string    `json:"grantee_user_id"`
	Role          Role      `json:"role"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// LinkShare is a public capability token for a resource.
type LinkShare struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	Token      string    `json:"token"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// Grantee is a Share resolved to the grantee's identity.
type Grantee struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Grantee User   `json:"grantee"`
}

// LinkTarget is what a public link token resolves to.
// Files carry DownloadURL; folders carry their visible direct children.
type LinkTarget struct {
	Node        PublicNode   `json:"node"`
	DownloadURL string       `json:"download_url,omitempty"`
	Children    []PublicNode `json:"children,omitempty"`
}
