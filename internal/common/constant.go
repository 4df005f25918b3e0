// Package common contains wire-level constants shared by the flow client
// packages.
package common

const (
	// HeaderClientID attributes a request to the local client identifier.
	HeaderClientID = "X-Client-ID"

	// HeaderAdminSecret is sent on persona reads and name updates. The
	// client never stores the secret, so the value is always empty.
	HeaderAdminSecret = "X-Admin-Secret"

	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Logical keys understood by the backend's key-value API.
const (
	KeyKanban   = "KANBAN"
	KeyUser     = "USER"
	KeyProjects = "PROJECTS"
)
