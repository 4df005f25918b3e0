package models

type ProjectUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Version string `json:"version,omitempty"`
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Users       []ProjectUser `json:"users,omitempty"`
	CreatedAt   int64         `json:"createdAt,omitempty"`
	Version     string        `json:"version,omitempty"`
}

// ProjectsData is the versioned collection stored under PROJECTS.
type ProjectsData struct {
	Version  string    `json:"version"`
	Projects []Project `json:"projects"`
}
