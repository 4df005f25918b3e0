package models

type KanbanCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Version     string   `json:"version,omitempty"`
}

type KanbanColumn struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Cards   []KanbanCard `json:"cards"`
	Version string       `json:"version,omitempty"`
}

// KanbanData is the versioned board stored under KANBAN.
type KanbanData struct {
	Version string         `json:"version,omitempty"`
	Columns []KanbanColumn `json:"columns"`
}
