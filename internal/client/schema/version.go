package schema

import "github.com/celerix-dev/flowclient/internal/client/models"

// Schema versions stamped onto persisted collections and their items.
const (
	VersionKanban       = "1.0.0"
	VersionProjects     = "1.0.0"
	VersionProjectUser  = "1.0.0"
	VersionProject      = "1.0.0"
	VersionKanbanCard   = "1.0.0"
	VersionKanbanColumn = "1.0.0"
)

// VersionedProjects wraps projects for persistence, tagging the collection
// and every project. The input is not modified.
func VersionedProjects(projects []models.Project) models.ProjectsData {
	out := make([]models.Project, len(projects))
	for i, p := range projects {
		p.Version = VersionProject
		out[i] = p
	}
	return models.ProjectsData{Version: VersionProjects, Projects: out}
}

// VersionedKanban wraps columns for persistence, tagging the board, every
// column and every card. The input is not modified.
func VersionedKanban(columns []models.KanbanColumn) models.KanbanData {
	out := make([]models.KanbanColumn, len(columns))
	for i, col := range columns {
		cards := make([]models.KanbanCard, len(col.Cards))
		for j, card := range col.Cards {
			card.Version = VersionKanbanCard
			cards[j] = card
		}
		col.Cards = cards
		col.Version = VersionKanbanColumn
		out[i] = col
	}
	return models.KanbanData{Version: VersionKanban, Columns: out}
}
