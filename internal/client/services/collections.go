package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/celerix-dev/flowclient/internal/client/schema"
	"github.com/celerix-dev/flowclient/internal/common"
	"github.com/celerix-dev/flowclient/internal/logging"
)

// KanbanService reads and writes the board stored under KANBAN.
type KanbanService interface {
	Load(ctx context.Context) ([]models.KanbanColumn, error)
	Save(ctx context.Context, columns []models.KanbanColumn) error
}

// ProjectService reads and writes the collection stored under PROJECTS.
type ProjectService interface {
	Load(ctx context.Context) ([]models.Project, error)
	Save(ctx context.Context, projects []models.Project) error
}

type kanbanService struct {
	store BlobStore
	log   logging.Logger
}

func NewKanbanService(store BlobStore, log logging.Logger) KanbanService {
	return &kanbanService{store: store, log: log.With("component", "kanban")}
}

// Load returns the stored columns. No data, and data that fails the
// kanban-data shape check, both read as an empty board.
func (s *kanbanService) Load(ctx context.Context) ([]models.KanbanColumn, error) {
	var board models.KanbanData
	ok, err := loadValidated(ctx, s.store, s.log, common.KeyKanban, schema.ValidateKanban, &board)
	if err != nil || !ok {
		return []models.KanbanColumn{}, err
	}
	if board.Columns == nil {
		board.Columns = []models.KanbanColumn{}
	}
	return board.Columns, nil
}

// Save stamps schema versions onto the board and stores it.
func (s *kanbanService) Save(ctx context.Context, columns []models.KanbanColumn) error {
	return s.store.Save(ctx, common.KeyKanban, schema.VersionedKanban(columns))
}

type projectService struct {
	store BlobStore
	log   logging.Logger
}

func NewProjectService(store BlobStore, log logging.Logger) ProjectService {
	return &projectService{store: store, log: log.With("component", "projects")}
}

func (s *projectService) Load(ctx context.Context) ([]models.Project, error) {
	var data models.ProjectsData
	ok, err := loadValidated(ctx, s.store, s.log, common.KeyProjects, schema.ValidateProjects, &data)
	if err != nil || !ok {
		return []models.Project{}, err
	}
	if data.Projects == nil {
		data.Projects = []models.Project{}
	}
	return data.Projects, nil
}

func (s *projectService) Save(ctx context.Context, projects []models.Project) error {
	return s.store.Save(ctx, common.KeyProjects, schema.VersionedProjects(projects))
}

// loadValidated loads key, checks its shape and decodes it into dst. It
// reports false when there is nothing usable stored.
func loadValidated(
	ctx context.Context,
	store BlobStore,
	log logging.Logger,
	key string,
	validate func(any) schema.Result,
	dst any,
) (bool, error) {
	raw, err := store.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}

	if res := validate(raw); !res.Valid {
		log.Warn(ctx, "stored data failed validation", "key", key, "errors", res.Errors)
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn(ctx, "stored data could not be decoded", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}
