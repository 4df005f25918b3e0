package schema

import (
	"encoding/json"
	"testing"

	"github.com/celerix-dev/flowclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	object := &Descriptor{Type: TypeObject, Required: []string{"a"}}

	tests := []struct {
		name string
		data any
		d    *Descriptor
		want Result
	}{
		{
			name: "missing required field",
			data: map[string]any{},
			d:    object,
			want: Result{Valid: false, Errors: []string{"Missing required field: a"}, VersionMatch: true},
		},
		{
			name: "empty array",
			data: []any{},
			d:    &Descriptor{Type: TypeArray},
			want: Result{Valid: true, Errors: []string{}, VersionMatch: true},
		},
		{
			name: "number is not an object",
			data: 5,
			d:    &Descriptor{Type: TypeObject},
			want: Result{Valid: false, Errors: []string{"Data is not an object"}, VersionMatch: true},
		},
		{
			name: "null is not an object",
			data: nil,
			d:    object,
			want: Result{Valid: false, Errors: []string{"Data is not an object"}, VersionMatch: true},
		},
		{
			name: "array is not an object",
			data: []any{1},
			d:    object,
			want: Result{Valid: false, Errors: []string{"Data is not an object"}, VersionMatch: true},
		},
		{
			name: "empty array is not an object even with required fields",
			data: []any{},
			d:    object,
			want: Result{Valid: false, Errors: []string{"Data is not an object"}, VersionMatch: true},
		},
		{
			name: "object is not an array",
			data: map[string]any{},
			d:    &Descriptor{Type: TypeArray},
			want: Result{Valid: false, Errors: []string{"Data is not an array"}, VersionMatch: true},
		},
		{
			name: "falsy values count as present",
			data: map[string]any{"a": 0, "b": false, "c": "", "d": nil},
			d:    &Descriptor{Type: TypeObject, Required: []string{"a", "b", "c", "d"}},
			want: Result{Valid: true, Errors: []string{}, VersionMatch: true},
		},
		{
			name: "errors keep required order",
			data: map[string]any{"b": 1},
			d:    &Descriptor{Type: TypeObject, Required: []string{"c", "b", "a"}},
			want: Result{Valid: false, Errors: []string{"Missing required field: c", "Missing required field: a"}, VersionMatch: true},
		},
		{
			name: "untyped descriptor accepts anything",
			data: "hello",
			d:    &Descriptor{},
			want: Result{Valid: true, Errors: []string{}, VersionMatch: true},
		},
		{
			name: "typed slice is an array",
			data: []int{1, 2},
			d:    &Descriptor{Type: TypeArray},
			want: Result{Valid: true, Errors: []string{}, VersionMatch: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.data, tt.d))
		})
	}
}

func TestValidate_StructsUseJSONNames(t *testing.T) {
	d := &Descriptor{Type: TypeObject, Required: []string{"activeProjectId", "nickname"}}
	res := Validate(models.UserPreferences{Nickname: "x"}, d)
	assert.True(t, res.Valid, res.Errors)

	res = Validate(&models.UserPreferences{}, d)
	assert.True(t, res.Valid, res.Errors)

	var nilPrefs *models.UserPreferences
	res = Validate(nilPrefs, d)
	assert.Equal(t, []string{"Data is not an object"}, res.Errors)
}

func TestValidateJSON(t *testing.T) {
	d, ok := Lookup("kanban-data")
	require.True(t, ok)

	assert.True(t, ValidateJSON([]byte(`{"columns":[]}`), d).Valid)
	assert.Equal(t, []string{"Missing required field: columns"}, ValidateJSON([]byte(`{"version":"1.0.0"}`), d).Errors)

	res := ValidateJSON([]byte(`{`), d)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Invalid JSON")

	res = ValidateJSON(json.RawMessage(`null`), d)
	assert.Equal(t, []string{"Data is not an object"}, res.Errors)
}

func TestBundledDescriptors(t *testing.T) {
	assert.ElementsMatch(t, []string{
		"project-user", "project", "projects-data",
		"kanban-card", "kanban-column", "kanban-data",
	}, Names())

	d, ok := Lookup("projects-data")
	require.True(t, ok)
	assert.Equal(t, "ProjectsData", d.Title)
	assert.Equal(t, TypeObject, d.Type)
	assert.Equal(t, []string{"version", "projects"}, d.Required)
	assert.Contains(t, d.Properties, "projects")

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestValidateProjects(t *testing.T) {
	assert.True(t, ValidateProjects(VersionedProjects(nil)).Valid)
	assert.Equal(t,
		[]string{"Missing required field: version", "Missing required field: projects"},
		ValidateProjects(map[string]any{}).Errors)
	assert.Equal(t, []string{"Data is not an object"}, ValidateProjects([]models.Project{}).Errors)
}

func TestValidateKanban(t *testing.T) {
	assert.True(t, ValidateKanban(models.KanbanData{Columns: []models.KanbanColumn{}}).Valid)

	res := ValidateKanban(models.KanbanData{})
	assert.True(t, res.Valid, "columns serializes as null and is still present")

	assert.False(t, ValidateKanban("board").Valid)
}

func TestVersionedProjects(t *testing.T) {
	in := []models.Project{{ID: "1", Name: "A"}, {ID: "2", Name: "B", Version: "0.1.0"}}

	got := VersionedProjects(in)

	assert.Equal(t, VersionProjects, got.Version)
	require.Len(t, got.Projects, 2)
	for _, p := range got.Projects {
		assert.Equal(t, VersionProject, p.Version)
	}
	assert.Empty(t, in[0].Version, "input is left untouched")
	assert.Equal(t, "0.1.0", in[1].Version)
}

func TestVersionedKanban(t *testing.T) {
	in := []models.KanbanColumn{
		{ID: "todo", Title: "To do", Cards: []models.KanbanCard{{ID: "c1", Title: "one"}, {ID: "c2", Title: "two"}}},
		{ID: "done", Title: "Done", Cards: []models.KanbanCard{}},
	}

	got := VersionedKanban(in)

	assert.Equal(t, VersionKanban, got.Version)
	require.Len(t, got.Columns, 2)
	for _, col := range got.Columns {
		assert.Equal(t, VersionKanbanColumn, col.Version)
		for _, card := range col.Cards {
			assert.Equal(t, VersionKanbanCard, card.Version)
		}
	}
	assert.Empty(t, in[0].Cards[0].Version)
	assert.True(t, ValidateKanban(got).Valid)
}
