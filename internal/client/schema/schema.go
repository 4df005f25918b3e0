// Package schema performs shallow shape checks of JSON values against the
// bundled descriptors and stamps collections with their schema versions.
//
// Validation looks at the top level only: the declared type and the
// presence of required fields. It is not a JSON Schema implementation.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

const (
	TypeObject = "object"
	TypeArray  = "array"
)

// Descriptor is the subset of a schema document validation looks at.
type Descriptor struct {
	Name       string                     `json:"-"`
	Title      string                     `json:"title"`
	Type       string                     `json:"type"`
	Required   []string                   `json:"required,omitempty"`
	Properties map[string]json.RawMessage `json:"properties,omitempty"`
}

type Result struct {
	Valid        bool
	Errors       []string
	VersionMatch bool
}

var descriptors = mustLoad()

func mustLoad() map[string]*Descriptor {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		panic(err)
	}

	out := make(map[string]*Descriptor, len(entries))
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			panic(err)
		}
		var d Descriptor
		if err := json.Unmarshal(data, &d); err != nil {
			panic(fmt.Errorf("schema %s: %w", e.Name(), err))
		}
		d.Name = strings.TrimSuffix(e.Name(), ".schema.json")
		out[d.Name] = &d
	}
	return out
}

// Lookup returns the bundled descriptor with the given name, e.g.
// "kanban-data".
func Lookup(name string) (*Descriptor, bool) {
	d, ok := descriptors[name]
	return d, ok
}

// Names lists the bundled descriptors.
func Names() []string {
	names := make([]string, 0, len(descriptors))
	for n := range descriptors {
		names = append(names, n)
	}
	return names
}

func mustLookup(name string) *Descriptor {
	d, ok := Lookup(name)
	if !ok {
		panic("schema: missing descriptor " + name)
	}
	return d
}

// Validate checks data against d. Values that are not already generic JSON
// (maps, slices, scalars as produced by encoding/json) are round-tripped
// through JSON first, so structs are checked by their JSON field names.
func Validate(data any, d *Descriptor) Result {
	v := normalize(data)
	errs := []string{}

	switch d.Type {
	case TypeArray:
		if _, ok := v.([]any); !ok {
			return Result{Valid: false, Errors: append(errs, "Data is not an array"), VersionMatch: true}
		}
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok || obj == nil {
			return Result{Valid: false, Errors: append(errs, "Data is not an object"), VersionMatch: true}
		}
		for _, field := range d.Required {
			if _, present := obj[field]; !present {
				errs = append(errs, "Missing required field: "+field)
			}
		}
	}

	return Result{
		Valid:        len(errs) == 0,
		Errors:       errs,
		VersionMatch: versionCheck(v, d),
	}
}

// ValidateJSON decodes raw and validates it. Undecodable input is reported
// as a single error.
func ValidateJSON(raw []byte, d *Descriptor) Result {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Result{Valid: false, Errors: []string{"Invalid JSON: " + err.Error()}, VersionMatch: true}
	}
	return Validate(v, d)
}

func ValidateProjects(data any) Result {
	return Validate(data, mustLookup("projects-data"))
}

func ValidateKanban(data any) Result {
	return Validate(data, mustLookup("kanban-data"))
}

// versionCheck does not compare anything yet and always reports a match.
// What a mismatch should do is undecided; do not rely on VersionMatch.
func versionCheck(any, *Descriptor) bool {
	return true
}

func normalize(data any) any {
	switch v := data.(type) {
	case nil, bool, float64, string, []any, map[string]any:
		return v
	case json.RawMessage:
		var out any
		if err := json.Unmarshal(v, &out); err != nil {
			return nil
		}
		return out
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
