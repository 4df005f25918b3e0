package theme

import (
	"slices"
	"sync"
)

// Element is the part of a rendered node the presenter touches.
type Element interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	HasClass(class string) bool
	SetStyle(property, value string)
}

// Document gives access to the root node and simple element queries.
type Document interface {
	Root() Element
	QueryAttr(name, value string) []Element
	QueryClass(class string) []Element
}

// MemoryElement is an Element kept in memory. The CLI views and the tests
// render into these.
type MemoryElement struct {
	mu      sync.RWMutex
	id      string
	attrs   map[string]string
	classes []string
	style   map[string]string
}

func NewElement(id string, classes ...string) *MemoryElement {
	return &MemoryElement{
		id:      id,
		attrs:   map[string]string{},
		classes: classes,
		style:   map[string]string{},
	}
}

func (e *MemoryElement) ID() string { return e.id }

func (e *MemoryElement) Attr(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.attrs[name]
	return v, ok
}

func (e *MemoryElement) SetAttr(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

func (e *MemoryElement) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

func (e *MemoryElement) SetStyle(property, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.style[property] = value
}

func (e *MemoryElement) Style(property string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.style[property]
}

// MemoryDocument is a flat in-memory Document.
type MemoryDocument struct {
	root *MemoryElement

	mu       sync.RWMutex
	elements []*MemoryElement
}

func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{root: NewElement("html")}
}

func (d *MemoryDocument) Root() Element { return d.root }

// Append adds elements to the document body.
func (d *MemoryDocument) Append(els ...*MemoryElement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = append(d.elements, els...)
}

// Reset drops every element but keeps the root and its attributes.
func (d *MemoryDocument) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = nil
}

func (d *MemoryDocument) Elements() []*MemoryElement {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.elements)
}

func (d *MemoryDocument) QueryAttr(name, value string) []Element {
	var out []Element
	for _, e := range d.Elements() {
		if v, ok := e.Attr(name); ok && v == value {
			out = append(out, e)
		}
	}
	return out
}

func (d *MemoryDocument) QueryClass(class string) []Element {
	var out []Element
	for _, e := range d.Elements() {
		if e.HasClass(class) {
			out = append(out, e)
		}
	}
	return out
}
