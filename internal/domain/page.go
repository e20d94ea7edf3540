package domain

import (
	"encoding/json"
	"fmt"
)

// EntityType names a level of the page tree.
type EntityType string

const (
	EntityNone      EntityType = ""
	EntitySection   EntityType = "section"
	EntityRow       EntityType = "row"
	EntityColumn    EntityType = "column"
	EntityComponent EntityType = "component"
)

// Valid reports whether t is one of the four tree levels below Page.
func (t EntityType) Valid() bool {
	switch t {
	case EntitySection, EntityRow, EntityColumn, EntityComponent:
		return true
	}
	return false
}

// Grid bounds for Column.Span.
const (
	MinSpan     = 1
	MaxSpan     = 12
	DefaultSpan = 6
)

// Page is the root of the document tree.
type Page struct {
	Title    string     `json:"title,omitempty"`
	Sections []*Section `json:"sections"`
}

// Section holds at least one Row.
type Section struct {
	ID   string `json:"id"`
	Rows []*Row `json:"rows"`
}

// Row holds at least one Column.
type Row struct {
	ID      string    `json:"id"`
	Columns []*Column `json:"columns"`
}

// Column is a slot in the 12-unit grid. It may hold no components.
type Column struct {
	ID         string       `json:"id"`
	Span       int          `json:"span"`
	Components []*Component `json:"components"`
}

// Component is a leaf of the tree. Props always matches Type.
type Component struct {
	ID    string        `json:"id"`
	Type  ComponentType `json:"type"`
	Props Props         `json:"props"`
}

type componentJSON struct {
	ID    string          `json:"id"`
	Type  ComponentType   `json:"type"`
	Props json.RawMessage `json:"props"`
}

// UnmarshalJSON decodes props into the variant selected by type.
func (c *Component) UnmarshalJSON(data []byte) error {
	var raw componentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	props, err := decodeProps(raw.Type, raw.Props)
	if err != nil {
		return fmt.Errorf("component %s: %w", raw.ID, err)
	}
	c.ID = raw.ID
	c.Type = raw.Type
	c.Props = props
	return nil
}

// ClampSpan forces span into [MinSpan, MaxSpan].
func ClampSpan(span int) int {
	if span < MinSpan {
		return MinSpan
	}
	if span > MaxSpan {
		return MaxSpan
	}
	return span
}
