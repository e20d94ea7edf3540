package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ComponentType is the closed set of component kinds.
type ComponentType string

const (
	ComponentText    ComponentType = "text"
	ComponentButton  ComponentType = "button"
	ComponentImage   ComponentType = "image"
	ComponentGallery ComponentType = "gallery"
	ComponentSpacer  ComponentType = "spacer"
)

// ComponentTypes lists every ComponentType in palette order.
var ComponentTypes = []ComponentType{
	ComponentText,
	ComponentButton,
	ComponentImage,
	ComponentGallery,
	ComponentSpacer,
}

// Valid reports whether t is a known component type.
func (t ComponentType) Valid() bool {
	for _, known := range ComponentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Props is the property record of a component. Each ComponentType has
// exactly one implementation.
type Props interface {
	ComponentType() ComponentType
	CloneProps() Props
}

// TextProps configures a text component.
type TextProps struct {
	Text       string   `json:"text"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	LineHeight *float64 `json:"lineHeight,omitempty"`
	FontWeight *int     `json:"fontWeight,omitempty"`
	Color      *string  `json:"color,omitempty"`
}

// ButtonProps configures a link button.
type ButtonProps struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ImageProps references an externally managed media asset.
type ImageProps struct {
	Src     string  `json:"src"`
	Alt     string  `json:"alt"`
	MediaID *string `json:"mediaId,omitempty"`
}

// GalleryItem is one media reference inside a gallery.
type GalleryItem struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

// GalleryProps configures a grid of media items.
type GalleryProps struct {
	Items        []GalleryItem `json:"items"`
	Columns      *int          `json:"columns,omitempty"`
	Gap          *int          `json:"gap,omitempty"`
	BorderRadius *int          `json:"borderRadius,omitempty"`
}

// SpacerProps configures vertical whitespace.
type SpacerProps struct {
	Height int `json:"height"`
}

func (TextProps) ComponentType() ComponentType    { return ComponentText }
func (ButtonProps) ComponentType() ComponentType  { return ComponentButton }
func (ImageProps) ComponentType() ComponentType   { return ComponentImage }
func (GalleryProps) ComponentType() ComponentType { return ComponentGallery }
func (SpacerProps) ComponentType() ComponentType  { return ComponentSpacer }

func (p TextProps) CloneProps() Props {
	p.FontSize = clonePtr(p.FontSize)
	p.LineHeight = clonePtr(p.LineHeight)
	p.FontWeight = clonePtr(p.FontWeight)
	p.Color = clonePtr(p.Color)
	return p
}

func (p ButtonProps) CloneProps() Props { return p }

func (p ImageProps) CloneProps() Props {
	p.MediaID = clonePtr(p.MediaID)
	return p
}

func (p GalleryProps) CloneProps() Props {
	items := make([]GalleryItem, len(p.Items))
	copy(items, p.Items)
	p.Items = items
	p.Columns = clonePtr(p.Columns)
	p.Gap = clonePtr(p.Gap)
	p.BorderRadius = clonePtr(p.BorderRadius)
	return p
}

func (p SpacerProps) CloneProps() Props { return p }

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// PlaceholderImageURL is the src given to new image components.
const PlaceholderImageURL = "https://images.unsplash.com/flagged/photo-1564468781192-f023d514222d?auto=format&fit=crop&w=1200&q=80"

// DefaultProps returns the props a freshly created component of type t gets.
func DefaultProps(t ComponentType) (Props, error) {
	switch t {
	case ComponentText:
		return TextProps{Text: "New text"}, nil
	case ComponentButton:
		return ButtonProps{Label: "Click me", Href: "#"}, nil
	case ComponentImage:
		return ImageProps{Src: PlaceholderImageURL, Alt: "Placeholder image"}, nil
	case ComponentGallery:
		columns, gap := 3, 12
		return GalleryProps{Items: []GalleryItem{}, Columns: &columns, Gap: &gap}, nil
	case ComponentSpacer:
		return SpacerProps{Height: 24}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, t)
}

// decodeProps strictly decodes raw into the variant for t.
func decodeProps(t ComponentType, raw []byte) (Props, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		raw = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var (
		p   Props
		err error
	)
	switch t {
	case ComponentText:
		var v TextProps
		err = dec.Decode(&v)
		p = v
	case ComponentButton:
		var v ButtonProps
		err = dec.Decode(&v)
		p = v
	case ComponentImage:
		var v ImageProps
		err = dec.Decode(&v)
		p = v
	case ComponentGallery:
		var v GalleryProps
		err = dec.Decode(&v)
		if v.Items == nil {
			v.Items = []GalleryItem{}
		}
		p = v
	case ComponentSpacer:
		var v SpacerProps
		err = dec.Decode(&v)
		p = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, t)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// MergeProps shallow-merges the JSON object patch into props: keys in patch
// overwrite, all other keys are preserved, null clears an optional field.
// The result is decoded back into the same variant, so unknown keys and
// mistyped values are rejected with ErrInvalidPatch.
func MergeProps(props Props, patch []byte) (Props, error) {
	if !gjson.ValidBytes(patch) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidPatch)
	}
	parsed := gjson.ParseBytes(patch)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: patch must be a JSON object", ErrInvalidPatch)
	}

	merged, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("marshal props: %w", err)
	}

	var setErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		merged, setErr = sjson.SetRawBytes(merged, escapePathKey(key.String()), []byte(value.Raw))
		return setErr == nil
	})
	if setErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, setErr)
	}

	out, err := decodeProps(props.ComponentType(), merged)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return out, nil
}

// escapePathKey makes key literal for sjson path syntax.
func escapePathKey(key string) string {
	var b bytes.Buffer
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
