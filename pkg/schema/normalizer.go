package schema

import (
	"fmt"
	"strings"
)

// Property is a classifier-resolved schema node.
type Property struct {
	// Description is the declared description with the default annotation
	// re-attached when the record carried a truthy default.
	Description string

	// Required mirrors the record's required marker.
	Required bool

	// Kind is the resolved structural kind.
	Kind Kind

	// Children holds the object shape for KindObject nodes and the nested
	// item shape for KindList nodes, in declaration order. A KindList node
	// with no children is a bare list of scalars.
	Children []NamedProperty
}

// NamedProperty pairs a property with its declared name.
type NamedProperty struct {
	Name string
	Prop *Property
}

// Normalize walks a parsed configuration block depth-first and produces the
// normalized property tree consumed by both output lowerings. The first
// unresolvable type tag aborts the walk.
func Normalize(block Block) ([]NamedProperty, error) {
	props := make([]NamedProperty, 0, block.Len())
	for _, name := range block.Names() {
		attr, _ := block.Get(name)
		prop, err := normalizeAttribute(name, attr)
		if err != nil {
			return nil, err
		}
		props = append(props, NamedProperty{Name: name, Prop: prop})
	}
	return props, nil
}

func normalizeAttribute(name string, attr *Attribute) (*Property, error) {
	kind, err := Classify(name, attr)
	if err != nil {
		return nil, err
	}

	prop := &Property{
		Description: SynthesizeDescription(attr),
		Required:    bool(attr.Required),
		Kind:        kind,
	}

	switch kind {
	case KindObject:
		children, err := Normalize(attr.Keys)
		if err != nil {
			return nil, fmt.Errorf("in %q: %w", name, err)
		}
		prop.Children = children
	case KindList:
		if attr.Keys.Len() > 0 {
			children, err := Normalize(attr.Keys)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", name, err)
			}
			prop.Children = children
		}
	}

	return prop, nil
}

// SynthesizeDescription joins the declared description with a default
// annotation. A falsy default (absent, false, empty string, zero, empty
// collection) shows no annotation, and joining never leaves a stray leading
// or trailing space.
func SynthesizeDescription(attr *Attribute) string {
	desc := strings.TrimSpace(attr.Description)
	if !truthyDefault(attr.Default) {
		return desc
	}
	annotation := fmt.Sprintf("(Default: %v)", attr.Default)
	if desc == "" {
		return annotation
	}
	return desc + " " + annotation
}

func truthyDefault(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
