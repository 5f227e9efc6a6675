// Package model lowers configuration schemas into statically typed Go
// entity models and renders them into source files.
package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hassmqtt/schemagen/pkg/schema"
	"github.com/hassmqtt/schemagen/pkg/types"
)

// Field is one generated entity field.
type Field struct {
	// Name is the raw attribute name, preserved for serialization tags.
	Name string

	// Ident is the collision-safe identifier used for setter parameters.
	// It differs from the lowered raw name only when that name is a Go
	// reserved word.
	Ident string

	// GoName is the exported struct field name.
	GoName string

	// Type is the resolved Go type, qualified when it is a named type from
	// the shared types package.
	Type string

	// Import is the package a named type requires, empty for primitives.
	Import string

	// Into marks free-form string values convertible at construction time.
	Into bool

	// Iterable marks scalar-list fields.
	Iterable bool

	Required    bool
	Description string
}

// Optional reports whether the field is stored behind a pointer.
func (f Field) Optional() bool {
	return !f.Required && !f.Iterable
}

// FieldType returns the struct field's Go type, pointer-wrapped for
// optional scalars.
func (f Field) FieldType() string {
	if f.Optional() {
		return "*" + f.Type
	}
	return f.Type
}

// Entity bundles one integration's typed model for the template renderer.
type Entity struct {
	// Name is the raw integration name, e.g. binary_sensor.
	Name string

	// TypeName is the exported Go type name, e.g. BinarySensor.
	TypeName string

	// Description is the one-line summary from the companion document,
	// empty when that document is absent.
	Description string

	// Source is the raw schema text, embedded as a provenance comment in
	// the generated file.
	Source string

	// Imports are the distinct packages required by the fields.
	Imports []string

	// Fields are the retained attributes in declaration order.
	Fields []Field
}

// Lower produces the typed model for one integration. Unlike the OpenAPI
// path it keeps only flat fields: structured shapes (maps, lists of
// objects) and centrally-modeled attribute names are dropped.
func Lower(name string, block schema.Block, source, description string, cfg types.Config) (*Entity, error) {
	entity := &Entity{
		Name:        name,
		TypeName:    exportName(name),
		Description: description,
		Source:      source,
	}

	seen := make(map[string]bool)
	for _, attrName := range block.Names() {
		attr, _ := block.Get(attrName)
		if skip(attrName, attr, cfg) {
			continue
		}
		field, err := lowerField(attrName, attr, cfg)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", name, err)
		}
		if field.Import != "" && !seen[field.Import] {
			seen[field.Import] = true
			entity.Imports = append(entity.Imports, field.Import)
		}
		entity.Fields = append(entity.Fields, *field)
	}
	return entity, nil
}

func skip(name string, attr *schema.Attribute, cfg types.Config) bool {
	if cfg.IsIgnored(name) {
		return true
	}
	t := attr.Type
	if t.Empty() || t.Is("map") {
		return true
	}
	if t.Is("list") && attr.Keys.Len() > 0 {
		return true
	}
	return false
}

func lowerField(name string, attr *schema.Attribute, cfg types.Config) (*Field, error) {
	field := &Field{
		Name:        name,
		Ident:       safeIdent(name),
		GoName:      exportName(name),
		Required:    bool(attr.Required),
		Description: schema.SynthesizeDescription(attr),
	}
	if err := baseType(field, attr); err != nil {
		return nil, err
	}
	if err := applyOverride(field, attr, cfg); err != nil {
		return nil, err
	}
	return field, nil
}

// baseType resolves the field type from the raw tag. Name-driven overrides
// may replace the result entirely.
func baseType(field *Field, attr *schema.Attribute) error {
	t := attr.Type
	switch {
	case t.Is("string"), t.Is("template"), t.Is("icon"), t.Is("device_class"):
		field.Type = "string"
		field.Into = true
	case t.Is("float"):
		field.Type = "float64"
	case t.Is("integer"):
		field.Type = "int32"
	case t.Is("boolean"):
		field.Type = "bool"
	case t.Is("list"), t.Has("list"):
		field.Type = "[]string"
		field.Into = true
		field.Iterable = true
	default:
		// Compound scalar tags without a list variant render as strings;
		// anything the classifier rejects aborts the batch.
		kind, err := schema.Classify(field.Name, attr)
		if err != nil {
			return err
		}
		if kind != schema.KindScalar {
			return &schema.ClassificationError{Attribute: field.Name, Tag: t.String()}
		}
		field.Type = "string"
		field.Into = true
	}
	return nil
}

// goKeywords is the Go reserved-word list; raw attribute names colliding
// with it get a trailing-underscore escape in their identifier.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

func safeIdent(name string) string {
	ident := lowerCamel(name)
	if goKeywords[ident] {
		return ident + "_"
	}
	return ident
}

var titleCaser = cases.Title(language.English)

// exportName turns a snake_case attribute or integration name into an
// exported Go identifier, e.g. binary_sensor into BinarySensor.
func exportName(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		parts[i] = titleCaser.String(part)
	}
	return strings.Join(parts, "")
}

func lowerCamel(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		parts[i] = titleCaser.String(parts[i])
	}
	return strings.Join(parts, "")
}
