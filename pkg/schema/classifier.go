package schema

import "fmt"

// Kind is the resolved structural kind of an attribute.
type Kind int

const (
	KindObject Kind = iota
	KindList
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindScalar:
		return "scalar"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// scalarTags are rendered as descriptive string scalars by the OpenAPI
// path. The typed-model path differentiates them further.
var scalarTags = map[string]bool{
	"string":       true,
	"boolean":      true,
	"integer":      true,
	"float":        true,
	"template":     true,
	"device_class": true,
	"icon":         true,
}

// ClassificationError reports a type tag that resolves to no known
// structural kind. A best-guess kind would silently corrupt a published
// schema, so callers must abort the batch instead of defaulting.
type ClassificationError struct {
	Attribute string
	Tag       string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("attribute %q: type tag %q resolves to no known kind", e.Attribute, e.Tag)
}

// Classify resolves the structural kind of a single attribute record.
// An absent tag and the map tag both mean object; a lone list tag means
// list; scalar tags, alone or compounded (a compound may include list as a
// variant), mean scalar. Anything else fails with a ClassificationError.
func Classify(name string, attr *Attribute) (Kind, error) {
	t := attr.Type
	switch {
	case t.Empty() || t.Is("map"):
		return KindObject, nil
	case t.Is("list"):
		return KindList, nil
	}
	for _, tag := range t.Variants() {
		if !scalarTags[tag] && tag != "list" {
			return 0, &ClassificationError{Attribute: name, Tag: t.String()}
		}
	}
	return KindScalar, nil
}
