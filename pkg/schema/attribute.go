// Package schema implements the core of the generator: decoding the
// informally maintained configuration dialect, classifying each attribute
// into a structural kind, and normalizing the result into the property tree
// shared by both output lowerings.
package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeTag is the declared type of an attribute. The dialect allows both a
// single tag (`type: string`) and a compound tag (`type: [string, list]`).
type TypeTag struct {
	tags []string
}

// Tag builds a type tag in code. Used by tests and by callers constructing
// attribute records without going through the YAML decoder.
func Tag(tags ...string) TypeTag {
	return TypeTag{tags: tags}
}

func (t *TypeTag) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		t.tags = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		t.tags = nil
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: compound type tag holds a non-scalar entry", item.Line)
			}
			t.tags = append(t.tags, item.Value)
		}
		return nil
	default:
		return fmt.Errorf("line %d: type tag must be a scalar or a sequence", node.Line)
	}
}

// Empty reports whether no tag was declared.
func (t TypeTag) Empty() bool {
	return len(t.tags) == 0
}

// Is reports whether exactly the single given tag was declared.
func (t TypeTag) Is(tag string) bool {
	return len(t.tags) == 1 && t.tags[0] == tag
}

// Has reports whether the given tag appears among the declared variants.
func (t TypeTag) Has(tag string) bool {
	for _, v := range t.tags {
		if v == tag {
			return true
		}
	}
	return false
}

// Variants returns the declared tags in order.
func (t TypeTag) Variants() []string {
	return t.tags
}

func (t TypeTag) String() string {
	if len(t.tags) == 1 {
		return t.tags[0]
	}
	return "[" + strings.Join(t.tags, ", ") + "]"
}

// RequiredFlag tolerates the dialect's informal required markers: the corpus
// mostly uses booleans but a handful of records carry prose values, which
// count as not required.
type RequiredFlag bool

func (r *RequiredFlag) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if err := node.Decode(&b); err == nil {
		*r = RequiredFlag(b)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: unreadable required marker", node.Line)
	}
	*r = RequiredFlag(strings.EqualFold(s, "true"))
	return nil
}

// Attribute is a single property declaration from a configuration block.
type Attribute struct {
	Description string       `yaml:"description"`
	Required    RequiredFlag `yaml:"required"`
	Type        TypeTag      `yaml:"type"`
	Default     any          `yaml:"default"`
	Keys        Block        `yaml:"keys"`
}

// Block is an ordered mapping of attribute name to declaration. Source
// declaration order carries no validation weight but must survive into the
// output so emitted schemas stay stable and diffable.
type Block struct {
	names []string
	attrs map[string]*Attribute
}

func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: configuration block must be a mapping", node.Line)
	}
	b.names = nil
	b.attrs = make(map[string]*Attribute, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		attr := new(Attribute)
		if err := node.Content[i+1].Decode(attr); err != nil {
			return fmt.Errorf("attribute %q: %w", key.Value, err)
		}
		// The dialect occasionally repeats a name. Last record wins at its
		// first position, so the property is emitted once.
		if _, dup := b.attrs[key.Value]; !dup {
			b.names = append(b.names, key.Value)
		}
		b.attrs[key.Value] = attr
	}
	return nil
}

// Len returns the number of declared attributes.
func (b Block) Len() int {
	return len(b.names)
}

// Names returns the attribute names in declaration order.
func (b Block) Names() []string {
	return b.names
}

// Get returns the attribute declared under name.
func (b Block) Get(name string) (*Attribute, bool) {
	attr, ok := b.attrs[name]
	return attr, ok
}

// Parse decodes the text captured from a configuration sentinel block.
func Parse(text string) (Block, error) {
	var b Block
	if err := yaml.Unmarshal([]byte(text), &b); err != nil {
		return Block{}, err
	}
	return b, nil
}
