// Package generator lowers normalized property trees into OpenAPI-flavored
// schema fragments and writes them out.
package generator

import (
	"gopkg.in/yaml.v3"

	"github.com/hassmqtt/schemagen/pkg/schema"
)

// LowerDocument converts a top-level property list into the OpenAPI object
// schema for one integration.
func LowerDocument(props []schema.NamedProperty) *yaml.Node {
	return lowerObject("", props)
}

func lowerObject(description string, children []schema.NamedProperty) *yaml.Node {
	pairs := []*yaml.Node{scalarNode("type"), scalarNode("object")}
	if description != "" {
		pairs = append(pairs, scalarNode("description"), scalarNode(description))
	}

	var required []*yaml.Node
	for _, child := range children {
		if child.Prop.Required {
			required = append(required, scalarNode(child.Name))
		}
	}
	if len(required) > 0 {
		pairs = append(pairs, scalarNode("required"), sequenceNode(required...))
	}

	pairs = append(pairs, scalarNode("properties"), propertiesMapping(children))
	return mappingNode(pairs...)
}

func lowerProperty(p *schema.Property) *yaml.Node {
	switch p.Kind {
	case schema.KindObject:
		return lowerObject(p.Description, p.Children)
	case schema.KindList:
		pairs := []*yaml.Node{scalarNode("type"), scalarNode("array")}
		if p.Description != "" {
			pairs = append(pairs, scalarNode("description"), scalarNode(p.Description))
		}
		if p.Children == nil {
			pairs = append(pairs, scalarNode("items"),
				mappingNode(scalarNode("type"), scalarNode("string")))
		} else {
			// The published fragments describe list item shape as the bare
			// properties mapping, not a wrapped object schema. Downstream
			// consumers depend on that exact shape, so it is preserved.
			pairs = append(pairs, scalarNode("items"), propertiesMapping(p.Children))
		}
		return mappingNode(pairs...)
	default:
		pairs := []*yaml.Node{scalarNode("type"), scalarNode("string")}
		if p.Description != "" {
			pairs = append(pairs, scalarNode("description"), scalarNode(p.Description))
		}
		return mappingNode(pairs...)
	}
}

func propertiesMapping(children []schema.NamedProperty) *yaml.Node {
	var pairs []*yaml.Node
	for _, child := range children {
		pairs = append(pairs, scalarNode(child.Name), lowerProperty(child.Prop))
	}
	return mappingNode(pairs...)
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func mappingNode(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}

func sequenceNode(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}
