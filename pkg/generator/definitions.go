package generator

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hassmqtt/schemagen/pkg/schema"
)

// legacyAvailabilityAttrs are the pre-availability-list attribute names the
// documentation keeps for backward compatibility.
var legacyAvailabilityAttrs = []string{
	"availability_topic",
	"payload_available",
	"payload_not_available",
	"availability_template",
}

// Definitions builds the shared fragment holding the availability and
// device schema definitions, projected once from the reference
// integration's normalized schema and reused by reference elsewhere.
func Definitions(props []schema.NamedProperty) (*yaml.Node, error) {
	availability, err := AvailabilityDefinition(props)
	if err != nil {
		return nil, err
	}
	device, err := DeviceDefinition(props)
	if err != nil {
		return nil, err
	}
	return mappingNode(
		scalarNode("Availability"), availability,
		scalarNode("Device"), device,
	), nil
}

// AvailabilityDefinition projects the availability union shape: either the
// availability list together with its mode, or the legacy four-attribute
// form.
func AvailabilityDefinition(props []schema.NamedProperty) (*yaml.Node, error) {
	availability, ok := find(props, "availability")
	if !ok {
		return nil, fmt.Errorf("reference schema has no %q property", "availability")
	}
	mode, ok := find(props, "availability_mode")
	if !ok {
		return nil, fmt.Errorf("reference schema has no %q property", "availability_mode")
	}

	listBranch := mappingNode(
		scalarNode("allOf"), sequenceNode(
			lowerObject("", []schema.NamedProperty{{Name: "availability", Prop: availability}}),
			lowerObject("", []schema.NamedProperty{{Name: "availability_mode", Prop: mode}}),
		),
	)

	// Legacy names keep their relative order from the source schema.
	var legacy []schema.NamedProperty
	for _, p := range props {
		if isLegacyAvailability(p.Name) {
			legacy = append(legacy, p)
		}
	}
	if len(legacy) != len(legacyAvailabilityAttrs) {
		return nil, fmt.Errorf("reference schema has %d of %d legacy availability properties",
			len(legacy), len(legacyAvailabilityAttrs))
	}
	legacyBranch := lowerObject("", legacy)

	return mappingNode(
		scalarNode("oneOf"), sequenceNode(listBranch, legacyBranch),
	), nil
}

// DeviceDefinition projects the device sub-object schema.
func DeviceDefinition(props []schema.NamedProperty) (*yaml.Node, error) {
	device, ok := find(props, "device")
	if !ok {
		return nil, fmt.Errorf("reference schema has no %q property", "device")
	}
	if device.Kind != schema.KindObject {
		return nil, fmt.Errorf("reference %q property is %s, not an object", "device", device.Kind)
	}
	return lowerProperty(device), nil
}

func find(props []schema.NamedProperty, name string) (*schema.Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Prop, true
		}
	}
	return nil, false
}

func isLegacyAvailability(name string) bool {
	for _, legacy := range legacyAvailabilityAttrs {
		if name == legacy {
			return true
		}
	}
	return false
}
