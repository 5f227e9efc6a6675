package model

import (
	"fmt"
	"regexp"

	"github.com/hassmqtt/schemagen/pkg/schema"
	"github.com/hassmqtt/schemagen/pkg/types"
)

// typesPackage is the package qualifier of the shared types import.
const typesPackage = "mqtt"

// deviceClassSuffix is appended to the title-cased integration name to form
// a device-class enum type name.
const deviceClassSuffix = "DeviceClass"

// deviceClassAnchor extracts the integration name from the documentation
// link a device_class attribute carries in its own description, e.g.
// (/integrations/binary_sensor/#device-class).
var deviceClassAnchor = regexp.MustCompile(`integrations/([a-z_]+)/?#device-class`)

// overrides map field names to rules that replace the base type mapping.
// The table is consulted in order after the base mapping; adding a new
// special-cased field is a table edit.
var overrides = []overrideRule{
	{name: "device_class", derive: deriveDeviceClass},
	{name: "unit_of_measurement", typeName: "Unit"},
	{name: "state_class", typeName: "SensorStateClass"},
	{name: "qos", typeName: "Qos"},
	{name: "temperature_unit", typeName: "TemperatureUnit"},
}

type overrideRule struct {
	name     string
	typeName string
	derive   func(attr *schema.Attribute) (string, error)
}

func applyOverride(field *Field, attr *schema.Attribute, cfg types.Config) error {
	for _, rule := range overrides {
		if rule.name != field.Name {
			continue
		}
		typeName := rule.typeName
		if rule.derive != nil {
			derived, err := rule.derive(attr)
			if err != nil {
				return err
			}
			typeName = derived
		}
		field.Type = typesPackage + "." + typeName
		field.Import = cfg.TypesImport
		field.Into = false
		field.Iterable = false
		return nil
	}
	return nil
}

func deriveDeviceClass(attr *schema.Attribute) (string, error) {
	m := deviceClassAnchor.FindStringSubmatch(attr.Description)
	if m == nil {
		return "", fmt.Errorf("device_class description carries no integration anchor: %q", attr.Description)
	}
	return exportName(m[1]) + deviceClassSuffix, nil
}
