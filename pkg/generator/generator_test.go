package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/hassmqtt/schemagen/pkg/extractor"
	"github.com/hassmqtt/schemagen/pkg/schema"
	"github.com/hassmqtt/schemagen/pkg/testutil"
	"github.com/hassmqtt/schemagen/pkg/types"
)

func mustNormalize(t *testing.T, text string) []schema.NamedProperty {
	t.Helper()
	block, err := schema.Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	props, err := schema.Normalize(block)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return props
}

func mapKeys(t *testing.T, node *yaml.Node) []string {
	t.Helper()
	if node.Kind != yaml.MappingNode {
		t.Fatalf("node kind = %d; want mapping", node.Kind)
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

func mapGet(t *testing.T, node *yaml.Node, key string) *yaml.Node {
	t.Helper()
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	t.Fatalf("key %q not found; keys = %v", key, mapKeys(t, node))
	return nil
}

// ── LowerDocument ────────────────────────────────────────────────────────────

func TestLowerDocument_ObjectShape(t *testing.T) {
	props := mustNormalize(t, `
state_topic:
  description: The topic.
  required: true
  type: string
command_topic:
  description: The command topic.
  required: true
  type: string
name:
  description: The name.
  required: false
  type: string
`)
	doc := LowerDocument(props)

	if got := mapGet(t, doc, "type").Value; got != "object" {
		t.Errorf("type = %q; want object", got)
	}

	required := mapGet(t, doc, "required")
	if len(required.Content) != 2 ||
		required.Content[0].Value != "state_topic" ||
		required.Content[1].Value != "command_topic" {
		t.Errorf("required = %v; want [state_topic command_topic] in declaration order", required.Content)
	}

	properties := mapGet(t, doc, "properties")
	got := mapKeys(t, properties)
	want := []string{"state_topic", "command_topic", "name"}
	if len(got) != len(want) {
		t.Fatalf("properties keys = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("properties key [%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestLowerDocument_BareList(t *testing.T) {
	props := mustNormalize(t, `
modes:
  description: Supported modes.
  required: false
  type: list
  default: idle
`)
	doc := LowerDocument(props)
	modes := mapGet(t, mapGet(t, doc, "properties"), "modes")

	if got := mapGet(t, modes, "type").Value; got != "array" {
		t.Errorf("type = %q; want array", got)
	}
	if got := mapGet(t, modes, "description").Value; got != "Supported modes. (Default: idle)" {
		t.Errorf("description = %q; want default annotation attached", got)
	}
	items := mapGet(t, modes, "items")
	if got := mapGet(t, items, "type").Value; got != "string" {
		t.Errorf("items.type = %q; want string", got)
	}
}

func TestLowerDocument_ListWithKeysEmitsBareItemsMapping(t *testing.T) {
	props := mustNormalize(t, `
availability:
  description: A list of topics.
  required: false
  type: list
  keys:
    topic:
      description: An MQTT topic.
      required: true
      type: string
    payload_available:
      description: The payload.
      required: false
      type: string
`)
	doc := LowerDocument(props)
	availability := mapGet(t, mapGet(t, doc, "properties"), "availability")
	items := mapGet(t, availability, "items")

	// items carries the property names directly, with no wrapping object
	// schema around them.
	got := mapKeys(t, items)
	if len(got) != 2 || got[0] != "topic" || got[1] != "payload_available" {
		t.Errorf("items keys = %v; want [topic payload_available]", got)
	}
}

func TestLowerDocument_ScalarTagsRenderAsString(t *testing.T) {
	props := mustNormalize(t, `
qos:
  description: QoS level.
  required: false
  type: integer
retain:
  description: Retain flag.
  required: false
  type: boolean
`)
	doc := LowerDocument(props)
	properties := mapGet(t, doc, "properties")
	for _, name := range []string{"qos", "retain"} {
		if got := mapGet(t, mapGet(t, properties, name), "type").Value; got != "string" {
			t.Errorf("%s type = %q; want string", name, got)
		}
	}
}

// ── Shared definitions ───────────────────────────────────────────────────────

const referenceSchema = `
availability:
  description: A list of MQTT topics subscribed to receive availability updates.
  required: false
  type: list
  keys:
    topic:
      description: An MQTT topic.
      required: true
      type: string
availability_mode:
  description: When availability is configured, controls the combining rule.
  required: false
  type: string
  default: latest
availability_topic:
  description: The MQTT topic subscribed to receive availability updates.
  required: false
  type: string
payload_available:
  description: The payload that represents the available state.
  required: false
  type: string
  default: online
payload_not_available:
  description: The payload that represents the unavailable state.
  required: false
  type: string
  default: offline
availability_template:
  description: Defines a template to extract availability.
  required: false
  type: template
device:
  description: Information about the device.
  required: false
  type: map
  keys:
    name:
      description: The name of the device.
      required: false
      type: string
    identifiers:
      description: A list of IDs.
      required: false
      type: [string, list]
state_topic:
  description: The MQTT topic subscribed to receive sensor values.
  required: true
  type: string
`

func TestAvailabilityDefinition(t *testing.T) {
	props := mustNormalize(t, referenceSchema)
	def, err := AvailabilityDefinition(props)
	if err != nil {
		t.Fatalf("AvailabilityDefinition failed: %v", err)
	}

	oneOf := mapGet(t, def, "oneOf")
	if len(oneOf.Content) != 2 {
		t.Fatalf("oneOf branches = %d; want 2", len(oneOf.Content))
	}

	allOf := mapGet(t, oneOf.Content[0], "allOf")
	if len(allOf.Content) != 2 {
		t.Fatalf("allOf entries = %d; want 2", len(allOf.Content))
	}
	first := mapKeys(t, mapGet(t, allOf.Content[0], "properties"))
	second := mapKeys(t, mapGet(t, allOf.Content[1], "properties"))
	if len(first) != 1 || first[0] != "availability" {
		t.Errorf("first allOf entry properties = %v; want [availability]", first)
	}
	if len(second) != 1 || second[0] != "availability_mode" {
		t.Errorf("second allOf entry properties = %v; want [availability_mode]", second)
	}

	legacy := mapKeys(t, mapGet(t, oneOf.Content[1], "properties"))
	want := []string{"availability_topic", "payload_available", "payload_not_available", "availability_template"}
	if len(legacy) != len(want) {
		t.Fatalf("legacy branch properties = %v; want %v", legacy, want)
	}
	for i := range want {
		if legacy[i] != want[i] {
			t.Errorf("legacy property [%d] = %q; want %q", i, legacy[i], want[i])
		}
	}
}

func TestAvailabilityDefinition_MissingPropertyFails(t *testing.T) {
	props := mustNormalize(t, "state_topic:\n  required: true\n  type: string\n")
	if _, err := AvailabilityDefinition(props); err == nil {
		t.Error("projection without availability properties should fail")
	}
}

func TestDeviceDefinition(t *testing.T) {
	props := mustNormalize(t, referenceSchema)
	def, err := DeviceDefinition(props)
	if err != nil {
		t.Fatalf("DeviceDefinition failed: %v", err)
	}
	keys := mapKeys(t, mapGet(t, def, "properties"))
	if len(keys) != 2 || keys[0] != "name" || keys[1] != "identifiers" {
		t.Errorf("device properties = %v; want [name identifiers]", keys)
	}
}

// ── CommentHeader ────────────────────────────────────────────────────────────

func TestCommentHeader(t *testing.T) {
	got := CommentHeader("state_topic:\n\n  type: string")
	want := "# state_topic:\n# \n#   type: string\n"
	if got != want {
		t.Errorf("CommentHeader = %q; want %q", got, want)
	}
}

// ── Generate ─────────────────────────────────────────────────────────────────

func testConfig() types.Config {
	return types.Config{
		Entities:             []string{"sensor"},
		ReferenceIntegration: "sensor",
	}
}

func TestGenerate(t *testing.T) {
	docsDir := testutil.WriteCorpus(t, map[string]string{
		"sensor.mqtt.markdown": testutil.WrapConfiguration("MQTT Sensor", strings.TrimLeft(referenceSchema, "\n")),
	})
	outDir := t.TempDir()

	g := New(extractor.New(docsDir))
	if err := g.Generate(testConfig(), Options{OutputDir: outDir}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	fragment := testutil.ReadOutput(t, filepath.Join(outDir, "sensor.yaml"))
	if !strings.HasPrefix(fragment, "# availability:\n") {
		t.Error("fragment should open with the commented source text")
	}
	testutil.AssertContains(t, fragment, "type: object")

	if _, err := os.Stat(filepath.Join(outDir, DefinitionsFile)); err != nil {
		t.Errorf("definitions file not written: %v", err)
	}
}

func TestGenerate_MissingSentinelAbortsWithoutOutput(t *testing.T) {
	docsDir := testutil.WriteCorpus(t, map[string]string{
		"sensor.mqtt.markdown": "# Sensor\n\nNo schema here.\n",
	})
	outDir := t.TempDir()

	g := New(extractor.New(docsDir))
	err := g.Generate(testConfig(), Options{OutputDir: outDir})
	if err == nil {
		t.Fatal("document without sentinels should abort the batch")
	}
	var xerr *extractor.ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("error = %T; want *extractor.ExtractionError", err)
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "sensor.yaml")); statErr == nil {
		t.Error("no output file should exist for the failing document")
	}
}
