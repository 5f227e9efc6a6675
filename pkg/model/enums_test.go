package model

import "testing"

// ── Device-class extraction ──────────────────────────────────────────────────

const binarySensorDoc = `---
title: "Binary sensor"
---

Binary sensors gather information about the state of devices.

### Device Class

The following device classes are supported:

- ` + "`motion`" + `: Motion detected.
- ` + "`door`" + `: Door opened or closed.

Some trailing prose that is not a bullet.

### Other Section

- ` + "`ignored`" + `: Never collected.
`

func TestExtractDeviceClasses(t *testing.T) {
	enum := ExtractDeviceClasses("binary_sensor", binarySensorDoc)

	if enum.Name != "BinarySensorDeviceClass" {
		t.Errorf("enum name = %q; want BinarySensorDeviceClass", enum.Name)
	}
	if enum.Integration != "binary_sensor" {
		t.Errorf("integration = %q; want binary_sensor", enum.Integration)
	}

	want := []ClassValue{
		{Value: "motion", GoName: "Motion", Description: "Motion detected."},
		{Value: "door", GoName: "Door", Description: "Door opened or closed."},
	}
	if len(enum.Values) != len(want) {
		t.Fatalf("collected %d values; want %d: %+v", len(enum.Values), len(want), enum.Values)
	}
	for i, w := range want {
		if enum.Values[i] != w {
			t.Errorf("value [%d] = %+v; want %+v", i, enum.Values[i], w)
		}
	}
}

func TestExtractDeviceClasses_StopsAtDeeperHeading(t *testing.T) {
	doc := "## Device Classes\n\n- `garage`: Garage door.\n\n### Notes\n\n- `still_counted`: Subsection bullets stay in scope.\n\n## Next\n\n- `dropped`: After the section ends.\n"
	enum := ExtractDeviceClasses("cover", doc)

	got := make([]string, 0, len(enum.Values))
	for _, v := range enum.Values {
		got = append(got, v.Value)
	}
	want := []string{"garage", "still_counted"}
	if len(got) != len(want) {
		t.Fatalf("values = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value [%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestExtractDeviceClasses_NoSectionYieldsEmptyEnum(t *testing.T) {
	enum := ExtractDeviceClasses("tag", "---\ntitle: Tag\n---\n\nNo classes here.\n")
	if enum.Name != "TagDeviceClass" {
		t.Errorf("enum name = %q; want TagDeviceClass", enum.Name)
	}
	if len(enum.Values) != 0 {
		t.Errorf("values = %+v; want none", enum.Values)
	}
}

func TestExtractDeviceClasses_StripsTokenMarkup(t *testing.T) {
	doc := "## Device Class\n\n- `temperature`: Temperature reading.\n- **humidity**: Relative humidity.\n"
	enum := ExtractDeviceClasses("sensor", doc)
	if len(enum.Values) != 2 {
		t.Fatalf("collected %d values; want 2", len(enum.Values))
	}
	if enum.Values[0].Value != "temperature" || enum.Values[1].Value != "humidity" {
		t.Errorf("tokens = %q, %q; want temperature, humidity", enum.Values[0].Value, enum.Values[1].Value)
	}
}
