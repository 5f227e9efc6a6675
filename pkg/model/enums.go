package model

import (
	"regexp"
	"strings"
)

// ClassValue is one enumerated device-class value.
type ClassValue struct {
	// Value is the wire token, stripped of non-word characters.
	Value string

	// GoName is the exported constant suffix derived from Value.
	GoName string

	// Description is the bullet text, kept verbatim.
	Description string
}

// ClassEnum is a named device-class enumeration extracted from one
// document. An empty value list is valid: not every document defines the
// section.
type ClassEnum struct {
	Name        string
	Integration string
	Values      []ClassValue
}

var (
	classHeading = regexp.MustCompile(`(?mi)^(#+)[ \t]*device class(es)?[ \t]*$`)
	classBullet  = regexp.MustCompile(`^-\s*(\S+?):\s*(.+)$`)
	nonWord      = regexp.MustCompile(`\W`)
)

// ExtractDeviceClasses scans a document for a "Device Class(es)" heading
// and collects the bullet list that follows it, up to the next heading of
// equal or higher level. Bullet lines match "- token: description"; other
// lines are digressive prose and are dropped, not errored.
func ExtractDeviceClasses(integration, doc string) ClassEnum {
	enum := ClassEnum{
		Name:        exportName(integration) + deviceClassSuffix,
		Integration: integration,
	}

	loc := classHeading.FindStringSubmatchIndex(doc)
	if loc == nil {
		return enum
	}
	level := loc[3] - loc[2]

	for _, line := range strings.Split(doc[loc[1]:], "\n") {
		if strings.HasPrefix(line, "#") {
			if headingLevel(line) <= level {
				break
			}
			continue
		}
		m := classBullet.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := nonWord.ReplaceAllString(m[1], "")
		if value == "" {
			continue
		}
		enum.Values = append(enum.Values, ClassValue{
			Value:       value,
			GoName:      exportName(value),
			Description: m[2],
		})
	}
	return enum
}

func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level
}
