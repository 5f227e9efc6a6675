// Package extractor loads integration documentation files and isolates the
// embedded configuration block for parsing.
package extractor

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hassmqtt/schemagen/pkg/schema"
)

// Sentinel lines delimiting the machine-parseable span of a document.
const (
	openSentinel  = "{% configuration %}"
	closeSentinel = "{% endconfiguration %}"
)

// frontMatterSeparator delimits the metadata header of a companion document.
const frontMatterSeparator = "---"

// ExtractionError reports a missing sentinel region or a decode failure on
// the captured text. The dialect is informal enough that the raw captured
// text is part of the diagnostic contract, not a nicety.
type ExtractionError struct {
	Document string
	Reason   string
	Raw      string
	Err      error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("document %q: %s", e.Document, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Raw != "" {
		msg += "\ncaptured text:\n" + e.Raw
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DocExtractor reads integration documentation from a corpus directory.
type DocExtractor struct {
	docsDir string
}

// New creates an extractor rooted at the given documentation directory.
func New(docsDir string) *DocExtractor {
	return &DocExtractor{docsDir: docsDir}
}

// Validate checks that the documentation directory exists.
func (e *DocExtractor) Validate() error {
	info, err := os.Stat(e.docsDir)
	if err != nil {
		return fmt.Errorf("cannot access docs directory %s: %w", e.docsDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", e.docsDir)
	}
	return nil
}

// IntegrationPath returns the path of an integration's MQTT document.
func (e *DocExtractor) IntegrationPath(name string) string {
	return filepath.Join(e.docsDir, name+".mqtt.markdown")
}

// CompanionPath returns the path of the integration's base document, the
// one without the narrower .mqtt suffix.
func (e *DocExtractor) CompanionPath(name string) string {
	return filepath.Join(e.docsDir, name+".markdown")
}

// Load reads an integration's MQTT document.
func (e *DocExtractor) Load(name string) (string, error) {
	data, err := os.ReadFile(e.IntegrationPath(name))
	if err != nil {
		return "", fmt.Errorf("cannot read document for %q: %w", name, err)
	}
	return string(data), nil
}

// ConfigBlock loads an integration's document and returns the raw text of
// its configuration sentinel region.
func (e *DocExtractor) ConfigBlock(name string) (string, error) {
	doc, err := e.Load(name)
	if err != nil {
		return "", err
	}
	return ExtractBlock(name, doc)
}

// Schema loads, extracts, and decodes an integration's configuration block.
// It returns the decoded block together with the captured source text. A
// decode failure surfaces the captured text in the error.
func (e *DocExtractor) Schema(name string) (schema.Block, string, error) {
	raw, err := e.ConfigBlock(name)
	if err != nil {
		return schema.Block{}, "", err
	}
	block, err := schema.Parse(raw)
	if err != nil {
		return schema.Block{}, "", &ExtractionError{
			Document: name,
			Reason:   "configuration block does not decode",
			Raw:      raw,
			Err:      err,
		}
	}
	return block, raw, nil
}

// ExtractBlock returns the text strictly between the first configuration
// sentinel pair of a document. A document without such a region is either
// corpus drift or a wrong input file, so the caller must treat the error as
// fatal rather than skip the document.
func ExtractBlock(document, text string) (string, error) {
	start := strings.Index(text, openSentinel)
	if start < 0 {
		return "", &ExtractionError{Document: document, Reason: "no configuration sentinel found"}
	}
	rest := text[start+len(openSentinel):]

	end := strings.Index(rest, closeSentinel)
	if end < 0 {
		return "", &ExtractionError{Document: document, Reason: "configuration sentinel is not closed"}
	}

	block := rest[:end]
	block = strings.TrimPrefix(block, "\n")
	return strings.TrimSuffix(block, "\n"), nil
}

// Description returns the one-line entity description from the companion
// document: its first non-blank line after the front-matter header. A
// missing companion document is not an error; the description is simply
// absent.
func (e *DocExtractor) Description(name string) (string, bool) {
	file, err := os.Open(e.CompanionPath(name))
	if err != nil {
		return "", false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	separators := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == frontMatterSeparator {
			separators++
			continue
		}
		if separators < 2 {
			continue
		}
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// LoadDeviceClassDoc reads a document from the curated device-class subset.
// These are base integration documents, not MQTT ones.
func (e *DocExtractor) LoadDeviceClassDoc(name string) (string, error) {
	data, err := os.ReadFile(e.CompanionPath(name))
	if err != nil {
		return "", fmt.Errorf("cannot read device-class document for %q: %w", name, err)
	}
	return string(data), nil
}
