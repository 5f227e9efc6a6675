package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hassmqtt/schemagen/pkg/extractor"
	"github.com/hassmqtt/schemagen/pkg/schema"
	"github.com/hassmqtt/schemagen/pkg/types"
)

// DefinitionsFile is the shared fragment holding the availability and
// device definitions.
const DefinitionsFile = "definitions.yaml"

// Options configures an OpenAPI generation run.
type Options struct {
	// OutputDir is the directory fragments are written to.
	OutputDir string

	// Verbose prints per-document progress.
	Verbose bool
}

// Generator emits one OpenAPI fragment per integration plus the shared
// definitions fragment.
type Generator struct {
	extractor *extractor.DocExtractor
}

// New creates a generator reading documents through the given extractor.
func New(e *extractor.DocExtractor) *Generator {
	return &Generator{extractor: e}
}

// Generate runs the whole batch. The first failing document aborts the run:
// the output set cross-references the shared definitions, so a partial set
// would be internally inconsistent.
func (g *Generator) Generate(cfg types.Config, opts Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", opts.OutputDir, err)
	}

	for _, name := range cfg.ActiveEntities() {
		if err := g.generateFragment(name, opts); err != nil {
			return err
		}
		if opts.Verbose {
			fmt.Printf("  Generated: %s.yaml\n", name)
		}
	}

	if err := g.generateDefinitions(cfg, opts); err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Printf("  Generated: %s\n", DefinitionsFile)
	}
	return nil
}

func (g *Generator) generateFragment(name string, opts Options) error {
	block, raw, err := g.extractor.Schema(name)
	if err != nil {
		return err
	}
	props, err := schema.Normalize(block)
	if err != nil {
		return fmt.Errorf("normalizing %q: %w", name, err)
	}
	doc := LowerDocument(props)
	return WriteFragment(filepath.Join(opts.OutputDir, name+".yaml"), raw, doc)
}

func (g *Generator) generateDefinitions(cfg types.Config, opts Options) error {
	name := cfg.ReferenceIntegration
	block, _, err := g.extractor.Schema(name)
	if err != nil {
		return err
	}
	props, err := schema.Normalize(block)
	if err != nil {
		return fmt.Errorf("normalizing reference %q: %w", name, err)
	}
	defs, err := Definitions(props)
	if err != nil {
		return fmt.Errorf("projecting shared definitions from %q: %w", name, err)
	}

	body, err := Encode(defs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", DefinitionsFile, err)
	}
	path := filepath.Join(opts.OutputDir, DefinitionsFile)
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteFragment writes one integration's fragment: the schema source
// reproduced as a comment block, then the lowered YAML body.
func WriteFragment(path, source string, doc *yaml.Node) error {
	body, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	content := CommentHeader(source) + string(body)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CommentHeader renders schema source text as a full-line comment block,
// one comment line per source line, blank lines included.
func CommentHeader(source string) string {
	var sb strings.Builder
	for _, line := range strings.Split(source, "\n") {
		sb.WriteString("# ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Encode marshals a schema document with two-space indentation.
func Encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
