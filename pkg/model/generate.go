package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hassmqtt/schemagen/pkg/extractor"
	"github.com/hassmqtt/schemagen/pkg/types"
)

// Options configures a model generation run.
type Options struct {
	// OutputDir is the directory the generated packages are written under.
	OutputDir string

	// Verbose prints per-file progress.
	Verbose bool
}

// Generator emits the typed Go entity model: one source file per
// integration, the device-class enumerations, and the entity registration
// file.
type Generator struct {
	extractor *extractor.DocExtractor
	renderer  *Renderer
}

// NewGenerator creates a generator reading documents through the given
// extractor.
func NewGenerator(e *extractor.DocExtractor) (*Generator, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Generator{extractor: e, renderer: renderer}, nil
}

// Generate runs the whole batch. The first failing document aborts the
// run; generated files cross-reference each other, so a partial set would
// not compile.
func (g *Generator) Generate(cfg types.Config, opts Options) error {
	entitiesDir := filepath.Join(opts.OutputDir, "entities")
	typesDir := filepath.Join(opts.OutputDir, typesPackage)
	for _, dir := range []string{entitiesDir, typesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	names := cfg.ActiveEntities()
	for _, name := range names {
		block, raw, err := g.extractor.Schema(name)
		if err != nil {
			return err
		}
		description, _ := g.extractor.Description(name)

		entity, err := Lower(name, block, raw, description, cfg)
		if err != nil {
			return err
		}
		path := filepath.Join(entitiesDir, name+".go")
		if err := g.renderer.WriteGo("entity.go.tmpl", path, entity); err != nil {
			return fmt.Errorf("rendering entity %q: %w", name, err)
		}
		if opts.Verbose {
			fmt.Printf("  Generated: entities/%s.go\n", name)
		}
	}

	enums := make([]ClassEnum, 0, len(cfg.DeviceClassDocs))
	for _, name := range cfg.DeviceClassDocs {
		doc, err := g.extractor.LoadDeviceClassDoc(name)
		if err != nil {
			return err
		}
		enums = append(enums, ExtractDeviceClasses(name, doc))
	}
	path := filepath.Join(typesDir, "deviceclasses.go")
	if err := g.renderer.WriteGo("deviceclasses.go.tmpl", path, enums); err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Printf("  Generated: %s/deviceclasses.go\n", typesPackage)
	}

	path = filepath.Join(entitiesDir, "entities.go")
	if err := g.renderer.WriteGo("register.go.tmpl", path, names); err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Printf("  Generated: entities/entities.go\n")
	}
	return nil
}
