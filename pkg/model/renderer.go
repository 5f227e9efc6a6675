package model

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders typed entity models into Go source files.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"comment": commentLines,
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes one template and returns the unformatted source.
func (r *Renderer) Render(tmplName string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// WriteGo renders a template, runs the goimports formatter, and writes the
// result. On a formatting failure the unformatted source is still written
// for debugging before the error is returned.
func (r *Renderer) WriteGo(tmplName, outPath string, data any) error {
	raw, err := r.Render(tmplName, data)
	if err != nil {
		return err
	}
	formatted, err := imports.Process(outPath, raw, nil)
	if err != nil {
		_ = os.WriteFile(outPath, raw, 0644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(outPath), err)
	}
	if err := os.WriteFile(outPath, formatted, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}

// commentLines prefixes every line of text with a line comment marker.
func commentLines(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "//"
		} else {
			lines[i] = "// " + line
		}
	}
	return strings.Join(lines, "\n")
}
