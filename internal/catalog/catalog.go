// Package catalog carries the fixed set of consideration definitions: display
// titles, hints for the edit view, and the drafting templates the extraction
// fallback works from. The definitions live in an embedded YAML file so the
// copy can be tuned without touching code.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/apocrypha/forge/internal/registry"
)

//go:embed catalog.yaml
var raw []byte

type Entry struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Hint     string `yaml:"hint"`
	Template string `yaml:"template"`
}

type file struct {
	Considerations []Entry `yaml:"considerations"`
}

// Load parses the embedded catalog and checks that it covers every registry
// kind exactly once.
func Load() (map[registry.Kind]Entry, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse embedded yaml: %w", err)
	}
	entries := make(map[registry.Kind]Entry, len(f.Considerations))
	for _, e := range f.Considerations {
		id := registry.Kind(e.ID)
		if !registry.Valid(id) {
			return nil, fmt.Errorf("catalog: unknown consideration %q", e.ID)
		}
		if _, dup := entries[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate entry %q", e.ID)
		}
		if e.Title == "" || e.Template == "" {
			return nil, fmt.Errorf("catalog: entry %q missing title or template", e.ID)
		}
		entries[id] = e
	}
	for _, k := range registry.Kinds() {
		if _, ok := entries[k]; !ok {
			return nil, fmt.Errorf("catalog: missing entry for %q", k)
		}
	}
	return entries, nil
}
