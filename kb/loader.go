package kb

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedKBs embed.FS

// Default returns a set holding the embedded knowledge bases.
func Default() (*Set, error) {
	return loadFS(embeddedKBs, "data")
}

// loadFS loads every YAML knowledge base in dir of fsys into a new set.
func loadFS(fsys fs.FS, dir string) (*Set, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading embedded knowledge bases: %w", err)
	}

	s := NewSet()
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded knowledge base %s: %w", entry.Name(), err)
		}

		kb, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("embedded knowledge base %s: %w", entry.Name(), err)
		}
		if kb.Name == "" {
			kb.Name = baseName(entry.Name())
		}
		s.Register(kb)
	}

	return s, nil
}

// LoadFile loads a knowledge base from a YAML file. When the file does not
// name the knowledge base, the file name without extension is used.
func LoadFile(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base file: %w", err)
	}

	kb, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if kb.Name == "" {
		kb.Name = baseName(path)
	}
	return kb, nil
}

// Parse decodes a knowledge base from YAML content.
func Parse(data []byte) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parsing knowledge base YAML: %w", err)
	}
	if kb.Entries == nil {
		kb.Entries = Mapping{}
	}
	return &kb, nil
}

// LoadFromDirectory loads every YAML knowledge base found in dir into s.
func (s *Set) LoadFromDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading knowledge base directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		kb, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		s.Register(kb)
	}

	return nil
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
