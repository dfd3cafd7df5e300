package worksheet

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var builtinFS embed.FS

// LoadEmbedded reads a built-in worksheet by name.
func LoadEmbedded(name string) (*Worksheet, error) {
	data, err := builtinFS.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("worksheet %q not found (available: %s): %w",
			name, strings.Join(List(), ", "), err)
	}
	return parse(data)
}

// Load reads a worksheet from a YAML file on disk.
func Load(path string) (*Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	return parse(data)
}

// Find resolves nameOrPath as a built-in worksheet first, then as a disk
// path. CLI commands accept either form.
func Find(nameOrPath string) (*Worksheet, error) {
	if ws, err := LoadEmbedded(nameOrPath); err == nil {
		return ws, nil
	}
	return Load(nameOrPath)
}

// List returns the names of all built-in worksheets, sorted.
func List() []string {
	entries, _ := builtinFS.ReadDir(".")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names
}

func parse(data []byte) (*Worksheet, error) {
	var ws Worksheet
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parse worksheet: %w", err)
	}
	if err := ws.Validate(); err != nil {
		return nil, err
	}
	return &ws, nil
}
