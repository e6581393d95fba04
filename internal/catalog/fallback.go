package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// FallbackEntries returns the built-in dataset used when the index document
// cannot be loaded.
func FallbackEntries() []Entry {
	entries, err := decodeFallback(fallbackYAML)
	if err != nil {
		panic(err)
	}
	return entries
}

func decodeFallback(data []byte) ([]Entry, error) {
	var doc struct {
		Entries []Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fallback dataset: %w", err)
	}
	if len(doc.Entries) == 0 {
		return nil, fmt.Errorf("decode fallback dataset: no entries")
	}
	return doc.Entries, nil
}
