// Package samples ships the built-in sample searches.
package samples

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

//go:embed samples.toml
var builtin string

type file struct {
	DefaultBlocks string          `toml:"default_blocks"`
	Samples       []models.Sample `toml:"sample"`
}

// Catalog is the list of sample searches
type Catalog struct {
	source string

	once    sync.Once
	samples []models.Sample
	err     error
}

// NewCatalog returns the built-in catalog
func NewCatalog() *Catalog {
	return &Catalog{source: builtin}
}

// NewCatalogFromTOML parses samples from src instead of the built-in file
func NewCatalogFromTOML(src string) *Catalog {
	return &Catalog{source: src}
}

// All returns every sample in file order
func (c *Catalog) All() ([]models.Sample, error) {
	c.once.Do(func() {
		c.samples, c.err = parse(c.source)
	})
	return c.samples, c.err
}

// Find returns the sample with the given name
func (c *Catalog) Find(name string) (models.Sample, error) {
	all, err := c.All()
	if err != nil {
		return models.Sample{}, err
	}
	for _, s := range all {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return models.Sample{}, fmt.Errorf("unknown sample %q", name)
}

func parse(src string) ([]models.Sample, error) {
	var f file
	md, err := toml.Decode(src, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse samples: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse samples: unknown keys %v", undecoded)
	}

	for i := range f.Samples {
		if f.Samples[i].Name == "" {
			return nil, fmt.Errorf("sample %d has no name", i+1)
		}
		if f.Samples[i].Params.Blocks == "" {
			f.Samples[i].Params.Blocks = f.DefaultBlocks
		}
	}
	return f.Samples, nil
}
