package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Strategy is a named mental-arithmetic technique.
type Strategy struct {
	Name string `yaml:"name"`
	Hint string `yaml:"hint"`
}

// Catalog holds the variety data used when building exercise prompts.
type Catalog struct {
	Themes           []string   `yaml:"themes"`
	CreateTargets    []string   `yaml:"create_targets"`
	MentalStrategies []Strategy `yaml:"mental_strategies"`
	AvoidNumbers     []int      `yaml:"avoid_numbers"`
}

var embeddedCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
})

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	return embeddedCatalog()
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects catalogs with empty lists.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Themes) == 0 {
		errs = append(errs, errors.New("themes is empty"))
	}
	if len(c.CreateTargets) == 0 {
		errs = append(errs, errors.New("create_targets is empty"))
	}
	if len(c.MentalStrategies) == 0 {
		errs = append(errs, errors.New("mental_strategies is empty"))
	}
	for i, s := range c.MentalStrategies {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("mental_strategies[%d] has no name", i))
		}
	}
	return errors.Join(errs...)
}

// PickTheme returns a random theme.
func (c *Catalog) PickTheme(r *rand.Rand) string {
	return c.Themes[r.IntN(len(c.Themes))]
}

// PickCreateTarget returns a random target for invented problems.
func (c *Catalog) PickCreateTarget(r *rand.Rand) string {
	return c.CreateTargets[r.IntN(len(c.CreateTargets))]
}

// PickStrategy returns a random mental-arithmetic strategy.
func (c *Catalog) PickStrategy(r *rand.Rand) Strategy {
	return c.MentalStrategies[r.IntN(len(c.MentalStrategies))]
}
