// Package catalog loads the static list of domains and modules hosts navigate.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrDuplicateID is returned when two domains or two modules share an id.
	ErrDuplicateID = errors.New("duplicate catalog id")
	// ErrUnknownSimulation is returned when a module names an unregistered simulation.
	ErrUnknownSimulation = errors.New("unknown simulation")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Catalog is an ordered list of domains.
type Catalog struct {
	Domains []domain.Domain `yaml:"domains" json:"domains" validate:"required,min=1,dive"`
}

// Load decodes and validates a catalog from YAML.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Validate checks struct tags and id uniqueness.
func (c *Catalog) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	domains := make(map[string]bool)
	modules := make(map[string]bool)
	for _, d := range c.Domains {
		if domains[d.ID] {
			return fmt.Errorf("%w: domain %s", ErrDuplicateID, d.ID)
		}
		domains[d.ID] = true
		for _, m := range d.Modules {
			if modules[m.ID] {
				return fmt.Errorf("%w: module %s", ErrDuplicateID, m.ID)
			}
			modules[m.ID] = true
		}
	}
	return nil
}

// CheckSimulations reports available modules whose simulation is not known.
func (c *Catalog) CheckSimulations(known func(id string) bool) error {
	var errs []error
	for _, m := range c.Available() {
		if m.Simulation != "" && !known(m.Simulation) {
			errs = append(errs, fmt.Errorf("%w: module %s references %s", ErrUnknownSimulation, m.ID, m.Simulation))
		}
	}
	return errors.Join(errs...)
}

// Lookup finds a module by id.
func (c *Catalog) Lookup(moduleID string) (domain.Module, bool) {
	for _, d := range c.Domains {
		for _, m := range d.Modules {
			if m.ID == moduleID {
				return m, true
			}
		}
	}
	return domain.Module{}, false
}

// Available returns every available module in display order.
func (c *Catalog) Available() []domain.Module {
	var out []domain.Module
	for _, d := range c.Domains {
		for _, m := range d.Modules {
			if m.Status == domain.StatusAvailable {
				out = append(out, m)
			}
		}
	}
	return out
}
