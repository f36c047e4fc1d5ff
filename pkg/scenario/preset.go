// Package scenario defines named input presets and the boundary where raw
// parameters are decoded and validated before any simulation is built.
package scenario

import (
	"fmt"
	"maps"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

// Preset is a named, fixed input configuration for one module.
type Preset struct {
	Name        string         `json:"name" yaml:"name" validate:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// With returns a copy of p whose params are overlaid with overrides.
func (p Preset) With(overrides map[string]any) Preset {
	out := p
	out.Params = make(map[string]any, len(p.Params)+len(overrides))
	maps.Copy(out.Params, p.Params)
	maps.Copy(out.Params, overrides)
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode maps raw params onto a typed struct and validates it.
// Unknown keys are rejected. Every failure wraps domain.ErrInvalidParameter.
func Decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParameter, err)
	}
	return nil
}

// Find returns the preset called name.
func Find(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", domain.ErrUnknownScenario, name)
}
