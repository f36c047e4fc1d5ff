package domain

// ModuleStatus marks whether a module page is reachable.
type ModuleStatus string

const (
	StatusAvailable  ModuleStatus = "available"
	StatusComingSoon ModuleStatus = "coming-soon"
)

// Module is one entry of the navigation catalog.
type Module struct {
	ID          string       `json:"id" yaml:"id" validate:"required"`
	Title       string       `json:"title" yaml:"title" validate:"required"`
	Description string       `json:"description" yaml:"description"`
	Status      ModuleStatus `json:"status" yaml:"status" validate:"oneof=available coming-soon"`
	Path        string       `json:"path" yaml:"path" validate:"required,startswith=/"`

	// Simulation is the registry id of the engine backing the page.
	// Empty for modules without an animated simulation.
	Simulation string `json:"simulation,omitempty" yaml:"simulation,omitempty"`
}

// Domain groups modules by topic, in display order.
type Domain struct {
	ID      string   `json:"id" yaml:"id" validate:"required"`
	Title   string   `json:"title" yaml:"title" validate:"required"`
	Modules []Module `json:"modules" yaml:"modules" validate:"dive"`
}
