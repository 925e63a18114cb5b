package types

import "time"

// Target is a preset probe target from the catalog: a named local-network
// endpoint the demo can point the probe at with one click. Seed files may
// be JSON, YAML, or TOML, hence the triple tags.
type Target struct {
	ID            string       `json:"id" yaml:"id" toml:"id"`
	Name          string       `json:"name" yaml:"name" toml:"name" validate:"required"`
	URL           string       `json:"url" yaml:"url" toml:"url" validate:"required,url"`
	ExpectedSpace AddressSpace `json:"expected_space,omitempty" yaml:"expected_space,omitempty" toml:"expected_space,omitempty"`
	Description   string       `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Tags          []string     `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	CreatedAt     time.Time    `json:"created_at" yaml:"created_at,omitempty" toml:"created_at,omitempty"`
	UpdatedAt     time.Time    `json:"updated_at" yaml:"updated_at,omitempty" toml:"updated_at,omitempty"`
}

// CatalogStats contains target catalog statistics
type CatalogStats struct {
	TotalTargets int                  `json:"total_targets"`
	Spaces       map[AddressSpace]int `json:"spaces"`
	LastUpdated  *time.Time           `json:"last_updated,omitempty"`
}
