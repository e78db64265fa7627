package recommend

import "fmt"

// weightTolerance allows for float rounding when validating that the three
// component weights form a weighted mean.
const weightTolerance = 1e-9

// Weights controls how the component scores combine into the composite.
// Certification fit leads by design, with readiness and proximity splitting
// the remainder evenly.
type Weights struct {
	Certification float64 `json:"certification"`
	Availability  float64 `json:"availability"`
	Travel        float64 `json:"travel"`
}

// DefaultWeights returns the documented 0.4/0.3/0.3 split.
func DefaultWeights() Weights {
	return Weights{Certification: 0.4, Availability: 0.3, Travel: 0.3}
}

// Validate checks that the weights are non-negative and sum to one.
func (w Weights) Validate() error {
	if w.Certification < 0 || w.Availability < 0 || w.Travel < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	sum := w.Certification + w.Availability + w.Travel
	if sum < 1-weightTolerance || sum > 1+weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// Config defines engine settings.
type Config struct {
	Weights Weights `json:"weights"`
	// Workers bounds the number of candidates scored concurrently. Zero or
	// one means sequential scoring.
	Workers int `json:"workers"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	zero := Weights{}
	if c.Weights == zero {
		c.Weights = DefaultWeights()
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	return c.Weights.Validate()
}
