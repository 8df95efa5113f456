package score

import "strings"

const (
	// DefaultSourceWeight applies to page types missing from the weight table.
	DefaultSourceWeight = 0.5
)

// Weights is the source credibility table keyed by lowercase page type.
type Weights struct {
	Sources map[string]float64 `json:"sources" yaml:"sources"`
	Default float64            `json:"default" yaml:"default"`
}

// DefaultWeights returns the built-in platform weights.
func DefaultWeights() Weights {
	return Weights{
		Sources: map[string]float64{
			"news":      1.0,
			"blog":      0.7,
			"forum":     0.5,
			"twitter":   0.6,
			"instagram": 0.8,
			"tiktok":    0.9,
		},
		Default: DefaultSourceWeight,
	}
}

// Source looks up the weight for a page type, case-insensitive.
func (w Weights) Source(pageType string) float64 {
	if v, ok := w.Sources[strings.ToLower(strings.TrimSpace(pageType))]; ok {
		return v
	}
	if w.Default > 0 {
		return w.Default
	}
	return DefaultSourceWeight
}
