package score

import (
	"sort"
	"time"

	"github.com/pkg/errors"
)

const (
	// NeutralValue is reported for a dimension missing from a snapshot.
	NeutralValue = 50.0
)

var errEmptySeries = errors.New("score series is empty")

// Dimension is one of the seven fixed reputational dimensions.
type Dimension string

const (
	DimensionProducts    Dimension = "Productos/Servicios"
	DimensionInnovation  Dimension = "Innovación"
	DimensionWorkplace   Dimension = "Lugar de trabajo"
	DimensionGovernance  Dimension = "Gobernanza"
	DimensionCitizenship Dimension = "Ciudadanía"
	DimensionLeadership  Dimension = "Liderazgo"
	DimensionFinancial   Dimension = "Resultados financieros"
)

// Dimensions lists the reputational dimensions in their fixed order.
var Dimensions = []Dimension{
	DimensionProducts,
	DimensionInnovation,
	DimensionWorkplace,
	DimensionGovernance,
	DimensionCitizenship,
	DimensionLeadership,
	DimensionFinancial,
}

var dimensionLabels = map[Dimension]string{
	DimensionProducts:    "Products/Services",
	DimensionInnovation:  "Innovation",
	DimensionWorkplace:   "Workplace",
	DimensionGovernance:  "Governance",
	DimensionCitizenship: "Citizenship",
	DimensionLeadership:  "Leadership",
	DimensionFinancial:   "Financial Results",
}

// Label returns the English display name.
func (d Dimension) Label() string {
	if l, ok := dimensionLabels[d]; ok {
		return l
	}
	return string(d)
}

// Column returns the score table column carrying this dimension.
func (d Dimension) Column() string {
	return "Score_" + string(d)
}

// Snapshot is one row of the aggregated scores table.
type Snapshot struct {
	Date       time.Time             `json:"date" yaml:"date"`
	Open       float64               `json:"open" yaml:"open"`
	High       float64               `json:"high" yaml:"high"`
	Low        float64               `json:"low" yaml:"low"`
	Close      float64               `json:"close" yaml:"close"`
	Dimensions map[Dimension]float64 `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// DimensionValue is the score of one dimension in a snapshot.
type DimensionValue struct {
	Dimension Dimension `json:"dimension" yaml:"dimension"`
	Label     string    `json:"label" yaml:"label"`
	Value     float64   `json:"value" yaml:"value"`
	Defaulted bool      `json:"defaulted,omitempty" yaml:"defaulted,omitempty"`
}

// Summary is the per-dimension view of a snapshot.
type Summary struct {
	Top      Dimension        `json:"top" yaml:"top"`
	TopValue float64          `json:"top_value" yaml:"topValue"`
	Values   []DimensionValue `json:"values" yaml:"values"`
}

// SortSnapshots returns a copy of the series ordered by date ascending.
// Snapshots sharing a date keep their input order.
func SortSnapshots(series []Snapshot) []Snapshot {
	list := make([]Snapshot, len(series))
	copy(list, series)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.Before(list[j].Date)
	})
	return list
}

// LatestSnapshot returns the most recent snapshot of the series.
func LatestSnapshot(series []Snapshot) (*Snapshot, error) {
	if len(series) == 0 {
		return nil, NewDataError("latest snapshot", "", 0, errEmptySeries)
	}
	sorted := SortSnapshots(series)
	latest := sorted[len(sorted)-1]
	return &latest, nil
}

// GlobalScore is the closing value of the snapshot.
func GlobalScore(s Snapshot) float64 {
	return s.Close
}

// DimensionSummary reads every requested dimension from the snapshot, in the
// order given, defaulting absent ones to NeutralValue. A nil dims reads the
// fixed seven. The first dimension holding the maximum value is the top one.
func DimensionSummary(s Snapshot, dims []Dimension) Summary {
	if dims == nil {
		dims = Dimensions
	}

	sum := Summary{
		Values: make([]DimensionValue, 0, len(dims)),
	}

	for i, d := range dims {
		v, ok := s.Dimensions[d]
		if !ok {
			v = NeutralValue
		}
		sum.Values = append(sum.Values, DimensionValue{
			Dimension: d,
			Label:     d.Label(),
			Value:     v,
			Defaulted: !ok,
		})
		if i == 0 || v > sum.TopValue {
			sum.Top = d
			sum.TopValue = v
		}
	}

	return sum
}
