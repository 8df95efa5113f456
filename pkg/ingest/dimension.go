package ingest

import (
	"strings"

	"github.com/mchmarny/repwatch/pkg/score"
	"github.com/mchmarny/repwatch/pkg/table"
)

var dimensionAliases = map[string]score.Dimension{}

func init() {
	aliases := map[score.Dimension][]string{
		score.DimensionProducts:    {"Products/Services", "Productos", "Servicios", "Products", "Producto"},
		score.DimensionInnovation:  {"Innovation"},
		score.DimensionWorkplace:   {"Workplace", "Trabajo", "Entorno de trabajo"},
		score.DimensionGovernance:  {"Governance", "Gobierno"},
		score.DimensionCitizenship: {"Citizenship"},
		score.DimensionLeadership:  {"Leadership"},
		score.DimensionFinancial:   {"Financial Results", "Financial", "Finanzas", "Resultados"},
	}

	for _, d := range score.Dimensions {
		dimensionAliases[table.Key(string(d))] = d
		dimensionAliases[table.Key(d.Label())] = d
		for _, a := range aliases[d] {
			dimensionAliases[table.Key(a)] = d
		}
	}
}

// ParseDimension resolves a dimension name, Spanish or English, ignoring
// case and accents. A "Score_" prefix is allowed.
func ParseDimension(name string) (score.Dimension, bool) {
	if len(name) >= len(scoreColumnPrefix) && strings.EqualFold(name[:len(scoreColumnPrefix)], scoreColumnPrefix) {
		name = name[len(scoreColumnPrefix):]
	}
	d, ok := dimensionAliases[table.Key(name)]
	return d, ok
}
