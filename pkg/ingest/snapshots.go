package ingest

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mchmarny/repwatch/pkg/score"
	"github.com/mchmarny/repwatch/pkg/table"
)

const opSnapshots = "scores"

// Snapshots reads the aggregated scores table. The date and OHLC columns are
// required. Score_<Dimension> columns are optional and matched to the fixed
// dimensions; unknown ones are skipped.
func Snapshots(t *table.Table, opts Options) ([]score.Snapshot, error) {
	list := make([]score.Snapshot, 0, t.Len())

	dateIdx := t.Index(dateColumns...)
	if dateIdx < 0 {
		return nil, score.NewDataError(opSnapshots, "Fecha", 0, errMissingColumn)
	}

	ohlc := [][]string{openColumns, highColumns, lowColumns, closeColumns}
	ohlcIdx := make([]int, len(ohlc))
	for i, names := range ohlc {
		ohlcIdx[i] = t.Index(names...)
		if ohlcIdx[i] < 0 {
			return nil, score.NewDataError(opSnapshots, names[0], 0, errMissingColumn)
		}
	}

	dimIdx := make(map[score.Dimension]int)
	for i, c := range t.Columns {
		if !strings.HasPrefix(strings.ToLower(c), strings.ToLower(scoreColumnPrefix)) {
			continue
		}
		d, ok := ParseDimension(c)
		if !ok {
			log.Debug().Str("column", c).Msg("skipping unknown dimension column")
			continue
		}
		if _, dup := dimIdx[d]; !dup {
			dimIdx[d] = i
		}
	}

	dateOpts := opts.dateOptions()
	for r := 0; r < t.Len(); r++ {
		d, err := parseDate(t.Cell(r, dateIdx), dateOpts...)
		if err != nil {
			return nil, score.NewDataError(opSnapshots, "Fecha", r+1, err)
		}

		vals := make([]float64, len(ohlc))
		for i, idx := range ohlcIdx {
			v, err := parseNumber(t.Cell(r, idx))
			if err != nil {
				return nil, score.NewDataError(opSnapshots, ohlc[i][0], r+1, err)
			}
			vals[i] = v
		}

		s := score.Snapshot{
			Date:       d,
			Open:       vals[0],
			High:       vals[1],
			Low:        vals[2],
			Close:      vals[3],
			Dimensions: make(map[score.Dimension]float64, len(dimIdx)),
		}

		for dim, idx := range dimIdx {
			v, err := parseNumber(t.Cell(r, idx))
			if err != nil {
				// empty or invalid cells fall back to the neutral value downstream
				continue
			}
			s.Dimensions[dim] = v
		}

		list = append(list, s)
	}

	log.Debug().Int("rows", len(list)).Int("dimensions", len(dimIdx)).Msg("read scores")

	return list, nil
}
