package ingest

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/mchmarny/repwatch/pkg/score"
	"github.com/mchmarny/repwatch/pkg/table"
)

const opMentions = "mentions"

var errMissingColumn = errors.New("required column missing")

// Mentions reads the mentions table. Date and Sentiment columns are required;
// every other column is optional. Only the engagement columns present in the
// table are recorded in the set, so an absent column never counts as zeros.
func Mentions(t *table.Table, opts Options) (score.MentionSet, error) {
	set := score.MentionSet{
		Mentions:          make([]score.RawMention, 0, t.Len()),
		EngagementColumns: make([]string, 0),
	}

	dateIdx := t.Index(dateColumns...)
	if dateIdx < 0 {
		return set, score.NewDataError(opMentions, dateColumns[0], 0, errMissingColumn)
	}
	sentimentIdx := t.Index(sentimentColumns...)
	if sentimentIdx < 0 {
		return set, score.NewDataError(opMentions, sentimentColumns[0], 0, errMissingColumn)
	}

	titleIdx := t.Index(titleColumns...)
	snippetIdx := t.Index(snippetColumns...)
	dimensionIdx := t.Index(dimensionColumns...)
	pageTypeIdx := t.Index(pageTypeColumns...)
	impactIdx := t.Index(impactColumns...)
	set.HasImpact = impactIdx >= 0

	engIdx := make(map[string]int)
	for _, c := range opts.EngagementColumns {
		if i := t.Index(c); i >= 0 {
			engIdx[c] = i
			set.EngagementColumns = append(set.EngagementColumns, c)
		}
	}

	log.Debug().
		Int("rows", t.Len()).
		Bool("impact", set.HasImpact).
		Strs("engagement", set.EngagementColumns).
		Msg("reading mentions")

	dateOpts := opts.dateOptions()
	for r := 0; r < t.Len(); r++ {
		d, err := parseDate(t.Cell(r, dateIdx), dateOpts...)
		if err != nil {
			return set, score.NewDataError(opMentions, dateColumns[0], r+1, err)
		}

		m := score.RawMention{
			Date:      d,
			Title:     t.Cell(r, titleIdx),
			Snippet:   t.Cell(r, snippetIdx),
			Dimension: t.Cell(r, dimensionIdx),
			Sentiment: t.Cell(r, sentimentIdx),
			PageType:  t.Cell(r, pageTypeIdx),
		}

		if set.HasImpact {
			v, err := parseNumber(t.Cell(r, impactIdx))
			switch {
			case err == nil:
				m.Impact = &v
			case !errors.Is(err, errEmptyValue):
				return set, score.NewDataError(opMentions, impactColumns[0], r+1, err)
			}
		}

		if len(engIdx) > 0 {
			m.Engagement = make(map[string]float64, len(engIdx))
			for _, c := range set.EngagementColumns {
				v, err := parseNumber(t.Cell(r, engIdx[c]))
				switch {
				case err == nil:
					m.Engagement[c] = v
				case !errors.Is(err, errEmptyValue):
					return set, score.NewDataError(opMentions, c, r+1, err)
				}
			}
		}

		set.Mentions = append(set.Mentions, m)
	}

	return set, nil
}
