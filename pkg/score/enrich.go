package score

import (
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var errMissingDate = errors.New("missing or invalid date")

// Enrich derives the scoring fields for every mention in the set. The input
// is not modified, so calling it again on the same set yields the same result.
//
// Engagement is the sum of the present engagement columns (empty cells count
// as 0) divided by the column maximum. Influence is Impact divided by its
// maximum. When a column is absent or its maximum is 0 the normalized value
// is 1 for every row, so the multiplicative score never collapses to 0.
func Enrich(set MentionSet, w Weights) ([]Mention, error) {
	list := make([]Mention, 0, len(set.Mentions))

	engagement := make([]float64, len(set.Mentions))
	impact := make([]float64, len(set.Mentions))
	var maxEngagement, maxImpact float64

	for i, m := range set.Mentions {
		if m.Date.IsZero() {
			return nil, NewDataError("enrich", "date", i+1, errMissingDate)
		}

		for _, col := range set.EngagementColumns {
			engagement[i] += nonNegative(m.Engagement[col])
		}
		maxEngagement = math.Max(maxEngagement, engagement[i])

		if set.HasImpact && m.Impact != nil {
			impact[i] = nonNegative(*m.Impact)
		}
		maxImpact = math.Max(maxImpact, impact[i])
	}

	useEngagement := len(set.EngagementColumns) > 0 && maxEngagement > 0
	useImpact := set.HasImpact && maxImpact > 0

	if !useEngagement {
		log.Debug().
			Int("columns", len(set.EngagementColumns)).
			Float64("max", maxEngagement).
			Msg("engagement defaulted to 1")
	}
	if !useImpact {
		log.Debug().
			Bool("column", set.HasImpact).
			Float64("max", maxImpact).
			Msg("influence defaulted to 1")
	}

	for i, m := range set.Mentions {
		s := ParseSentiment(m.Sentiment).Value()

		e := Mention{
			RawMention:     m,
			SentimentValue: s,
			EngagementNorm: 1,
			InfluenceNorm:  1,
			SourceWeight:   w.Source(m.PageType),
		}
		if useEngagement {
			e.EngagementNorm = engagement[i] / maxEngagement
		}
		if useImpact {
			e.InfluenceNorm = impact[i] / maxImpact
		}

		e.InfluencePower = float64(1+abs(s)) * e.InfluenceNorm * e.EngagementNorm * e.SourceWeight
		e.Score = float64(s) * e.InfluencePower

		list = append(list, e)
	}

	return list, nil
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
