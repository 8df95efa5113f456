// Package report assembles everything a dashboard renders from one run of
// the scoring pipeline.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mchmarny/repwatch/pkg/score"
)

// Candle is one OHLC point of the global score series.
type Candle struct {
	Date  time.Time `json:"date" yaml:"date"`
	Open  float64   `json:"open" yaml:"open"`
	High  float64   `json:"high" yaml:"high"`
	Low   float64   `json:"low" yaml:"low"`
	Close float64   `json:"close" yaml:"close"`
}

// Report is the output of a single scoring run.
type Report struct {
	RunID       string                `json:"run_id" yaml:"runId"`
	GeneratedAt time.Time             `json:"generated_at" yaml:"generatedAt"`
	AsOf        time.Time             `json:"as_of" yaml:"asOf"`
	GlobalScore float64               `json:"global_score" yaml:"globalScore"`
	Dimensions  score.Summary         `json:"dimensions" yaml:"dimensions"`
	Sentiment   score.Distribution    `json:"sentiment" yaml:"sentiment"`
	Counts      score.Counts          `json:"counts" yaml:"counts"`
	TopPositive *score.Mention        `json:"top_positive,omitempty" yaml:"topPositive,omitempty"`
	TopNegative *score.Mention        `json:"top_negative,omitempty" yaml:"topNegative,omitempty"`
	Breakdown   []score.DimensionStat `json:"breakdown" yaml:"breakdown"`
	Candles     []Candle              `json:"candles" yaml:"candles"`
	Mentions    []score.Mention       `json:"mentions" yaml:"mentions"`
}

// Build runs the pipeline once over both inputs. A *score.DataError is
// returned when the inputs can not be scored; nothing is partially built.
func Build(set score.MentionSet, series []score.Snapshot, w score.Weights) (*Report, error) {
	mentions, err := score.Enrich(set, w)
	if err != nil {
		return nil, err
	}

	latest, err := score.LatestSnapshot(series)
	if err != nil {
		return nil, err
	}

	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		AsOf:        latest.Date,
		GlobalScore: score.GlobalScore(*latest),
		Dimensions:  score.DimensionSummary(*latest, nil),
		Sentiment:   score.SentimentDistribution(mentions),
		Counts:      score.SentimentCounts(mentions),
		Breakdown:   score.DimensionBreakdown(mentions),
		Candles:     make([]Candle, 0, len(series)),
		Mentions:    mentions,
	}

	if m, ok := score.TopMention(mentions, score.SignPositive); ok {
		r.TopPositive = m
	}
	if m, ok := score.TopMention(mentions, score.SignNegative); ok {
		r.TopNegative = m
	}

	for _, s := range score.SortSnapshots(series) {
		r.Candles = append(r.Candles, Candle{
			Date:  s.Date,
			Open:  s.Open,
			High:  s.High,
			Low:   s.Low,
			Close: s.Close,
		})
	}

	log.Debug().
		Str("run", r.RunID).
		Int("mentions", len(mentions)).
		Int("snapshots", len(series)).
		Float64("global", r.GlobalScore).
		Msg("report built")

	return r, nil
}
