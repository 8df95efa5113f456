package data

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/mchmarny/repwatch/pkg/report"
	"github.com/mchmarny/repwatch/pkg/score"
)

const (
	insertRunSQL = `INSERT INTO run (
			id, generated_at, as_of, global_score, top_dimension, top_value,
			pct_negative, pct_neutral, pct_positive
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertMentionSQL = `INSERT INTO mention (
			run_id, idx, date, title, snippet, dimension, sentiment, page_type,
			sentiment_value, engagement_norm, influence_norm, source_weight,
			influence_power, score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertSnapshotSQL = `INSERT INTO snapshot (
			run_id, idx, date, open, high, low, close
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	insertDimensionSQL = `INSERT INTO snapshot_dimension (
			run_id, dimension, label, value, defaulted
		) VALUES (?, ?, ?, ?, ?)
	`

	selectMentionCountSQL = `SELECT COUNT(*) FROM mention WHERE run_id = ?`
)

// SaveResult summarizes an export.
type SaveResult struct {
	RunID      string `json:"run_id" yaml:"runId"`
	Mentions   int    `json:"mentions" yaml:"mentions"`
	Snapshots  int    `json:"snapshots" yaml:"snapshots"`
	Dimensions int    `json:"dimensions" yaml:"dimensions"`
}

// SaveReport writes the report in a single transaction.
func SaveReport(db *sql.DB, r *report.Report) (*SaveResult, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if r == nil {
		return nil, errors.New("report required")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "error starting export tx")
	}

	res := &SaveResult{RunID: r.RunID}

	if _, err := tx.Exec(insertRunSQL,
		r.RunID,
		r.GeneratedAt.Format(dateLayout),
		r.AsOf.Format(dateLayout),
		r.GlobalScore,
		string(r.Dimensions.Top),
		r.Dimensions.TopValue,
		r.Sentiment.Negative,
		r.Sentiment.Neutral,
		r.Sentiment.Positive,
	); err != nil {
		rollbackTransaction(tx)
		return nil, errors.Wrapf(err, "error inserting run %s", r.RunID)
	}

	if res.Mentions, err = saveMentions(tx, r.RunID, r.Mentions); err != nil {
		rollbackTransaction(tx)
		return nil, err
	}

	if res.Snapshots, err = saveCandles(tx, r.RunID, r.Candles); err != nil {
		rollbackTransaction(tx)
		return nil, err
	}

	if res.Dimensions, err = saveDimensions(tx, r.RunID, r.Dimensions.Values); err != nil {
		rollbackTransaction(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "error committing export tx")
	}

	log.Info().
		Str("run", res.RunID).
		Int("mentions", res.Mentions).
		Int("snapshots", res.Snapshots).
		Msg("report exported")

	return res, nil
}

// CountMentions returns the number of exported mentions for a run.
func CountMentions(db *sql.DB, runID string) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	var n int
	if err := db.QueryRow(selectMentionCountSQL, runID).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "error counting mentions for run %s", runID)
	}
	return n, nil
}

func saveMentions(tx *sql.Tx, runID string, list []score.Mention) (int, error) {
	stmt, err := tx.Prepare(insertMentionSQL)
	if err != nil {
		return 0, errors.Wrap(err, "error preparing mention insert")
	}
	defer stmt.Close()

	for i, m := range list {
		if _, err := stmt.Exec(
			runID, i, m.Date.Format(dateLayout),
			m.Title, m.Snippet, m.Dimension, string(score.ParseSentiment(m.Sentiment)), m.PageType,
			m.SentimentValue, m.EngagementNorm, m.InfluenceNorm, m.SourceWeight,
			m.InfluencePower, m.Score,
		); err != nil {
			return i, errors.Wrapf(err, "error inserting mention %d", i)
		}
	}
	return len(list), nil
}

func saveCandles(tx *sql.Tx, runID string, list []report.Candle) (int, error) {
	stmt, err := tx.Prepare(insertSnapshotSQL)
	if err != nil {
		return 0, errors.Wrap(err, "error preparing snapshot insert")
	}
	defer stmt.Close()

	for i, c := range list {
		if _, err := stmt.Exec(runID, i, c.Date.Format(dateLayout), c.Open, c.High, c.Low, c.Close); err != nil {
			return i, errors.Wrapf(err, "error inserting snapshot %d", i)
		}
	}
	return len(list), nil
}

func saveDimensions(tx *sql.Tx, runID string, list []score.DimensionValue) (int, error) {
	stmt, err := tx.Prepare(insertDimensionSQL)
	if err != nil {
		return 0, errors.Wrap(err, "error preparing dimension insert")
	}
	defer stmt.Close()

	for _, v := range list {
		defaulted := 0
		if v.Defaulted {
			defaulted = 1
		}
		if _, err := stmt.Exec(runID, string(v.Dimension), v.Label, v.Value, defaulted); err != nil {
			return 0, errors.Wrapf(err, "error inserting dimension %s", v.Dimension)
		}
	}
	return len(list), nil
}
