package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/repwatch/pkg/report"
	"github.com/mchmarny/repwatch/pkg/score"
)

func testReport(t *testing.T) *report.Report {
	t.Helper()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	set := score.MentionSet{
		Mentions: []score.RawMention{
			{Date: day, Title: "a", Sentiment: "Positive", PageType: "news"},
			{Date: day, Title: "b", Sentiment: "negative", PageType: "blog"},
			{Date: day.AddDate(0, 0, 1), Title: "c", Sentiment: "", PageType: "tiktok"},
		},
	}
	series := []score.Snapshot{
		{Date: day, Open: 1, High: 2, Low: 0.5, Close: 1.5},
		{Date: day, Open: 1.5, High: 2, Low: 1, Close: 1.8},
	}
	r, err := report.Build(set, series, score.DefaultWeights())
	require.NoError(t, err)
	return r
}

func TestSaveReport(t *testing.T) {
	db := setupTestDB(t)
	r := testReport(t)

	res, err := SaveReport(db, r)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, res.RunID)
	assert.Equal(t, 3, res.Mentions)
	assert.Equal(t, 2, res.Snapshots)
	assert.Equal(t, len(score.Dimensions), res.Dimensions)

	n, err := CountMentions(db, r.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var sentiment string
	var value int
	err = db.QueryRow("SELECT sentiment, sentiment_value FROM mention WHERE run_id = ? AND idx = 0", r.RunID).Scan(&sentiment, &value)
	require.NoError(t, err)
	assert.Equal(t, "positive", sentiment)
	assert.Equal(t, 1, value)

	var defaulted int
	err = db.QueryRow("SELECT COUNT(*) FROM snapshot_dimension WHERE run_id = ? AND defaulted = 1", r.RunID).Scan(&defaulted)
	require.NoError(t, err)
	assert.Equal(t, len(score.Dimensions), defaulted)
}

func TestSaveReport_Errors(t *testing.T) {
	_, err := SaveReport(nil, testReport(t))
	assert.Error(t, err)

	db := setupTestDB(t)
	_, err = SaveReport(db, nil)
	assert.Error(t, err)

	_, err = CountMentions(nil, "x")
	assert.Error(t, err)
}

func TestSaveReport_ReInitClears(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, DataFileName)
	require.NoError(t, Init(dbPath))

	db, err := GetDB(dbPath)
	require.NoError(t, err)
	r := testReport(t)
	_, err = SaveReport(db, r)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, Init(dbPath))
	db, err = GetDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	n, err := CountMentions(db, r.RunID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
