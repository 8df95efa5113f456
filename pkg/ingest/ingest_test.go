package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/repwatch/pkg/score"
	"github.com/mchmarny/repwatch/pkg/table"
)

const (
	testMentionsCSV = `Date,Title,Snippet,Dimensión,Sentiment,Page Type,Impact,Instagram Likes,Tiktok Shares
2024-01-15 10:30:00,Nueva tienda,Abre nueva tienda,Innovación,Positive,news,10,3,2
2024-01-15,Queja,Clientes molestos,Gobernanza,negative,blog,"5,5",1,
2024-01-16,Nota,Sin opinión,,,radio,,,
`
	testScoresCSV = `Fecha,Open,High,Low,Close,Score_Innovacion,Score_Gobernanza,Score_Otro
2024-01-16,61,66,59,64,70,55,1
2024-01-15,60,63,58,61,,52,2
`
)

func mustCSV(t *testing.T, s string) *table.Table {
	t.Helper()
	tb, err := table.ReadCSV(strings.NewReader(s))
	require.NoError(t, err)
	return tb
}

func TestMentions(t *testing.T) {
	set, err := Mentions(mustCSV(t, testMentionsCSV), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, set.Mentions, 3)
	assert.True(t, set.HasImpact)
	assert.Equal(t, []string{"Instagram Likes", "Tiktok Shares"}, set.EngagementColumns)

	m := set.Mentions[0]
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), m.Date)
	assert.Equal(t, "Nueva tienda", m.Title)
	assert.Equal(t, "Innovación", m.Dimension)
	assert.Equal(t, "Positive", m.Sentiment)
	assert.Equal(t, "news", m.PageType)
	require.NotNil(t, m.Impact)
	assert.Equal(t, 10.0, *m.Impact)
	assert.Equal(t, 3.0, m.Engagement["Instagram Likes"])
	assert.Equal(t, 2.0, m.Engagement["Tiktok Shares"])

	m = set.Mentions[1]
	require.NotNil(t, m.Impact)
	assert.Equal(t, 5.5, *m.Impact)
	_, ok := m.Engagement["Tiktok Shares"]
	assert.False(t, ok)

	m = set.Mentions[2]
	assert.Nil(t, m.Impact)
	assert.Empty(t, m.Engagement)
	assert.Equal(t, "", m.Sentiment)
}

func TestMentions_OptionalColumnsAbsent(t *testing.T) {
	csv := "Fecha,Sentimiento\n2024-01-15,positive\n"
	set, err := Mentions(mustCSV(t, csv), DefaultOptions())
	require.NoError(t, err)
	assert.False(t, set.HasImpact)
	assert.Empty(t, set.EngagementColumns)

	list, err := score.Enrich(set, score.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1.0, list[0].InfluenceNorm)
	assert.Equal(t, 1.0, list[0].EngagementNorm)
}

func TestMentions_MissingRequired(t *testing.T) {
	_, err := Mentions(mustCSV(t, "Title,Sentiment\nx,positive\n"), Options{})
	require.Error(t, err)
	assert.True(t, score.IsDataError(err))
	assert.Contains(t, err.Error(), "Date")

	_, err = Mentions(mustCSV(t, "Date,Title\n2024-01-15,x\n"), Options{})
	require.Error(t, err)
	assert.True(t, score.IsDataError(err))
	assert.Contains(t, err.Error(), "Sentiment")
}

func TestMentions_BadValues(t *testing.T) {
	_, err := Mentions(mustCSV(t, "Date,Sentiment\nnot a date,positive\n"), Options{})
	require.Error(t, err)
	assert.True(t, score.IsDataError(err))
	assert.Contains(t, err.Error(), "row 1")

	_, err = Mentions(mustCSV(t, "Date,Sentiment,Impact\n2024-01-15,positive,lots\n"), Options{})
	require.Error(t, err)
	assert.True(t, score.IsDataError(err))
}

func TestSnapshots(t *testing.T) {
	series, err := Snapshots(mustCSV(t, testScoresCSV), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, series, 2)

	s := series[0]
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), s.Date)
	assert.Equal(t, 64.0, s.Close)
	assert.Equal(t, 70.0, s.Dimensions[score.DimensionInnovation])
	assert.Equal(t, 55.0, s.Dimensions[score.DimensionGovernance])
	assert.Len(t, s.Dimensions, 2)

	_, ok := series[1].Dimensions[score.DimensionInnovation]
	assert.False(t, ok, "empty cell stays absent")

	latest, err := score.LatestSnapshot(series)
	require.NoError(t, err)
	sum := score.DimensionSummary(*latest, nil)
	assert.Equal(t, score.DimensionInnovation, sum.Top)
	assert.Equal(t, score.NeutralValue, sum.Values[0].Value)
}

func TestSnapshots_MissingColumns(t *testing.T) {
	_, err := Snapshots(mustCSV(t, "Open,High,Low,Close\n1,2,3,4\n"), DefaultOptions())
	assert.True(t, score.IsDataError(err))

	_, err = Snapshots(mustCSV(t, "Fecha,Open,High,Low\n2024-01-01,1,2,3\n"), DefaultOptions())
	assert.True(t, score.IsDataError(err))
}

func TestSnapshots_EmptyTable(t *testing.T) {
	series, err := Snapshots(mustCSV(t, "Fecha,Open,High,Low,Close\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, series)

	_, err = score.LatestSnapshot(series)
	assert.True(t, score.IsDataError(err))
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want score.Dimension
		ok   bool
	}{
		{"Score_Innovación", score.DimensionInnovation, true},
		{"score_innovacion", score.DimensionInnovation, true},
		{"Innovation", score.DimensionInnovation, true},
		{"Score_Productos/Servicios", score.DimensionProducts, true},
		{"Products/Services", score.DimensionProducts, true},
		{"Lugar de trabajo", score.DimensionWorkplace, true},
		{"Score_Ciudadania", score.DimensionCitizenship, true},
		{"Financial Results", score.DimensionFinancial, true},
		{"Score_Otro", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, ok := ParseDimension(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("45306")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("45306.5")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2024-01-15T08:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = parseDate("")
	assert.ErrorIs(t, err, errEmptyValue)

	_, err = parseDate("yesterday-ish")
	assert.Error(t, err)
}

func TestParseDate_SlashOrder(t *testing.T) {
	dayFirst := Options{DayFirst: true}.dateOptions()
	monthFirst := Options{DayFirst: false}.dateOptions()

	tests := []struct {
		name string
		in   string
		opts []dateparse.ParserOption
		want time.Time
	}{
		{"day first unambiguous", "15/01/2024", dayFirst, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"day first ambiguous", "05/01/2024", dayFirst, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"day first with time", "15/01/2024 10:30", dayFirst, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"month first ambiguous", "05/01/2024", monthFirst, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"month first swaps when invalid", "15/01/2024", monthFirst, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"day first swaps when invalid", "01/15/2024", dayFirst, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDate(tt.in, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestParseDate_YearIsNotSerial(t *testing.T) {
	d, err := parseDate("2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
}

func TestMentions_DayFirstColumn(t *testing.T) {
	csv := "Fecha,Sentimiento\n15/01/2024,Positive\n05/01/2024,Negative\n"

	set, err := Mentions(mustCSV(t, csv), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, set.Mentions, 2)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), set.Mentions[0].Date)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), set.Mentions[1].Date)
}

func TestMentions_BadEngagementNamesFirstColumn(t *testing.T) {
	csv := "Date,Sentiment,Instagram Likes,Tiktok Shares\n2024-01-15,positive,many,lots\n"
	opts := Options{EngagementColumns: []string{"Instagram Likes", "Tiktok Shares"}}

	for i := 0; i < 20; i++ {
		_, err := Mentions(mustCSV(t, csv), opts)
		require.Error(t, err)
		var de *score.DataError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "Instagram Likes", de.Field)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"5,5", 5.5},
		{"1,234", 1234},
		{"1.234,5", 1234.5},
		{"1,234.5", 1234.5},
		{" 12 500 ", 12500},
		{"-3.25", -3.25},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := parseNumber(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-9)
		})
	}

	_, err := parseNumber("")
	assert.ErrorIs(t, err, errEmptyValue)

	_, err = parseNumber("NaN")
	assert.Error(t, err)

	_, err = parseNumber("abc")
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func TestLoad_Local(t *testing.T) {
	dir := t.TempDir()
	src := Source{
		Mentions: writeFile(t, dir, "mentions.csv", testMentionsCSV),
		Scores:   writeFile(t, dir, "scores.csv", testScoresCSV),
	}

	in, err := Load(context.Background(), src, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, in.Mentions.Mentions, 3)
	assert.Len(t, in.Scores, 2)

	_, err = Load(context.Background(), Source{Mentions: src.Mentions}, Options{})
	assert.Error(t, err)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/mentions.csv":
			_, _ = w.Write([]byte(testMentionsCSV))
		case "/files/scores.csv":
			_, _ = w.Write([]byte(testScoresCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := Source{
		Mentions: srv.URL + "/files/mentions.csv",
		Scores:   srv.URL + "/files/scores.csv",
	}
	in, err := Load(context.Background(), src, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, in.Mentions.Mentions, 3)

	src.Scores = srv.URL + "/files/missing.csv"
	_, err = Load(context.Background(), src, DefaultOptions())
	assert.Error(t, err)
}

func TestLoadMentions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mentions.csv", testMentionsCSV)

	set, err := LoadMentions(context.Background(), path, "", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, set.Mentions, 3)

	_, err = LoadMentions(context.Background(), "", "", Options{})
	assert.Error(t, err)

	_, err = LoadMentions(context.Background(), filepath.Join(dir, "nope.csv"), "", Options{})
	assert.Error(t, err)
}
