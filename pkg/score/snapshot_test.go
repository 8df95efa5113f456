package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestSnapshot(t *testing.T) {
	series := []Snapshot{
		{Date: testDay.AddDate(0, 0, 2), Close: 70},
		{Date: testDay, Close: 60},
		{Date: testDay.AddDate(0, 0, 1), Close: 65},
	}

	latest, err := LatestSnapshot(series)
	require.NoError(t, err)
	assert.Equal(t, 70.0, latest.Close)
	assert.Equal(t, 70.0, GlobalScore(*latest))

	assert.Equal(t, 70.0, series[0].Close, "input must not be reordered")
}

func TestLatestSnapshot_Empty(t *testing.T) {
	_, err := LatestSnapshot(nil)
	require.Error(t, err)
	assert.True(t, IsDataError(err))
}

func TestSortSnapshots_Stable(t *testing.T) {
	series := []Snapshot{
		{Date: testDay, Close: 1},
		{Date: testDay.AddDate(0, 0, -1), Close: 2},
		{Date: testDay, Close: 3},
	}

	sorted := SortSnapshots(series)
	require.Len(t, sorted, 3)
	assert.Equal(t, 2.0, sorted[0].Close)
	assert.Equal(t, 1.0, sorted[1].Close)
	assert.Equal(t, 3.0, sorted[2].Close)
}

func TestDimensionSummary(t *testing.T) {
	s := Snapshot{
		Date: testDay,
		Dimensions: map[Dimension]float64{
			DimensionProducts:    61,
			DimensionWorkplace:   72,
			DimensionGovernance:  72,
			DimensionCitizenship: 40,
			DimensionLeadership:  55,
			DimensionFinancial:   58,
		},
	}

	sum := DimensionSummary(s, nil)
	require.Len(t, sum.Values, len(Dimensions))
	for i, v := range sum.Values {
		assert.Equal(t, Dimensions[i], v.Dimension)
	}

	assert.Equal(t, DimensionWorkplace, sum.Top)
	assert.Equal(t, 72.0, sum.TopValue)

	innovation := sum.Values[1]
	assert.Equal(t, DimensionInnovation, innovation.Dimension)
	assert.Equal(t, NeutralValue, innovation.Value)
	assert.True(t, innovation.Defaulted)
	assert.Equal(t, "Innovation", innovation.Label)
}

func TestDimensionSummary_AllMissing(t *testing.T) {
	sum := DimensionSummary(Snapshot{Date: testDay}, nil)
	require.Len(t, sum.Values, len(Dimensions))
	for _, v := range sum.Values {
		assert.Equal(t, NeutralValue, v.Value)
	}
	assert.Equal(t, DimensionProducts, sum.Top)
	assert.Equal(t, NeutralValue, sum.TopValue)
}

func TestDimensionSummary_Subset(t *testing.T) {
	s := Snapshot{Dimensions: map[Dimension]float64{DimensionFinancial: 90}}
	sum := DimensionSummary(s, []Dimension{DimensionLeadership, DimensionFinancial})
	require.Len(t, sum.Values, 2)
	assert.Equal(t, DimensionFinancial, sum.Top)
}

func TestDimension_Column(t *testing.T) {
	assert.Equal(t, "Score_Innovación", DimensionInnovation.Column())
	assert.Equal(t, "Financial Results", DimensionFinancial.Label())
	assert.Equal(t, "x", Dimension("x").Label())
}

func TestDataError_Message(t *testing.T) {
	err := NewDataError("ingest", "Date", 3, errMissingDate)
	assert.Contains(t, err.Error(), "ingest: Date (row 3)")
	assert.ErrorIs(t, err, errMissingDate)
	assert.False(t, IsDataError(nil))
}
