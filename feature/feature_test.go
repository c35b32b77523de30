package feature

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-forecast/normalize"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const delta = 1e-9

func day(d int) time.Time {
	return time.Date(2020, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeScenario(t *testing.T) {
	rows := []schema.PanelRow{
		{Country: "A", Timestamp: day(3), TotalConfirmed: 30},
		{Country: "A", Timestamp: day(1), TotalConfirmed: 10},
		{Country: "A", Timestamp: day(2), TotalConfirmed: 15},
	}

	features := Compute(rows)
	assert.Len(t, features, 3)

	expectedNewCases := []float64{1, 5, 15}
	expectedLog := []float64{0, math.Log(1.5), math.Log(2)}
	expectedArith := []float64{0, 0.5, 1.0}
	expectedCum := []float64{1, 1.5, 3.0}

	for i, f := range features {
		assert.Equal(t, day(i+1), f.Timestamp, "wrong order")
		assert.Equal(t, i+1, f.DayIndex, "wrong day index")
		assert.InDelta(t, expectedNewCases[i], f.NewCases, delta, "wrong new cases")
		assert.InDelta(t, expectedLog[i], f.LogGrowth, delta, "wrong log growth")
		assert.InDelta(t, expectedArith[i], f.ArithGrowth, delta, "wrong arith growth")
		assert.InDelta(t, expectedCum[i], f.CumGrowth, delta, "wrong cum growth")
	}
}

func TestComputePerCountryState(t *testing.T) {
	rows := []schema.PanelRow{
		{Country: "B", Timestamp: day(2), TotalConfirmed: 4},
		{Country: "A", Timestamp: day(1), TotalConfirmed: 100},
		{Country: "B", Timestamp: day(1), TotalConfirmed: 2},
		{Country: "A", Timestamp: day(2), TotalConfirmed: 200},
		{Country: "B", Timestamp: day(5), TotalConfirmed: 8},
	}

	features := Compute(rows)
	groups := Split(features)
	assert.Len(t, groups, 2)

	for country, history := range groups {
		first := history[0]
		assert.Equal(t, 1.0, first.NewCases, "first row new cases of %s", country)
		assert.Equal(t, 0.0, first.LogGrowth)
		assert.Equal(t, 0.0, first.ArithGrowth)
		assert.Equal(t, 1.0, first.CumGrowth)

		for i, f := range history {
			assert.Equal(t, i+1, f.DayIndex, "day index of %s", country)
			if i > 0 {
				assert.True(t, f.Timestamp.After(history[i-1].Timestamp), "not ascending")
			}
		}
	}

	// the gap between day 2 and day 5 is kept, not filled
	assert.Len(t, groups["B"], 3)
	assert.Equal(t, day(5), groups["B"][2].Timestamp)
	assert.Equal(t, 4.0, groups["B"][2].NewCases)
}

func TestComputeDecreasingCounts(t *testing.T) {
	rows := []schema.PanelRow{
		{Country: "A", Timestamp: day(1), TotalConfirmed: 10},
		{Country: "A", Timestamp: day(2), TotalConfirmed: 10},
		{Country: "A", Timestamp: day(3), TotalConfirmed: 5},
		{Country: "A", Timestamp: day(4), TotalConfirmed: -5},
	}

	features := Compute(rows)

	assert.Equal(t, 0.0, features[1].LogGrowth, "flat count")
	assert.Equal(t, 0.0, features[1].ArithGrowth, "flat count")
	assert.InDelta(t, math.Log(0.5), features[2].LogGrowth, delta)
	assert.Equal(t, 0.0, features[3].LogGrowth, "non-positive ratio")
	for _, f := range features {
		assert.False(t, math.IsNaN(f.LogGrowth) || math.IsInf(f.LogGrowth, 0))
		assert.False(t, math.IsNaN(f.ArithGrowth) || math.IsInf(f.ArithGrowth, 0))
		assert.False(t, math.IsNaN(f.CumGrowth) || math.IsInf(f.CumGrowth, 0))
	}
}

func TestComputeEmpty(t *testing.T) {
	assert.Empty(t, Compute(nil))
}

func TestPipelineIsDeterministic(t *testing.T) {
	records := []schema.Record{
		{Country: "A", Timestamp: day(1), TotalConfirmed: 0},
		{Country: "A", Timestamp: day(2), TotalConfirmed: 3},
		{Country: "A", Timestamp: day(2), TotalConfirmed: 4},
		{Country: "B", Timestamp: day(1), TotalConfirmed: 1},
		{Country: "A", Timestamp: day(3), TotalConfirmed: 12},
		{Country: "B", Timestamp: day(2), TotalConfirmed: 1},
	}

	first := Compute(panel.Build(records, panel.DefaultEpoch))
	second := Compute(panel.Build(records, panel.DefaultEpoch))
	assert.Equal(t, first, second)

	for _, f := range first {
		assert.NotZero(t, f.TotalConfirmed)
	}
	assert.Equal(t, day(2), first[0].Timestamp, "country starts at its first case")
}

func TestPipelineFromSource(t *testing.T) {
	raw := "Province/State,Country/Region,Lat,Long,Date,Value\n" +
		"#adm1+name,#country+name,#geo+lat,#geo+lon,#date,#affected+infected+value+num\n" +
		",A,1,1,2020-03-03,30\n" +
		",A,1,1,2020-03-01,10\n" +
		"North,A,1,1,2020-03-02,5\n" +
		"South,A,1,1,2020-03-02,10\n"

	records, err := normalize.LoadCSV(strings.NewReader(raw), normalize.DefaultSourceSchema())
	assert.NoError(t, err)

	features := Compute(panel.Build(records, panel.DefaultEpoch))
	assert.Len(t, features, 3)
	assert.Equal(t, []float64{10, 15, 30}, []float64{
		features[0].TotalConfirmed, features[1].TotalConfirmed, features[2].TotalConfirmed,
	})
	assert.InDelta(t, 3.0, features[2].CumGrowth, delta)
}

func TestForCountry(t *testing.T) {
	rows := []schema.FeatureRow{{Country: "A"}, {Country: "B"}, {Country: "A"}}

	history, err := ForCountry(rows, "A")
	assert.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = ForCountry(rows, "C")
	var empty *panel.EmptyPanelError
	assert.True(t, errors.As(err, &empty), "expect EmptyPanelError")
}
