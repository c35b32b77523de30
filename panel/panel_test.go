package panel

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild(t *testing.T) {
	records := []schema.Record{
		{Country: "China", Timestamp: day(22), TotalConfirmed: 444},
		{Country: "China", Timestamp: day(22), TotalConfirmed: 14},
		{Country: "China", Timestamp: day(23), TotalConfirmed: 500},
		{Country: "Italy", Timestamp: day(22), TotalConfirmed: 0},
		{Country: "Italy", Timestamp: day(22), TotalConfirmed: 0},
		{Country: "Italy", Timestamp: day(23), TotalConfirmed: 2},
	}

	rows := Build(records, DefaultEpoch)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})

	assert.Equal(t, []schema.PanelRow{
		{Country: "China", Timestamp: day(22), TotalConfirmed: 458, DaysSinceWorldStart: 82},
		{Country: "China", Timestamp: day(23), TotalConfirmed: 500, DaysSinceWorldStart: 83},
		{Country: "Italy", Timestamp: day(23), TotalConfirmed: 2, DaysSinceWorldStart: 83},
	}, rows)

	for _, r := range rows {
		assert.NotZero(t, r.TotalConfirmed, "zero row kept")
	}
}

func TestBuildIsOrderIndependent(t *testing.T) {
	records := []schema.Record{
		{Country: "A", Timestamp: day(1), TotalConfirmed: 3},
		{Country: "B", Timestamp: day(1), TotalConfirmed: 4},
		{Country: "A", Timestamp: day(1), TotalConfirmed: 5},
	}
	reversed := []schema.Record{records[2], records[1], records[0]}

	assert.ElementsMatch(t, Build(records, DefaultEpoch), Build(reversed, DefaultEpoch))
}

func TestDaysSince(t *testing.T) {
	assert.Equal(t, 0, DaysSince(DefaultEpoch, DefaultEpoch))
	assert.Equal(t, 1, DaysSince(DefaultEpoch, DefaultEpoch.Add(36*time.Hour)))
	assert.Equal(t, -1, DaysSince(DefaultEpoch, DefaultEpoch.Add(-time.Hour)))
	assert.Equal(t, 61, DaysSince(DefaultEpoch, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSelect(t *testing.T) {
	rows := []schema.PanelRow{
		{Country: "A", Timestamp: day(1), TotalConfirmed: 1},
		{Country: "B", Timestamp: day(1), TotalConfirmed: 2},
	}

	selected, err := Select(rows, "B")
	assert.NoError(t, err)
	assert.Len(t, selected, 1)

	_, err = Select(rows, "C")
	var empty *EmptyPanelError
	assert.True(t, errors.As(err, &empty), "expect EmptyPanelError")
	assert.Equal(t, "C", empty.Country)
}

func TestCountries(t *testing.T) {
	rows := []schema.PanelRow{
		{Country: "Italy"}, {Country: "China"}, {Country: "Italy"},
	}
	assert.Equal(t, []string{"China", "Italy"}, Countries(rows))
}
