// Package panel aggregates canonical records into a country-day panel.
package panel

import (
	"fmt"
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const logPrefix = "panel"

// DefaultEpoch is the day the world timeline is counted from.
var DefaultEpoch = time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)

// EmptyPanelError is returned when a requested country has no rows left
// after zero rows were dropped.
type EmptyPanelError struct {
	Country string
}

func (e *EmptyPanelError) Error() string {
	return fmt.Sprintf("empty panel for country %q", e.Country)
}

type key struct {
	country string
	day     time.Time
}

// Build sums records per country and day, drops days whose sum is exactly
// zero and stamps each row with its day offset from epoch. The order of the
// result is not meaningful.
func Build(records []schema.Record, epoch time.Time) []schema.PanelRow {
	sums := make(map[key]float64)
	order := make([]key, 0)

	for _, r := range records {
		k := key{country: r.Country, day: r.Timestamp}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += r.TotalConfirmed
	}

	rows := make([]schema.PanelRow, 0, len(order))
	dropped := 0
	for _, k := range order {
		total := sums[k]
		if total == 0 {
			dropped++
			continue
		}
		rows = append(rows, schema.PanelRow{
			Country:             k.country,
			Timestamp:           k.day,
			TotalConfirmed:      total,
			DaysSinceWorldStart: DaysSince(epoch, k.day),
		})
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"records": len(records),
		"rows":    len(rows),
		"dropped": dropped,
	}).Debug("built country-day panel")

	return rows
}

// DaysSince returns the whole days elapsed from epoch to t, rounded down.
func DaysSince(epoch, t time.Time) int {
	return int(math.Floor(t.Sub(epoch).Hours() / 24))
}

// Select returns the rows of one country.
func Select(rows []schema.PanelRow, country string) ([]schema.PanelRow, error) {
	selected := make([]schema.PanelRow, 0)
	for _, r := range rows {
		if r.Country == country {
			selected = append(selected, r)
		}
	}

	if len(selected) == 0 {
		return nil, &EmptyPanelError{Country: country}
	}
	return selected, nil
}

// Countries lists the distinct countries of the panel in ascending order.
func Countries(rows []schema.PanelRow) []string {
	seen := make(map[string]struct{})
	countries := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		countries = append(countries, r.Country)
	}
	sort.Strings(countries)
	return countries
}
