// Package feature derives the per-country growth features from a panel.
package feature

import (
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const logPrefix = "feature"

// seed value of new_cases on a country's first row
const firstRowNewCases = 1

// Compute sorts the panel by country and day and derives, per country, the
// new case count, log and arithmetic growth, the day index and the
// cumulative growth. Every input row yields exactly one feature row.
func Compute(rows []schema.PanelRow) []schema.FeatureRow {
	sorted := make([]schema.PanelRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Country != sorted[j].Country {
			return sorted[i].Country < sorted[j].Country
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	result := make([]schema.FeatureRow, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].Country == sorted[start].Country {
			end++
		}
		result = append(result, computeCountry(sorted[start:end])...)
		start = end
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "rows": len(result)}).Debug("computed features")

	return result
}

// computeCountry expects the rows of a single country ordered by day.
func computeCountry(rows []schema.PanelRow) []schema.FeatureRow {
	features := make([]schema.FeatureRow, len(rows))
	factors := make([]float64, len(rows))

	var previous float64
	for i, r := range rows {
		f := schema.FeatureRow{
			Country:             r.Country,
			Timestamp:           r.Timestamp,
			TotalConfirmed:      r.TotalConfirmed,
			DaysSinceWorldStart: r.DaysSinceWorldStart,
			DayIndex:            i + 1,
		}

		if i == 0 {
			f.NewCases = firstRowNewCases
		} else {
			f.NewCases = r.TotalConfirmed - previous
			f.LogGrowth = SafeLogRatio(r.TotalConfirmed, previous)
			f.ArithGrowth = SafeGrowth(r.TotalConfirmed, previous)
		}

		factors[i] = 1 + f.ArithGrowth
		features[i] = f
		previous = r.TotalConfirmed
	}

	cumulative := floats.CumProd(make([]float64, len(factors)), factors)
	for i := range features {
		features[i].CumGrowth = cumulative[i]
	}

	return features
}

// Split groups feature rows by country, keeping their order.
func Split(rows []schema.FeatureRow) map[string][]schema.FeatureRow {
	groups := make(map[string][]schema.FeatureRow)
	for _, r := range rows {
		groups[r.Country] = append(groups[r.Country], r)
	}
	return groups
}

// ForCountry returns the feature history of one country.
func ForCountry(rows []schema.FeatureRow, country string) ([]schema.FeatureRow, error) {
	history := make([]schema.FeatureRow, 0)
	for _, r := range rows {
		if r.Country == country {
			history = append(history, r)
		}
	}

	if len(history) == 0 {
		return nil, &panel.EmptyPanelError{Country: country}
	}
	return history, nil
}
