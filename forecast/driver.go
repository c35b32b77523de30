package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-forecast/feature"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const logPrefix = "forecast"

// AbortedError is returned when a prediction fails in the middle of a
// rollout. Partial holds the history with the days completed before the
// failure.
type AbortedError struct {
	Country string
	Step    int
	Partial []schema.FeatureRow
	Err     error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("forecast of %q aborted at step %d: %s", e.Country, e.Step, e.Err)
}

func (e *AbortedError) Unwrap() error {
	return e.Err
}

// Driver runs rollouts against a predictor.
type Driver struct {
	Predictor registry.Predictor

	// Parity recomputes arith_growth and cum_growth on synthesized rows.
	Parity bool

	// StepTimeout bounds a single prediction call, none when zero.
	StepTimeout time.Duration
}

// Rollout appends horizon predicted days to the ascending history of a
// country and returns the extended copy. The history passed in is not
// modified.
func (d *Driver) Rollout(ctx context.Context, country string, h registry.Handle, history []schema.FeatureRow, horizon int) ([]schema.FeatureRow, error) {
	if len(history) == 0 {
		return nil, &panel.EmptyPanelError{Country: country}
	}

	rows := make([]schema.FeatureRow, len(history), len(history)+max(horizon, 0))
	copy(rows, history)

	last := rows[0].Timestamp
	for _, r := range rows[1:] {
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	start := last.AddDate(0, 0, 1)

	for k := 0; k < horizon; k++ {
		prev := rows[len(rows)-1]

		predicted, err := d.predict(ctx, h, prev)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"country": country,
				"step":    k + 1,
				"error":   err,
			}).Error("rollout aborted")
			return rows, &AbortedError{Country: country, Step: k + 1, Partial: rows, Err: err}
		}

		next := NextRow(prev, predicted, d.Parity)
		next.Timestamp = start.AddDate(0, 0, k)
		rows = append(rows, next)
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"country": country,
		"history": len(history),
		"horizon": horizon,
	}).Debug("rollout finished")

	return rows, nil
}

func (d *Driver) predict(ctx context.Context, h registry.Handle, prev schema.FeatureRow) (float64, error) {
	if d.StepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.StepTimeout)
		defer cancel()
	}

	v, err := d.Predictor.Predict(ctx, h, prev.WithoutTarget())
	if err != nil {
		var failed *registry.PredictionFailedError
		if !errors.As(err, &failed) {
			err = &registry.PredictionFailedError{Country: prev.Country, Err: err}
		}
		return 0, err
	}
	return v, nil
}

// NextRow synthesizes the row of the day after prev whose confirmed total is
// predicted.
func NextRow(prev schema.FeatureRow, predicted float64, parity bool) schema.FeatureRow {
	next := schema.FeatureRow{
		Country:             prev.Country,
		Timestamp:           prev.Timestamp.AddDate(0, 0, 1),
		TotalConfirmed:      predicted,
		DaysSinceWorldStart: prev.DaysSinceWorldStart + 1,
		NewCases:            predicted - prev.TotalConfirmed,
		LogGrowth:           feature.SafeLogRatio(predicted, prev.TotalConfirmed),
		DayIndex:            prev.DayIndex + 1,
		ArithGrowth:         prev.ArithGrowth,
		CumGrowth:           prev.CumGrowth,
		Forecast:            true,
	}

	if parity {
		next.ArithGrowth = feature.SafeGrowth(predicted, prev.TotalConfirmed)
		next.CumGrowth = prev.CumGrowth * (1 + next.ArithGrowth)
	}

	return next
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
