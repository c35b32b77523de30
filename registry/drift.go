package registry

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const defaultDriftWindow = 7

var (
	ErrUnknownModel = fmt.Errorf("unknown model")
	errEmptyHistory = fmt.Errorf("empty history")
)

type driftModel struct {
	base  float64
	drift float64
}

// Drift is an in-process modeling service. Its model grows the confirmed
// total by the mean log growth of the last days of the training history.
// A country's current total is recovered from the cumulative growth of the
// row, so rows must carry cum_growth.
type Drift struct {
	window int

	mu     sync.RWMutex
	models map[string]driftModel
}

func NewDrift(window int) *Drift {
	if window <= 0 {
		window = defaultDriftWindow
	}
	return &Drift{
		window: window,
		models: make(map[string]driftModel),
	}
}

func (d *Drift) Train(ctx context.Context, country string, rows []schema.FeatureRow) (Handle, error) {
	if len(rows) == 0 {
		return Handle{}, &TrainingFailedError{Country: country, Err: errEmptyHistory}
	}
	if err := ctx.Err(); err != nil {
		return Handle{}, &TrainingFailedError{Country: country, Err: err}
	}

	// the first row carries the seed growth, not an observed one
	growth := make([]float64, 0, len(rows)-1)
	for _, r := range rows[1:] {
		growth = append(growth, r.LogGrowth)
	}
	if len(growth) > d.window {
		growth = growth[len(growth)-d.window:]
	}

	m := driftModel{base: rows[0].TotalConfirmed}
	if len(growth) > 0 {
		m.drift = stat.Mean(growth, nil)
	}

	h := Handle{
		ProjectID: fmt.Sprintf("drift-%s", country),
		ModelID:   uuid.New().String(),
	}

	d.mu.Lock()
	d.models[h.ModelID] = m
	d.mu.Unlock()

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"country": country,
		"model":   h.ModelID,
		"drift":   m.drift,
	}).Debug("drift model trained")

	return h, nil
}

func (d *Drift) Predict(ctx context.Context, h Handle, row schema.FeatureRow) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &PredictionFailedError{Country: row.Country, Err: err}
	}

	d.mu.RLock()
	m, ok := d.models[h.ModelID]
	d.mu.RUnlock()
	if !ok {
		return 0, &PredictionFailedError{Country: row.Country, Err: ErrUnknownModel}
	}

	current := m.base * row.CumGrowth
	return current * math.Exp(m.drift), nil
}
