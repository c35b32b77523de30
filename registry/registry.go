// Package registry is the boundary to the modeling service that trains one
// model per country and answers one-day-ahead predictions.
package registry

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const logPrefix = "registry"

// Handle identifies a trained model on the modeling service.
type Handle struct {
	ProjectID string `json:"project_id"`
	ModelID   string `json:"model_id"`
}

// Trainer trains a model on the feature history of a country. Training may
// take a long time and blocks until the model is ready or ctx is done.
type Trainer interface {
	Train(ctx context.Context, country string, rows []schema.FeatureRow) (Handle, error)
}

// Predictor predicts the confirmed total of the day following row. The row is
// passed with its target blanked.
type Predictor interface {
	Predict(ctx context.Context, h Handle, row schema.FeatureRow) (float64, error)
}

// Registry - interface of the modeling service
type Registry interface {
	Trainer
	Predictor
}

type TrainingFailedError struct {
	Country string
	Err     error
}

func (e *TrainingFailedError) Error() string {
	return fmt.Sprintf("training failed for %q: %s", e.Country, e.Err)
}

func (e *TrainingFailedError) Unwrap() error {
	return e.Err
}

type PredictionFailedError struct {
	Country string
	Err     error
}

func (e *PredictionFailedError) Error() string {
	return fmt.Sprintf("prediction failed for %q: %s", e.Country, e.Err)
}

func (e *PredictionFailedError) Unwrap() error {
	return e.Err
}
