package forecast

import (
	"context"
	"errors"
	"time"

	"go.uber.org/cadence/activity"
	"go.uber.org/zap"

	forecastDriver "github.com/bitmark-inc/autonomy-forecast/forecast"
	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

// TrainModelActivity loads the feature history of a country, trains a model
// for it and records the binding of the run.
func (f *ForecastWorker) TrainModelActivity(ctx context.Context, runID, country string) (*schema.ModelBinding, error) {
	logger := activity.GetLogger(ctx)

	rows, err := f.mongo.GetFeatures(country)
	if err != nil {
		return nil, err
	}

	binding, err := f.bindings.CreateBinding(runID, country)
	if err != nil {
		return nil, err
	}

	logger.Info("Train model.", zap.String("country", country), zap.Int("rows", len(rows)))
	h, err := f.Registry.Train(ctx, country, rows)
	if err != nil {
		var failed *registry.TrainingFailedError
		if !errors.As(err, &failed) {
			err = &registry.TrainingFailedError{Country: country, Err: err}
		}
		return nil, err
	}

	if err := f.bindings.SetBindingModel(binding.ID, h.ProjectID, h.ModelID); err != nil {
		return nil, err
	}
	binding.ProjectID = h.ProjectID
	binding.ModelID = h.ModelID

	logger.Info("Model trained.", zap.String("country", country), zap.String("project", h.ProjectID), zap.String("model", h.ModelID))

	return binding, nil
}

// RolloutActivity forecasts horizon days with the model of binding and saves
// the result. It heartbeats once per predicted day. An aborted rollout saves
// its partial history and still fails.
func (f *ForecastWorker) RolloutActivity(ctx context.Context, binding schema.ModelBinding, horizon int) (*schema.Forecast, error) {
	logger := activity.GetLogger(ctx)

	history, err := f.mongo.GetFeatures(binding.Country)
	if err != nil {
		return nil, err
	}

	f.heartbeat(ctx, binding.Country, 0)

	driver := *f.Driver
	driver.Predictor = &heartbeatPredictor{
		Predictor: f.Driver.Predictor,
		country:   binding.Country,
		heartbeat: f.heartbeat,
	}

	h := registry.Handle{ProjectID: binding.ProjectID, ModelID: binding.ModelID}
	rows, err := driver.Rollout(ctx, binding.Country, h, history, horizon)

	result := schema.Forecast{
		RunID:     binding.RunID,
		Country:   binding.Country,
		ProjectID: binding.ProjectID,
		ModelID:   binding.ModelID,
		Horizon:   horizon,
		Status:    schema.ForecastCompleted,
		Rows:      rows,
		CreatedAt: time.Now().UTC(),
	}

	if err != nil {
		var aborted *forecastDriver.AbortedError
		if !errors.As(err, &aborted) {
			return nil, err
		}

		result.Status = schema.ForecastAborted
		result.Error = err.Error()
		result.Rows = aborted.Partial
		logger.Warn("Rollout aborted.", zap.String("country", binding.Country), zap.Int("step", aborted.Step), zap.Error(err))

		if saveErr := f.mongo.SaveForecast(result); saveErr != nil {
			logger.Error("Fail to save partial forecast.", zap.Error(saveErr))
		}
		return nil, err
	}

	if err := f.mongo.SaveForecast(result); err != nil {
		return nil, err
	}

	return &result, nil
}
