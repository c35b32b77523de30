package forecast

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/autonomy-forecast/feature"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

const defaultConcurrency = 4

// BindingRecorder keeps the country-model bindings of a run.
type BindingRecorder interface {
	CreateBinding(runID, country string) (*schema.ModelBinding, error)
	SetBindingModel(id uuid.UUID, projectID, modelID string) error
}

// Result is the outcome of one country. Rows holds the history followed by
// the forecast days, or the partial history of an aborted rollout.
type Result struct {
	Country string
	Binding schema.ModelBinding
	Rows    []schema.FeatureRow
	Err     error
}

// Runner trains and rolls out every requested country. A failing country
// does not stop the others.
type Runner struct {
	Trainer      registry.Trainer
	Driver       *Driver
	Bindings     BindingRecorder
	Concurrency  int
	Horizon      int
	TrainTimeout time.Duration
}

// Run returns one result per country, in the order of countries.
func (r *Runner) Run(ctx context.Context, runID string, features []schema.FeatureRow, countries []string) []Result {
	groups := feature.Split(features)
	results := make([]Result, len(countries))

	limit := r.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, country := range countries {
		i, country := i, country
		g.Go(func() error {
			results[i] = r.runCountry(ctx, runID, country, groups[country])
			if err := results[i].Err; err != nil {
				log.WithFields(log.Fields{
					"prefix":  logPrefix,
					"run":     runID,
					"country": country,
					"error":   err,
				}).Error("country forecast failed")
				sentry.CaptureException(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) runCountry(ctx context.Context, runID, country string, history []schema.FeatureRow) Result {
	result := Result{
		Country: country,
		Binding: schema.ModelBinding{RunID: runID, Country: country},
	}

	if len(history) == 0 {
		result.Err = &panel.EmptyPanelError{Country: country}
		return result
	}

	if r.Bindings != nil {
		b, err := r.Bindings.CreateBinding(runID, country)
		if err != nil {
			result.Err = err
			return result
		}
		result.Binding = *b
	}

	h, err := r.train(ctx, country, history)
	if err != nil {
		result.Err = err
		return result
	}
	result.Binding.ProjectID = h.ProjectID
	result.Binding.ModelID = h.ModelID

	if r.Bindings != nil {
		if err := r.Bindings.SetBindingModel(result.Binding.ID, h.ProjectID, h.ModelID); err != nil {
			result.Err = err
			return result
		}
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"run":     runID,
		"country": country,
		"project": h.ProjectID,
		"model":   h.ModelID,
	}).Info("model trained")

	rows, err := r.Driver.Rollout(ctx, country, h, history, r.Horizon)
	result.Rows = rows
	result.Err = err
	return result
}

func (r *Runner) train(ctx context.Context, country string, history []schema.FeatureRow) (registry.Handle, error) {
	if r.TrainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.TrainTimeout)
		defer cancel()
	}
	h, err := r.Trainer.Train(ctx, country, history)
	if err != nil {
		var failed *registry.TrainingFailedError
		if !errors.As(err, &failed) {
			err = &registry.TrainingFailedError{Country: country, Err: err}
		}
		return registry.Handle{}, err
	}
	return h, nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	failed := make([]Result, 0)
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
