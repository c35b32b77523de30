package forecast

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/autonomy-forecast/schema"
)

// training runs on the modeling service and may take hours
var trainActivityOptions = workflow.ActivityOptions{
	ScheduleToStartTimeout: time.Minute,
	StartToCloseTimeout:    3 * time.Hour,
}

// a rollout heartbeats before every step; the close timeout covers the
// longest horizon the api accepts at the default step timeout
var rolloutActivityOptions = workflow.ActivityOptions{
	ScheduleToStartTimeout: time.Minute,
	StartToCloseTimeout:    2 * time.Hour,
	HeartbeatTimeout:       5 * time.Minute,
}

// ForecastWorkflow trains a model for a country and rolls it out horizon
// days ahead. The forecast is persisted by the rollout, also when it aborts.
func (f *ForecastWorker) ForecastWorkflow(ctx workflow.Context, runID, country string, horizon int) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Start forecast.", zap.String("run", runID), zap.String("country", country), zap.Int("horizon", horizon))

	var binding schema.ModelBinding
	trainCtx := workflow.WithActivityOptions(ctx, trainActivityOptions)
	if err := workflow.ExecuteActivity(trainCtx, f.TrainModelActivity, runID, country).Get(ctx, &binding); err != nil {
		logger.Error("Fail to train model.", zap.String("country", country), zap.Error(err))
		sentry.CaptureException(err)
		return err
	}

	var result schema.Forecast
	rolloutCtx := workflow.WithActivityOptions(ctx, rolloutActivityOptions)
	if err := workflow.ExecuteActivity(rolloutCtx, f.RolloutActivity, binding, horizon).Get(ctx, &result); err != nil {
		logger.Error("Fail to roll out forecast.", zap.String("country", country), zap.Error(err))
		sentry.CaptureException(err)
		return err
	}

	logger.Info("Forecast completed.", zap.String("country", country), zap.Int("rows", len(result.Rows)))
	return nil
}
