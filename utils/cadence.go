package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cadenceClient "go.uber.org/cadence/client"

	forecastWorker "github.com/bitmark-inc/autonomy-forecast/background/forecast"
	"github.com/bitmark-inc/autonomy-forecast/external/cadence"
)

// a forecast runs training and the rollout, bounded by their activity timeouts
const forecastExecutionTimeout = 4 * time.Hour

// TriggerForecast is a helper function to start the forecast workflow of a
// country. It returns the id of the started workflow.
func TriggerForecast(client cadence.WorkflowStarter, c context.Context, runID, country string, horizon int) (string, error) {
	id := fmt.Sprintf("forecast-%s-%s", country, runID)
	if _, err := client.StartWorkflow(c,
		cadenceClient.StartWorkflowOptions{
			ID:                           id,
			TaskList:                     forecastWorker.TaskListName,
			ExecutionStartToCloseTimeout: forecastExecutionTimeout,
			WorkflowIDReusePolicy:        cadenceClient.WorkflowIDReusePolicyAllowDuplicateFailedOnly,
		}, forecastWorker.WorkflowName, runID, country, horizon); err != nil {
		return "", err
	}
	return id, nil
}

// ForecastScheduler starts a forecast run per request.
type ForecastScheduler struct {
	Client cadence.WorkflowStarter
}

// ScheduleForecast starts a forecast of a country under a new run id.
func (s ForecastScheduler) ScheduleForecast(c context.Context, country string, horizon int) (string, error) {
	return TriggerForecast(s.Client, c, uuid.New().String(), country, horizon)
}
