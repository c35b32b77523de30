package utils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	cadenceClient "go.uber.org/cadence/client"
	"go.uber.org/cadence/workflow"

	forecastWorker "github.com/bitmark-inc/autonomy-forecast/background/forecast"
)

type recordingStarter struct {
	options  cadenceClient.StartWorkflowOptions
	workflow interface{}
	args     []interface{}
	err      error
}

func (r *recordingStarter) StartWorkflow(ctx context.Context, options cadenceClient.StartWorkflowOptions, wf interface{}, args ...interface{}) (*workflow.Execution, error) {
	r.options = options
	r.workflow = wf
	r.args = args
	if r.err != nil {
		return nil, r.err
	}
	return &workflow.Execution{ID: options.ID, RunID: "cadence-run"}, nil
}

func TestTriggerForecast(t *testing.T) {
	s := &recordingStarter{}

	id, err := TriggerForecast(s, context.Background(), "run-1", "Italy", 10)
	assert.NoError(t, err)
	assert.Equal(t, "forecast-Italy-run-1", id)
	assert.Equal(t, forecastWorker.TaskListName, s.options.TaskList)
	assert.Equal(t, forecastWorker.WorkflowName, s.workflow)
	assert.Equal(t, []interface{}{"run-1", "Italy", 10}, s.args)
}

func TestTriggerForecastError(t *testing.T) {
	s := &recordingStarter{err: errors.New("domain not exists")}

	id, err := TriggerForecast(s, context.Background(), "run-1", "Italy", 10)
	assert.Error(t, err)
	assert.Empty(t, id)
}

func TestScheduleForecast(t *testing.T) {
	s := &recordingStarter{}

	id, err := ForecastScheduler{Client: s}.ScheduleForecast(context.Background(), "Spain", 5)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "forecast-Spain-"))
	assert.Equal(t, 5, s.args[2])
}
