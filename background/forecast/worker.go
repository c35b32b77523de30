package forecast

import (
	"github.com/uber-go/tally"
	"go.uber.org/cadence/.gen/go/cadence/workflowserviceclient"
	"go.uber.org/cadence/activity"
	"go.uber.org/cadence/worker"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/autonomy-forecast/background"
	"github.com/bitmark-inc/autonomy-forecast/external/cadence"
	"github.com/bitmark-inc/autonomy-forecast/store"
)

const (
	TaskListName = "autonomy-forecast-tasks"
	WorkflowName = "ForecastWorkflow"
)

type ForecastWorker struct {
	background.Background
	domain   string
	mongo    store.MongoStore
	bindings store.BindingStore

	heartbeat heartbeatFunc
}

func NewForecastWorker(domain string, mongo store.MongoStore, bindings store.BindingStore, b background.Background) *ForecastWorker {
	return &ForecastWorker{
		Background: b,
		domain:     domain,
		mongo:      mongo,
		bindings:   bindings,
		heartbeat:  activity.RecordHeartbeat,
	}
}

func (f *ForecastWorker) Register() {
	workflow.RegisterWithOptions(f.ForecastWorkflow, workflow.RegisterOptions{Name: WorkflowName})

	activity.RegisterWithOptions(f.TrainModelActivity, activity.RegisterOptions{Name: "TrainModelActivity"})
	activity.RegisterWithOptions(f.RolloutActivity, activity.RegisterOptions{Name: "RolloutActivity"})
}

func (f *ForecastWorker) Start(service workflowserviceclient.Interface, logger *zap.Logger) {
	workerOptions := worker.Options{
		Logger:        logger,
		MetricsScope:  tally.NewTestScope(TaskListName, map[string]string{}),
		DataConverter: cadence.NewMsgPackDataConverter(),
	}

	worker := worker.New(
		service,
		f.domain,
		TaskListName,
		workerOptions)

	if err := worker.Start(); err != nil {
		panic("Failed to start worker")
	}

	logger.Info("Started Worker.", zap.String("worker", TaskListName))

	select {}
}
