package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"github.com/bitmark-inc/autonomy-forecast/feature"
	"github.com/bitmark-inc/autonomy-forecast/mocks"
	"github.com/bitmark-inc/autonomy-forecast/panel"
	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

type RunnerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	registry *mocks.MockRegistry
	bindings *mocks.MockBindingStore
	features []schema.FeatureRow
}

func (s *RunnerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.registry = mocks.NewMockRegistry(s.ctrl)
	s.bindings = mocks.NewMockBindingStore(s.ctrl)
	s.features = feature.Compute([]schema.PanelRow{
		{Country: "A", Timestamp: day(1), TotalConfirmed: 10},
		{Country: "A", Timestamp: day(2), TotalConfirmed: 15},
		{Country: "A", Timestamp: day(3), TotalConfirmed: 30},
		{Country: "B", Timestamp: day(1), TotalConfirmed: 1},
		{Country: "B", Timestamp: day(2), TotalConfirmed: 2},
	})
}

func (s *RunnerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RunnerTestSuite) newRunner() *Runner {
	return &Runner{
		Trainer:     s.registry,
		Driver:      &Driver{Predictor: s.registry, Parity: true},
		Bindings:    s.bindings,
		Concurrency: 2,
		Horizon:     3,
	}
}

func (s *RunnerTestSuite) TestRunIsolatesCountries() {
	idA, idB := uuid.New(), uuid.New()
	handleA := registry.Handle{ProjectID: "p-A", ModelID: "m-A"}

	s.bindings.EXPECT().CreateBinding("run-1", "A").
		Return(&schema.ModelBinding{ID: idA, RunID: "run-1", Country: "A"}, nil)
	s.bindings.EXPECT().CreateBinding("run-1", "B").
		Return(&schema.ModelBinding{ID: idB, RunID: "run-1", Country: "B"}, nil)
	s.bindings.EXPECT().SetBindingModel(idA, "p-A", "m-A").Return(nil)

	s.registry.EXPECT().Train(gomock.Any(), "A", gomock.Any()).Return(handleA, nil)
	s.registry.EXPECT().Train(gomock.Any(), "B", gomock.Any()).Return(registry.Handle{}, errors.New("quota exceeded"))
	s.registry.EXPECT().Predict(gomock.Any(), handleA, gomock.Any()).Return(35.0, nil).Times(3)

	results := s.newRunner().Run(context.Background(), "run-1", s.features, []string{"A", "B", "C"})
	s.Len(results, 3)

	a := results[0]
	s.Equal("A", a.Country)
	s.NoError(a.Err)
	s.Len(a.Rows, 6)
	s.Equal(idA, a.Binding.ID)
	s.Equal("p-A", a.Binding.ProjectID)
	s.Equal("m-A", a.Binding.ModelID)
	s.True(a.Binding.Trained())

	b := results[1]
	s.Equal("B", b.Country)
	var trainErr *registry.TrainingFailedError
	s.True(errors.As(b.Err, &trainErr))
	s.Equal("B", trainErr.Country)
	s.False(b.Binding.Trained())
	s.Empty(b.Rows)

	c := results[2]
	var empty *panel.EmptyPanelError
	s.True(errors.As(c.Err, &empty))
	s.Equal("C", empty.Country)

	failed := Failed(results)
	s.Len(failed, 2)
	s.Equal("B", failed[0].Country)
	s.Equal("C", failed[1].Country)
}

func (s *RunnerTestSuite) TestRunKeepsPartialRollout() {
	id := uuid.New()
	h := registry.Handle{ProjectID: "p-A", ModelID: "m-A"}

	s.bindings.EXPECT().CreateBinding("run-2", "A").
		Return(&schema.ModelBinding{ID: id, RunID: "run-2", Country: "A"}, nil)
	s.bindings.EXPECT().SetBindingModel(id, "p-A", "m-A").Return(nil)
	s.registry.EXPECT().Train(gomock.Any(), "A", gomock.Any()).Return(h, nil)
	gomock.InOrder(
		s.registry.EXPECT().Predict(gomock.Any(), h, gomock.Any()).Return(35.0, nil),
		s.registry.EXPECT().Predict(gomock.Any(), h, gomock.Any()).Return(0.0, errors.New("timeout")),
	)

	results := s.newRunner().Run(context.Background(), "run-2", s.features, []string{"A"})
	s.Len(results, 1)

	var aborted *AbortedError
	s.True(errors.As(results[0].Err, &aborted))
	s.Equal(2, aborted.Step)
	s.Len(results[0].Rows, 4)
}

func (s *RunnerTestSuite) TestRunBindingFailure() {
	s.bindings.EXPECT().CreateBinding("run-3", "A").Return(nil, errors.New("connection refused"))

	results := s.newRunner().Run(context.Background(), "run-3", s.features, []string{"A"})
	s.Len(results, 1)
	s.EqualError(results[0].Err, "connection refused")
}

func (s *RunnerTestSuite) TestRunWithoutBindings() {
	h := registry.Handle{ProjectID: "p-B", ModelID: "m-B"}
	s.registry.EXPECT().Train(gomock.Any(), "B", gomock.Any()).Return(h, nil)
	s.registry.EXPECT().Predict(gomock.Any(), h, gomock.Any()).Return(3.0, nil).Times(3)

	r := s.newRunner()
	r.Bindings = nil

	results := r.Run(context.Background(), "run-4", s.features, []string{"B"})
	s.NoError(results[0].Err)
	s.Equal("run-4", results[0].Binding.RunID)
	s.Equal("m-B", results[0].Binding.ModelID)
	s.Len(results[0].Rows, 5)
}

func TestRunner(t *testing.T) {
	defer goleak.VerifyNone(t)
	suite.Run(t, new(RunnerTestSuite))
}
