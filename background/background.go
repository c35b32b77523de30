package background

import (
	"github.com/bitmark-inc/autonomy-forecast/forecast"
	"github.com/bitmark-inc/autonomy-forecast/registry"
)

// Background is a struct to maintain common clients
// and functions for all background workers
type Background struct {
	Registry registry.Registry
	Driver   *forecast.Driver
}

// NewBackground returns the shared clients with a rollout driver predicting
// through r.
func NewBackground(r registry.Registry, driver forecast.Driver) Background {
	driver.Predictor = r
	return Background{
		Registry: r,
		Driver:   &driver,
	}
}
