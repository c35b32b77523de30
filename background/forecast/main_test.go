package forecast

import (
	"os"
	"testing"

	"github.com/bitmark-inc/autonomy-forecast/background"
	forecastDriver "github.com/bitmark-inc/autonomy-forecast/forecast"
)

var testWorker *ForecastWorker

func TestMain(m *testing.M) {
	testWorker = NewForecastWorker("test", nil, nil, background.NewBackground(nil, forecastDriver.Driver{Parity: true}))
	testWorker.Register()
	os.Exit(m.Run())
}
