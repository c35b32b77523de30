package forecast

import (
	"context"

	"github.com/bitmark-inc/autonomy-forecast/registry"
	"github.com/bitmark-inc/autonomy-forecast/schema"
)

type heartbeatFunc func(ctx context.Context, details ...interface{})

// heartbeatPredictor records an activity heartbeat before every prediction
// so a long rollout is not timed out between steps.
type heartbeatPredictor struct {
	registry.Predictor
	country   string
	step      int
	heartbeat heartbeatFunc
}

func (p *heartbeatPredictor) Predict(ctx context.Context, h registry.Handle, row schema.FeatureRow) (float64, error) {
	p.step++
	p.heartbeat(ctx, p.country, p.step)
	return p.Predictor.Predict(ctx, h, row)
}
