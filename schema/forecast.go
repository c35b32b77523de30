package schema

import "time"

const (
	ForecastCollection = "forecasts"
)

type ForecastStatus string

const (
	ForecastCompleted ForecastStatus = "completed"
	ForecastAborted   ForecastStatus = "aborted"
)

// Forecast is the stored outcome of one country's rollout. Rows holds the
// history followed by the synthesized days; an aborted rollout keeps the
// partial history it reached.
type Forecast struct {
	RunID     string         `json:"run_id" bson:"run_id"`
	Country   string         `json:"country" bson:"country"`
	ProjectID string         `json:"project_id" bson:"project_id"`
	ModelID   string         `json:"model_id" bson:"model_id"`
	Horizon   int            `json:"horizon" bson:"horizon"`
	Status    ForecastStatus `json:"status" bson:"status"`
	Error     string         `json:"error,omitempty" bson:"error,omitempty"`
	Rows      []FeatureRow   `json:"rows" bson:"rows"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// Predicted returns only the synthesized rows.
func (f Forecast) Predicted() []FeatureRow {
	rows := make([]FeatureRow, 0, f.Horizon)
	for _, r := range f.Rows {
		if r.Forecast {
			rows = append(rows, r)
		}
	}
	return rows
}
