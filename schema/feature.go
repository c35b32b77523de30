package schema

import "time"

const (
	FeatureCollection         = "features"
	FeatureRevisionCollection = "feature_revisions"
)

// column names of the forecast output file and of the model feature set
const (
	ColumnCountry        = "country"
	ColumnTimestamp      = "timestamp"
	ColumnTotalConfirmed = "total_confirmed"
	ColumnDateFromStart  = "DateFromStart"
	ColumnNewCases       = "newCases"
	ColumnChangePrcn     = "Change_prcn"
	ColumnNumbDays       = "numbDays"
	ColumnArithGrowth    = "arithGrowth"
	ColumnCumGrowth      = "cumGrowth"
)

// OutputColumns is the column order of the forecast output file.
var OutputColumns = []string{
	ColumnCountry,
	ColumnTimestamp,
	ColumnTotalConfirmed,
	ColumnDateFromStart,
	ColumnNewCases,
	ColumnChangePrcn,
	ColumnNumbDays,
}

// FeatureRow is a panel row extended with the derived growth features.
// Rows appended by a forecast rollout have Forecast set.
type FeatureRow struct {
	Country             string    `json:"country" bson:"country"`
	Timestamp           time.Time `json:"timestamp" bson:"timestamp"`
	TotalConfirmed      float64   `json:"total_confirmed" bson:"total_confirmed"`
	DaysSinceWorldStart int       `json:"days_since_world_start" bson:"days_since_world_start"`
	NewCases            float64   `json:"new_cases" bson:"new_cases"`
	LogGrowth           float64   `json:"log_growth" bson:"log_growth"`
	ArithGrowth         float64   `json:"arith_growth" bson:"arith_growth"`
	DayIndex            int       `json:"day_index" bson:"day_index"`
	CumGrowth           float64   `json:"cum_growth" bson:"cum_growth"`
	Forecast            bool      `json:"forecast" bson:"forecast"`
}

// Column returns the value of a named column, using the output file names.
func (r FeatureRow) Column(name string) (interface{}, bool) {
	switch name {
	case ColumnCountry:
		return r.Country, true
	case ColumnTimestamp:
		return r.Timestamp.Format(DateLayout), true
	case ColumnTotalConfirmed:
		return r.TotalConfirmed, true
	case ColumnDateFromStart:
		return r.DaysSinceWorldStart, true
	case ColumnNewCases:
		return r.NewCases, true
	case ColumnChangePrcn:
		return r.LogGrowth, true
	case ColumnNumbDays:
		return r.DayIndex, true
	case ColumnArithGrowth:
		return r.ArithGrowth, true
	case ColumnCumGrowth:
		return r.CumGrowth, true
	}
	return nil, false
}

// WithoutTarget returns a copy of the row with the confirmed count blanked,
// which is how a row is handed to a model for prediction.
func (r FeatureRow) WithoutTarget() FeatureRow {
	r.TotalConfirmed = 0
	return r
}

const DateLayout = "2006-01-02"
