package schema

import "time"

// Record is one canonical observation: a sub-region's cumulative confirmed
// count for a country at a date.
type Record struct {
	Country        string    `json:"country" bson:"country"`
	Latitude       float64   `json:"latitude" bson:"latitude"`
	Longitude      float64   `json:"longitude" bson:"longitude"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
	TotalConfirmed float64   `json:"total_confirmed" bson:"total_confirmed"`
}

// PanelRow is the country-day aggregate of records.
type PanelRow struct {
	Country             string    `json:"country" bson:"country"`
	Timestamp           time.Time `json:"timestamp" bson:"timestamp"`
	TotalConfirmed      float64   `json:"total_confirmed" bson:"total_confirmed"`
	DaysSinceWorldStart int       `json:"days_since_world_start" bson:"days_since_world_start"`
}
