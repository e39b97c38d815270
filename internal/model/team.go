package model

import "time"

// Team owns survey runs and carries the current stress/engagement snapshot
// maintained by the recompute job.
type Team struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	MemberCount int    `json:"memberCount" bson:"memberCount"`

	CurrentStress     float64   `json:"currentStress" bson:"currentStress"`
	CurrentEngagement float64   `json:"currentEngagement" bson:"currentEngagement"`
	Participation     float64   `json:"participation" bson:"participation"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TeamMetricsHistory is one historical metrics row per team and period
// date. Rows are upserted by team+periodDate, never duplicated.
type TeamMetricsHistory struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	TeamID        string    `json:"teamId" bson:"teamId"`
	PeriodDate    time.Time `json:"periodDate" bson:"periodDate"`
	AvgStress     float64   `json:"avgStress" bson:"avgStress"`
	AvgEngagement float64   `json:"avgEngagement" bson:"avgEngagement"`
	Participation float64   `json:"participation" bson:"participation"`
	ResponseCount int       `json:"responseCount" bson:"responseCount"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
