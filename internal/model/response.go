package model

import "time"

// RunType is the cadence of a survey run
type RunType string

const (
	RunTypeDaily   RunType = "DAILY"
	RunTypeWeekly  RunType = "WEEKLY"
	RunTypeMonthly RunType = "MONTHLY"
	RunTypeAdHoc   RunType = "AD_HOC"
)

// Run is one instance of a survey sent out on a given date, owning zero or
// more responses. Stored averages are maintained by the recompute job.
type Run struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	TeamID   string    `json:"teamId" bson:"teamId"`
	SurveyID string    `json:"surveyId" bson:"surveyId"`
	RunDate  time.Time `json:"runDate" bson:"runDate"`
	RunType  RunType   `json:"runType" bson:"runType"`

	// Template questions are denormalized onto the run so historical runs
	// keep scoring against the question set they were sent with
	Template RunTemplate `json:"template" bson:"template"`

	AvgStress     float64   `json:"avgStress" bson:"avgStress"`
	AvgEngagement float64   `json:"avgEngagement" bson:"avgEngagement"`
	ResponseCount int       `json:"responseCount" bson:"responseCount"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// RunTemplate is the question set a run was sent with.
type RunTemplate struct {
	Questions []Question `json:"questions" bson:"questions"`
}

// Response is one submitted answer sheet. Answers map question IDs to raw
// values: a bare number, a record carrying a scaleValue/value field, or nil
// for a skip. The loose typing mirrors what integrations actually send.
type Response struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	TeamID      string         `json:"teamId" bson:"teamId"`
	RunID       string         `json:"runId,omitempty" bson:"runId,omitempty"`
	SubmittedAt time.Time      `json:"submittedAt" bson:"submittedAt"`
	Answers     map[string]any `json:"answers" bson:"answers"`

	// Run is attached by the caller when known; not persisted with the
	// response document
	Run *Run `json:"run,omitempty" bson:"-"`
}

// BucketDate returns the date a response counts toward. Daily-cadence runs
// prefer the run date so a late-night submission still lands on its
// intended day. The second return is false when no usable date exists.
func (r *Response) BucketDate() (time.Time, bool) {
	if r.Run != nil && r.Run.RunType == RunTypeDaily && !r.Run.RunDate.IsZero() {
		return r.Run.RunDate, true
	}
	if !r.SubmittedAt.IsZero() {
		return r.SubmittedAt, true
	}
	return time.Time{}, false
}
