package model

import "time"

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionTypeScale1to5  QuestionType = "SCALE_1_5"  // 1-5 agreement scale
	QuestionTypeScale0to10 QuestionType = "SCALE_0_10" // 0-10 rating scale
	QuestionTypeSingle     QuestionType = "SINGLE_CHOICE"
	QuestionTypeMulti      QuestionType = "MULTI_CHOICE"
	QuestionTypeText       QuestionType = "TEXT"
)

// Polarity describes whether a high raw value means more or less stress.
// A POSITIVE question ("I feel supported") scored high means low stress but
// high engagement; a NEGATIVE question ("deadlines feel impossible") scored
// high means the opposite.
type Polarity string

const (
	PolarityPositive Polarity = "POSITIVE"
	PolarityNegative Polarity = "NEGATIVE"
)

// Question is survey question metadata. The driver fields are free-form and
// were authored over time with inconsistent vocabulary; the taxonomy
// resolver maps them onto the canonical driver set.
type Question struct {
	ID       string       `json:"id" bson:"_id,omitempty"`
	SurveyID string       `json:"surveyId" bson:"surveyId"`
	Type     QuestionType `json:"type" bson:"type"`
	Prompt   string       `json:"prompt" bson:"prompt"`

	// Explicit scale bounds override the bounds implied by Type
	ScaleMin int `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"`
	ScaleMax int `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`

	DriverKey string   `json:"driverKey,omitempty" bson:"driverKey,omitempty"` // possibly legacy/stale
	DriverTag string   `json:"driverTag,omitempty" bson:"driverTag,omitempty"` // fallback vocabulary
	Dimension string   `json:"dimension,omitempty" bson:"dimension,omitempty"` // fallback + engagement membership
	Polarity  Polarity `json:"polarity,omitempty" bson:"polarity,omitempty"`   // defaults to NEGATIVE

	// NeedsReview marks questions whose driver resolution fell through to
	// "unknown" during backfill
	NeedsReview bool      `json:"needsReview,omitempty" bson:"needsReview,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EffectivePolarity returns the question polarity, defaulting to NEGATIVE.
func (q *Question) EffectivePolarity() Polarity {
	if q.Polarity == PolarityPositive {
		return PolarityPositive
	}
	return PolarityNegative
}
