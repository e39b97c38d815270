package scoring

import (
	"strconv"
	"strings"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// engagementDimensions is the allow-list of dimension names whose answers
// additionally feed the engagement index.
var engagementDimensions = map[string]bool{
	"engagement":      true,
	"clarity":         true,
	"recognition":     true,
	"psych_safety":    true,
	"manager_support": true,
	"meetings_focus":  true,
	"control":         true,
	"safety":          true,
	"atmosphere":      true,
}

// Scored is the result of scoring a single answer against its question.
type Scored struct {
	Normalized      float64 // raw value rescaled into [0,10]
	Polarity        model.Polarity
	StressScore     float64
	EngagementScore float64
	DriverKey       model.DriverKey
	Dimension       string // lower-cased raw dimension, "" when absent
}

// ScoreAnswer resolves one raw answer plus its question metadata into
// normalized, stress and engagement scores. It returns nil when the answer
// carries no numeric value (text/choice answers and skips are excluded from
// numeric aggregation). It never panics on malformed input.
func ScoreAnswer(raw any, q *model.Question) *Scored {
	if q == nil {
		return nil
	}
	value, ok := ExtractScaleValue(raw)
	if !ok {
		return nil
	}

	min, max := ScaleBounds(q)
	normalized := NormalizeScaleValue(value, min, max)
	polarity := q.EffectivePolarity()

	return &Scored{
		Normalized:      normalized,
		Polarity:        polarity,
		StressScore:     StressScore(normalized, polarity),
		EngagementScore: EngagementScore(normalized, polarity),
		DriverKey:       ResolveDriverKey(q),
		Dimension:       strings.ToLower(strings.TrimSpace(q.Dimension)),
	}
}

// ExtractScaleValue pulls a numeric value out of a raw answer. Answers
// arrive as bare numbers, as records carrying a scaleValue/value field, or
// as numeric strings, depending on the submitting integration.
func ExtractScaleValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case map[string]any:
		if inner, ok := v["scaleValue"]; ok {
			return ExtractScaleValue(inner)
		}
		if inner, ok := v["value"]; ok {
			return ExtractScaleValue(inner)
		}
		return 0, false
	default:
		return 0, false
	}
}

// ScaleBounds resolves the raw-value bounds for a question. Explicit
// ScaleMin/ScaleMax win when they differ; otherwise the bounds are inferred
// from the type tag, defaulting to 0-10.
func ScaleBounds(q *model.Question) (float64, float64) {
	if q.ScaleMax != q.ScaleMin {
		return float64(q.ScaleMin), float64(q.ScaleMax)
	}
	tag := strings.ReplaceAll(strings.ToLower(string(q.Type)), "_", "-")
	if strings.Contains(tag, "1-5") {
		return 1, 5
	}
	if strings.Contains(tag, "0-10") {
		return 0, 10
	}
	return 0, 10
}

// NormalizeScaleValue linearly rescales v from [min,max] into [0,10],
// clamping out-of-range values rather than rejecting them so a bad answer
// can never crash aggregation.
func NormalizeScaleValue(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	if v <= min {
		return 0
	}
	if v >= max {
		return 10
	}
	return (v - min) / (max - min) * 10
}

// StressScore converts a normalized value into a stress score. POSITIVE
// questions invert: a high answer on "I feel supported" means low stress.
func StressScore(normalized float64, p model.Polarity) float64 {
	if p == model.PolarityPositive {
		return 10 - normalized
	}
	return normalized
}

// EngagementScore converts a normalized value into an engagement score,
// the mirror of StressScore: NEGATIVE questions invert.
func EngagementScore(normalized float64, p model.Polarity) float64 {
	if p == model.PolarityNegative {
		return 10 - normalized
	}
	return normalized
}

// IsEngagementDimension reports whether a dimension name is on the
// engagement allow-list.
func IsEngagementDimension(dimension string) bool {
	return engagementDimensions[strings.ToLower(strings.TrimSpace(dimension))]
}
