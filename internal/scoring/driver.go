package scoring

import (
	"strings"

	"github.com/inverness4444/stresssense4-sub001/internal/model"
)

// canonical is the closed set of driver keys accepted as-is.
var canonical = map[model.DriverKey]bool{
	model.DriverWorkloadDeadlines:   true,
	model.DriverPriorityClarity:     true,
	model.DriverManagerSupport:      true,
	model.DriverMeetingsFocus:       true,
	model.DriverPsychSafety:         true,
	model.DriverRecoveryEnergy:      true,
	model.DriverAutonomyControl:     true,
	model.DriverRecognitionFeedback: true,
	model.DriverProcessClarity:      true,
	model.DriverLongTermOutlook:     true,
	model.DriverUnknown:             true,
}

// driverAliases maps legacy vocabulary seen in question metadata onto
// canonical keys. Question authoring never cleaned up old labels, so this
// table keeps historical questions aggregating into the right driver.
var driverAliases = map[string]model.DriverKey{
	"workload":             model.DriverWorkloadDeadlines,
	"deadlines":            model.DriverWorkloadDeadlines,
	"workload_pressure":    model.DriverWorkloadDeadlines,
	"pressure":             model.DriverWorkloadDeadlines,
	"clarity":              model.DriverPriorityClarity,
	"priorities":           model.DriverPriorityClarity,
	"goal_clarity":         model.DriverPriorityClarity,
	"manager":              model.DriverManagerSupport,
	"support":              model.DriverManagerSupport,
	"leadership":           model.DriverManagerSupport,
	"meetings":             model.DriverMeetingsFocus,
	"focus":                model.DriverMeetingsFocus,
	"focus_time":           model.DriverMeetingsFocus,
	"safety":               model.DriverPsychSafety,
	"psychological_safety": model.DriverPsychSafety,
	"atmosphere":           model.DriverPsychSafety,
	"balance":              model.DriverRecoveryEnergy,
	"recovery":             model.DriverRecoveryEnergy,
	"energy":               model.DriverRecoveryEnergy,
	"work_life_balance":    model.DriverRecoveryEnergy,
	"engagement":           model.DriverAutonomyControl,
	"autonomy":             model.DriverAutonomyControl,
	"control":              model.DriverAutonomyControl,
	"recognition":          model.DriverRecognitionFeedback,
	"feedback":             model.DriverRecognitionFeedback,
	"appreciation":         model.DriverRecognitionFeedback,
	"process":              model.DriverProcessClarity,
	"processes":            model.DriverProcessClarity,
	"bureaucracy":          model.DriverProcessClarity,
	"outlook":              model.DriverLongTermOutlook,
	"growth":               model.DriverLongTermOutlook,
	"career":               model.DriverLongTermOutlook,
	"future":               model.DriverLongTermOutlook,
}

// NormalizeDriverToken lower-cases and trims a free-form label, then checks
// the canonical set and the legacy alias table. The second return reports
// whether the token resolved.
func NormalizeDriverToken(raw string) (model.DriverKey, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return model.DriverUnknown, false
	}
	if canonical[model.DriverKey(token)] {
		return model.DriverKey(token), true
	}
	if key, ok := driverAliases[token]; ok {
		return key, true
	}
	return model.DriverUnknown, false
}

// ResolveDriverKey maps a question onto a canonical driver key. The
// fallback chain is driverKey, then driverTag, then dimension; the worst
// case is DriverUnknown. Resolution is total and stable: same metadata
// always yields the same key.
func ResolveDriverKey(q *model.Question) model.DriverKey {
	if q == nil {
		return model.DriverUnknown
	}
	for _, raw := range []string{q.DriverKey, q.DriverTag, q.Dimension} {
		if key, ok := NormalizeDriverToken(raw); ok {
			return key
		}
	}
	return model.DriverUnknown
}
