package model

// DriverKey is one of the canonical stress/engagement drivers. Exactly ten
// named drivers plus the catch-all DriverUnknown exist; unknown is excluded
// from cross-driver averages.
type DriverKey string

const (
	DriverWorkloadDeadlines   DriverKey = "workload_deadlines"
	DriverPriorityClarity     DriverKey = "priority_clarity"
	DriverManagerSupport      DriverKey = "manager_support"
	DriverMeetingsFocus       DriverKey = "meetings_focus"
	DriverPsychSafety         DriverKey = "psych_safety"
	DriverRecoveryEnergy      DriverKey = "recovery_energy"
	DriverAutonomyControl     DriverKey = "autonomy_control"
	DriverRecognitionFeedback DriverKey = "recognition_feedback"
	DriverProcessClarity      DriverKey = "process_clarity"
	DriverLongTermOutlook     DriverKey = "longterm_outlook"
	DriverUnknown             DriverKey = "unknown"
)

// CanonicalDrivers lists the ten named drivers in display order, without
// DriverUnknown.
func CanonicalDrivers() []DriverKey {
	return []DriverKey{
		DriverWorkloadDeadlines,
		DriverPriorityClarity,
		DriverManagerSupport,
		DriverMeetingsFocus,
		DriverPsychSafety,
		DriverRecoveryEnergy,
		DriverAutonomyControl,
		DriverRecognitionFeedback,
		DriverProcessClarity,
		DriverLongTermOutlook,
	}
}

// DriverInfo carries the display metadata for a driver.
type DriverInfo struct {
	Key         DriverKey `json:"key"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

var driverInfos = map[DriverKey]DriverInfo{
	DriverWorkloadDeadlines: {
		Key:         DriverWorkloadDeadlines,
		Label:       "Workload & Deadlines",
		Description: "Amount of work and the pressure of deadlines.",
	},
	DriverPriorityClarity: {
		Key:         DriverPriorityClarity,
		Label:       "Clarity of Priorities",
		Description: "Knowing what matters most and what can wait.",
	},
	DriverManagerSupport: {
		Key:         DriverManagerSupport,
		Label:       "Manager Support",
		Description: "Feeling backed up and unblocked by your manager.",
	},
	DriverMeetingsFocus: {
		Key:         DriverMeetingsFocus,
		Label:       "Meetings & Focus Time",
		Description: "Balance between meetings and uninterrupted work.",
	},
	DriverPsychSafety: {
		Key:         DriverPsychSafety,
		Label:       "Psychological Safety",
		Description: "Being able to speak up without fear of blame.",
	},
	DriverRecoveryEnergy: {
		Key:         DriverRecoveryEnergy,
		Label:       "Recovery & Energy",
		Description: "Ability to switch off and recharge outside work.",
	},
	DriverAutonomyControl: {
		Key:         DriverAutonomyControl,
		Label:       "Autonomy & Control",
		Description: "Influence over how and when your work gets done.",
	},
	DriverRecognitionFeedback: {
		Key:         DriverRecognitionFeedback,
		Label:       "Recognition & Feedback",
		Description: "Seeing your work acknowledged and getting useful feedback.",
	},
	DriverProcessClarity: {
		Key:         DriverProcessClarity,
		Label:       "Process Clarity",
		Description: "Clear ways of working without unnecessary friction.",
	},
	DriverLongTermOutlook: {
		Key:         DriverLongTermOutlook,
		Label:       "Long-term Outlook",
		Description: "Confidence in where the team and your role are heading.",
	},
	DriverUnknown: {
		Key:         DriverUnknown,
		Label:       "Unclassified",
		Description: "Questions without a resolved driver mapping.",
	},
}

// InfoFor returns the display metadata for a driver key.
func InfoFor(key DriverKey) DriverInfo {
	if info, ok := driverInfos[key]; ok {
		return info
	}
	return driverInfos[DriverUnknown]
}
