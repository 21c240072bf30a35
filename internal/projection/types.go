package projection

import (
	"time"
)

// RuleSummary describes one loaded rule.
type RuleSummary struct {
	Name          string `json:"name"`
	TriggerEvent  string `json:"trigger_event"`
	Fingerprint   string `json:"fingerprint"`
	ProfileChecks int    `json:"profile_conditions"`
	CountChecks   int    `json:"count_conditions"`
	SequenceSteps int    `json:"sequence_steps"`
}

// ConditionStateRequest identifies a condition state lookup.
type ConditionStateRequest struct {
	DeviceID string
	Rule     string
	At       time.Time // default: now
}

// ConditionState is the archived count of one count condition over its
// resolved window.
type ConditionState struct {
	ConditionID string            `json:"condition_id"`
	EventType   string            `json:"event_type"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	Threshold   int64             `json:"threshold"`
	Count       int64             `json:"count"`
	Met         bool              `json:"met"`
}

// ConditionStateResponse represents the response for a condition state lookup.
type ConditionStateResponse struct {
	DeviceID   string           `json:"device_id"`
	Rule       string           `json:"rule"`
	At         time.Time        `json:"at"`
	SplitPoint time.Time        `json:"split_point"`
	Conditions []ConditionState `json:"conditions"`
}
