package property

import "fmt"

// ConfigError reports a malformed rule or fee at the data-entry boundary.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "property: invalid configuration: " + e.Reason
}

// RuleViolationError rejects a candidate stay that breaks a booking rule.
// MinNights is set for minimum-stay failures so callers can report the
// required minimum.
type RuleViolationError struct {
	Reason    string
	MinNights int
}

func (e *RuleViolationError) Error() string {
	return "property: " + e.Reason
}

func minStayViolation(minNights int) *RuleViolationError {
	return &RuleViolationError{
		Reason:    fmt.Sprintf("booking does not meet minimum stay requirement of %d nights and is not a valid gap stay", minNights),
		MinNights: minNights,
	}
}
