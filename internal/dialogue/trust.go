package dialogue

import (
	"math"
	"regexp"
)

const (
	MinTrust     = 0
	MaxTrust     = 100
	DefaultTrust = 50
)

var (
	politePattern          = regexp.MustCompile(`(?i)please|thank|sorry|help`)
	confrontationalPattern = regexp.MustCompile(`(?i)confess|liar|admit`)
)

// ClampTrust keeps trust within [MinTrust, MaxTrust].
func ClampTrust(trust int) int {
	return min(max(trust, MinTrust), MaxTrust)
}

// AdjustTrust applies the keyword heuristics to trust.
//
// A polite question raises trust by one and a confrontational one lowers it by one. Both checks are
// case-insensitive substring matches and are applied in that order, clamping after each step.
func AdjustTrust(trust int, question string) int {
	trust = ClampTrust(trust)
	if politePattern.MatchString(question) {
		trust = ClampTrust(trust + 1)
	}
	if confrontationalPattern.MatchString(question) {
		trust = ClampTrust(trust - 1)
	}
	return trust
}

// trust returns the caller-supplied trust rounded and clamped, or DefaultTrust when absent.
func (m *Memory) trust() (int, bool) {
	if m == nil || m.Trust == nil || math.IsNaN(*m.Trust) {
		return DefaultTrust, false
	}
	t := math.Round(*m.Trust)
	switch {
	case t <= MinTrust:
		return MinTrust, true
	case t >= MaxTrust:
		return MaxTrust, true
	default:
		return int(t), true
	}
}
