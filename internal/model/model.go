// Package model defines the core data types shared across gandalf.
package model

import "strings"

// Risk is the model's categorical judgment of how dangerous a change is.
type Risk string

const (
	RiskLow    Risk = "LOW"
	RiskMedium Risk = "MEDIUM"
	RiskHigh   Risk = "HIGH"
)

// ParseRisk canonicalizes a raw risk string. The second return is false
// when the value is not one of the three known levels.
func ParseRisk(s string) (Risk, bool) {
	switch Risk(strings.ToUpper(s)) {
	case RiskLow:
		return RiskLow, true
	case RiskMedium:
		return RiskMedium, true
	case RiskHigh:
		return RiskHigh, true
	default:
		return "", false
	}
}

// Action is the enforcement decision derived from a risk level.
type Action int

const (
	ActionAllow Action = iota
	ActionWarn
	ActionBlock
)

func (a Action) String() string {
	switch a {
	case ActionWarn:
		return "WARN"
	case ActionBlock:
		return "BLOCK"
	default:
		return "ALLOW"
	}
}

// ActionFor maps a risk level to its enforcement action. The mapping is
// total: an unknown value allows, since it can only arrive through a path
// that already skipped validation.
func ActionFor(r Risk) Action {
	switch r {
	case RiskHigh:
		return ActionBlock
	case RiskMedium:
		return ActionWarn
	default:
		return ActionAllow
	}
}

// Decision is the validated judgment extracted from a model reply.
// Only llm.Normalize constructs one; a Decision in hand has passed the
// risk gate.
type Decision struct {
	Risk    Risk     `json:"risk"`
	Issues  []string `json:"issues"`
	Summary string   `json:"summary"`
}

// Action returns the enforcement action for this decision's risk.
func (d Decision) Action() Action {
	return ActionFor(d.Risk)
}

// DiffStats is the structured metadata extracted from a raw diff.
type DiffStats struct {
	FilesChanged int      `json:"files_changed"`
	Files        []string `json:"files"`
	LinesAdded   int      `json:"lines_added"`
	LinesRemoved int      `json:"lines_removed"`
}
