package style

import (
	"github.com/pterm/pterm"
)

// Outcome is the single-character tag reported for a processed spec line
type Outcome string

const (
	OutcomeDone      Outcome = "d" // symlink created directly
	OutcomeSatisfied Outcome = "." // link already points at the target
	OutcomeSkip      Outcome = "s" // conflict left untouched
	OutcomeBackup    Outcome = "b" // conflicting file moved to the backup directory
	OutcomeOverwrite Outcome = "o" // conflicting file removed
)

// OutcomeStyle returns the appropriate pterm style for an outcome tag
func OutcomeStyle(outcome Outcome) *pterm.Style {
	switch outcome {
	case OutcomeSkip:
		return pterm.NewStyle(pterm.FgBlue)
	case OutcomeBackup:
		return pterm.NewStyle(pterm.FgGreen)
	case OutcomeOverwrite:
		return pterm.NewStyle(pterm.FgRed)
	case OutcomeSatisfied:
		return pterm.NewStyle(pterm.FgDarkGray)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}
