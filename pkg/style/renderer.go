package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering the user-facing lines of a run
type Renderer interface {
	Feedback(outcome Outcome, target, link string) string
	ConflictHeader(target, link string) string
	ErrorMessage(message string) string
}

// TerminalRenderer implements Renderer with colored terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// Feedback renders the per-line report "(tag) link -> target", whole line
// colored by the outcome. Direct creation stays uncolored.
func (r *TerminalRenderer) Feedback(outcome Outcome, target, link string) string {
	line := fmt.Sprintf("(%s) %s -> %s", outcome, link, target)
	if outcome == OutcomeDone {
		return line
	}
	return OutcomeStyle(outcome).Sprint(line)
}

// ConflictHeader renders "(?) link -> target" with the conflicting link
// highlighted
func (r *TerminalRenderer) ConflictHeader(target, link string) string {
	return fmt.Sprintf("(?) %s -> %s", pterm.NewStyle(pterm.FgRed).Sprint(link), target)
}

// ErrorMessage renders an error message for the acknowledge prompt
func (r *TerminalRenderer) ErrorMessage(message string) string {
	return pterm.NewStyle(pterm.FgRed).Sprint(message)
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Feedback renders the per-line report without styling
func (r *PlainRenderer) Feedback(outcome Outcome, target, link string) string {
	return fmt.Sprintf("(%s) %s -> %s", outcome, link, target)
}

// ConflictHeader renders the conflict header without styling
func (r *PlainRenderer) ConflictHeader(target, link string) string {
	return fmt.Sprintf("(?) %s -> %s", link, target)
}

// ErrorMessage returns the message unchanged
func (r *PlainRenderer) ErrorMessage(message string) string {
	return message
}
