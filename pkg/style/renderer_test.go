package style

import (
	"strings"
	"testing"
)

func TestTerminalRendererFeedback(t *testing.T) {
	r := NewTerminalRenderer()

	tests := []struct {
		name     string
		outcome  Outcome
		contains string
	}{
		{name: "done", outcome: OutcomeDone, contains: "(d) /home/user/.vimrc -> /dotfiles/vimrc"},
		{name: "satisfied", outcome: OutcomeSatisfied, contains: "(.) /home/user/.vimrc -> /dotfiles/vimrc"},
		{name: "skip", outcome: OutcomeSkip, contains: "(s) /home/user/.vimrc -> /dotfiles/vimrc"},
		{name: "backup", outcome: OutcomeBackup, contains: "(b) /home/user/.vimrc -> /dotfiles/vimrc"},
		{name: "overwrite", outcome: OutcomeOverwrite, contains: "(o) /home/user/.vimrc -> /dotfiles/vimrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Feedback(tt.outcome, "/dotfiles/vimrc", "/home/user/.vimrc")
			if !strings.Contains(result, tt.contains) {
				t.Errorf("Expected output to contain %q, got %q", tt.contains, result)
			}
		})
	}
}

func TestTerminalRendererDoneIsUnstyled(t *testing.T) {
	r := NewTerminalRenderer()

	result := r.Feedback(OutcomeDone, "/dotfiles/vimrc", "/home/user/.vimrc")
	if result != "(d) /home/user/.vimrc -> /dotfiles/vimrc" {
		t.Errorf("Expected direct creation feedback to be unstyled, got %q", result)
	}
}

func TestTerminalRendererConflictHeader(t *testing.T) {
	r := NewTerminalRenderer()

	result := r.ConflictHeader("/dotfiles/vimrc", "/home/user/.vimrc")
	for _, expected := range []string{"(?)", "/home/user/.vimrc", "->", "/dotfiles/vimrc"} {
		if !strings.Contains(result, expected) {
			t.Errorf("Expected output to contain %q, got %q", expected, result)
		}
	}
}

func TestPlainRendererHasNoEscapes(t *testing.T) {
	r := NewPlainRenderer()

	outputs := []string{
		r.Feedback(OutcomeOverwrite, "/dotfiles/vimrc", "/home/user/.vimrc"),
		r.ConflictHeader("/dotfiles/vimrc", "/home/user/.vimrc"),
		r.ErrorMessage("Invalid line in /dotfiles/sls, line number 3."),
	}

	for _, out := range outputs {
		if strings.Contains(out, "\x1b[") {
			t.Errorf("Expected plain output without escape sequences, got %q", out)
		}
	}
}

func TestPlainRendererFeedback(t *testing.T) {
	r := NewPlainRenderer()

	result := r.Feedback(OutcomeSkip, "/dotfiles/vimrc", "/home/user/.vimrc")
	if result != "(s) /home/user/.vimrc -> /dotfiles/vimrc" {
		t.Errorf("Expected plain feedback line, got %q", result)
	}
}
