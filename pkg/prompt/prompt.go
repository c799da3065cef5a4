// Package prompt implements the interactive menus of a run: the conflict
// menu offering the resolution actions, and the acknowledge prompt that
// forces the user to confirm an error before the run proceeds.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/style"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const indent = "    "

const actionHelp = `[s]kip : Don't create the symlink and move on to the next one.
[S]kip all : [s]kip for the current symlink and all further symlink conflicting with an existing file.
[b]ackup : Move the existing file in BACKUP_DIR, then make the current symlink.
[B]ackup all : [b]ackup for the current symlink and all further symlink conflicting with an existing file.
[o]verwrite : Overwrite the existing file with the symlink (beware data loss!)
[O]verwrite all : [o]verwrite for the current symlink and all further symlink conflicting with an existing file.`

// Choice is one of the entries of the conflict menu
type Choice int

const (
	// Skip leaves the conflicting file untouched
	Skip Choice = iota
	// AlwaysSkip is Skip plus skipping every later conflict of the run
	AlwaysSkip
	// Backup moves the conflicting file to the backup directory first
	Backup
	// AlwaysBackup is Backup plus backing up every later conflict of the run
	AlwaysBackup
	// Overwrite removes the conflicting file
	Overwrite
	// AlwaysOverwrite is Overwrite plus overwriting every later conflict of the run
	AlwaysOverwrite
)

// Prompter suspends the run to ask the user something
type Prompter interface {
	// Conflict asks how to resolve the conflict between an existing file at
	// link and the symlink to target that should live there
	Conflict(target, link string) (Choice, error)
	// Acknowledge shows an error message and accepts any input as confirmation
	Acknowledge(message string) error
}

// Console is a Prompter reading selections line-by-line from in and writing
// menus to out. When out is a terminal, the prompt block is erased after a
// valid selection so only the action's feedback line remains.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	renderer style.Renderer
	term     *termenv.Output
}

// NewConsole creates a console prompter
func NewConsole(in io.Reader, out io.Writer, renderer style.Renderer) *Console {
	c := &Console{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: renderer,
	}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		c.term = termenv.NewOutput(out)
	}
	return c
}

// Conflict presents the conflict menu and blocks until a valid selection is
// read. There is no retry limit and no timeout.
func (c *Console) Conflict(target, link string) (Choice, error) {
	message := fmt.Sprintf(
		"%s\n%sA file already exists at link path.\n%s[s]kip [S]kip all [b]ackup [B]ackup all [o]verwrite [O]verwrite all [h]elp: ",
		c.renderer.ConflictHeader(target, link), indent, indent)

	var choice Choice
	match := func(input string) bool {
		ch, ok := matchChoice(input)
		if ok {
			choice = ch
		}
		return ok
	}

	if err := c.ask(message, match, choiceInputs, "h", actionHelp, true); err != nil {
		return 0, err
	}
	return choice, nil
}

// Acknowledge shows message and waits for any input before returning, so the
// user cannot miss it. The prompt is left on screen.
func (c *Console) Acknowledge(message string) error {
	prompt := fmt.Sprintf("(?) %s\n%sEnter a key to continue: ",
		c.renderer.ErrorMessage(message), indent)

	return c.ask(prompt, func(string) bool { return true }, nil, "", "", false)
}

var choiceInputs = []string{"s", "S", "b", "B", "o", "O"}

func matchChoice(input string) (Choice, bool) {
	switch input {
	case "s":
		return Skip, true
	case "S":
		return AlwaysSkip, true
	case "b":
		return Backup, true
	case "B":
		return AlwaysBackup, true
	case "o":
		return Overwrite, true
	case "O":
		return AlwaysOverwrite, true
	}
	return 0, false
}

// ask prints message and reads input lines until match accepts one. helpInput
// triggers printing helpText without counting as a wrong input. When erase is
// set and out is a terminal, the whole prompt block is cleared once a valid
// input arrives, leaving room for the caller's feedback line.
func (c *Console) ask(message string, match func(string) bool, validInputs []string, helpInput, helpText string, erase bool) error {
	hasHelp := helpInput != "" && helpText != ""
	lines := 0

	for {
		if _, err := fmt.Fprint(c.out, message); err != nil {
			return errors.Wrap(err, errors.ErrPromptIO, "failed to write prompt")
		}
		// The user's Enter completes the prompt's unterminated menu line.
		lines += strings.Count(message, "\n") + 1

		input, err := c.readLine()
		if err != nil {
			return errors.Wrap(err, errors.ErrPromptIO, "failed to read input")
		}

		if match(input) {
			if erase {
				c.eraseLines(lines)
			}
			return nil
		}

		if hasHelp && input == helpInput {
			n, err := c.printHelp(helpText)
			if err != nil {
				return err
			}
			lines += n
			continue
		}

		inputs := strings.Join(validInputs, ", ")
		if hasHelp {
			inputs += ", " + helpInput
		}
		if _, err := fmt.Fprintf(c.out, "%sWrong input! Valid inputs are: %s. Try again.\n", indent, inputs); err != nil {
			return errors.Wrap(err, errors.ErrPromptIO, "failed to write prompt")
		}
		lines++
	}
}

func (c *Console) printHelp(helpText string) (int, error) {
	var b strings.Builder
	b.WriteString(indent + "----------\n")
	for _, line := range strings.Split(helpText, "\n") {
		b.WriteString(indent + line + "\n")
	}
	b.WriteString(indent + "----------\n")

	if _, err := fmt.Fprint(c.out, b.String()); err != nil {
		return 0, errors.Wrap(err, errors.ErrPromptIO, "failed to write help")
	}
	return strings.Count(b.String(), "\n"), nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// eraseLines clears the prompt block. The cursor sits on the line after the
// block, so clearing lines upward lands it back where the block started.
func (c *Console) eraseLines(n int) {
	if c.term == nil {
		return
	}
	c.term.ClearLines(n)
}
