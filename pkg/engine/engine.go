// Package engine drives a reconciliation run. It discovers specification
// files under the configured directory, classifies their lines, creates the
// symlinks that are missing, and resolves conflicts either through the
// sticky policy of the run or by asking the user through a Prompter.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/filesystem"
	"github.com/arthur-debert/slink/pkg/logging"
	"github.com/arthur-debert/slink/pkg/params"
	"github.com/arthur-debert/slink/pkg/prompt"
	"github.com/arthur-debert/slink/pkg/specfile"
	"github.com/arthur-debert/slink/pkg/style"
	"github.com/arthur-debert/slink/pkg/types"
	"github.com/rs/zerolog"
)

// Action is a conflict resolution applied to a link path that is already
// occupied by something other than the desired symlink.
type Action int

const (
	// ActionNone means no sticky policy is set and each conflict prompts
	ActionNone Action = iota
	// ActionSkip leaves the existing file untouched
	ActionSkip
	// ActionBackup moves the existing file to the backup directory first
	ActionBackup
	// ActionOverwrite removes the existing file first
	ActionOverwrite
)

// Options configures an Engine. Zero-valued fields fall back to production
// defaults: the OS filesystem, stdout, styled terminal rendering, a console
// prompter reading stdin, and wall-clock time.
type Options struct {
	Params   params.Params
	FS       types.FS
	Out      io.Writer
	Renderer style.Renderer
	Prompter prompt.Prompter
	Now      func() time.Time
}

// Engine runs one reconciliation pass over a directory tree.
type Engine struct {
	params   params.Params
	fs       types.FS
	out      io.Writer
	renderer style.Renderer
	prompter prompt.Prompter
	sticky   Action
	now      func() time.Time
	logger   zerolog.Logger
}

// New creates an engine from opts. The sticky policy starts out from the
// always flags, so a run with AlwaysSkip or AlwaysBackup set never prompts.
func New(opts Options) *Engine {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Renderer == nil {
		opts.Renderer = style.NewTerminalRenderer()
	}
	if opts.Prompter == nil {
		opts.Prompter = prompt.NewConsole(os.Stdin, opts.Out, opts.Renderer)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sticky := ActionNone
	if opts.Params.AlwaysSkip {
		sticky = ActionSkip
	}
	if opts.Params.AlwaysBackup {
		sticky = ActionBackup
	}

	return &Engine{
		params:   opts.Params,
		fs:       opts.FS,
		out:      opts.Out,
		renderer: opts.Renderer,
		prompter: opts.Prompter,
		sticky:   sticky,
		now:      opts.Now,
		logger:   logging.GetLogger("engine"),
	}
}

// Run processes every specification file under the configured directory,
// each file to completion before the next. The first fatal error aborts the
// rest of the run; symlinks already created stay created.
func (e *Engine) Run() error {
	done := logging.LogOperationStart(e.logger, "run")
	defer done()

	info, err := e.fs.Stat(e.params.Dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirNotFound, "the directory %s does not exist", e.params.Dir).
			WithDetail("dir", e.params.Dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrDirNotFound, "the path %s is not a directory", e.params.Dir).
			WithDetail("dir", e.params.Dir)
	}

	if err := e.ensureBackupDir(); err != nil {
		return err
	}

	files, err := specfile.Find(e.params.Dir, e.params.Filename, e.params.Depth, e.fs)
	if err != nil {
		return err
	}

	e.logger.Info().
		Int("count", len(files)).
		Str("dir", e.params.Dir).
		Msg("Processing spec files")

	for _, file := range files {
		if err := e.processFile(file); err != nil {
			return err
		}
	}

	return nil
}

// ensureBackupDir creates the backup directory when it is missing. Backups
// can be requested at any point of a run, so an unusable backup directory
// fails the run before any file is touched.
func (e *Engine) ensureBackupDir() error {
	info, err := e.fs.Stat(e.params.BackupDir)
	if err == nil {
		if !info.IsDir() {
			return errors.Newf(errors.ErrBackupDir, "backup path %s exists but is not a directory", e.params.BackupDir).
				WithDetail("backupDir", e.params.BackupDir)
		}
		return nil
	}

	if err := e.fs.MkdirAll(e.params.BackupDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrBackupDir, "failed to create backup directory %s", e.params.BackupDir).
			WithDetail("backupDir", e.params.BackupDir)
	}
	return nil
}

// processFile reconciles one specification file line by line.
func (e *Engine) processFile(path string) error {
	e.logger.Debug().Str("file", path).Msg("Processing spec file")

	f, err := e.fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileOpen, "tried to open %s, but unexpectedly failed", path).
			WithDetail("file", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn().Err(cerr).Str("file", path).Msg("Failed to close spec file")
		}
	}()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := e.processLine(path, lineNo, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrLineRead, "error reading line %d of file %s", lineNo+1, path).
			WithDetail("file", path)
	}

	return nil
}

// processLine classifies a line and acts on the result. Empty and comment
// lines are dropped. Invalid lines abort the run in batch mode; in
// interactive mode they are surfaced through the acknowledge prompt and the
// run moves on to the next line.
func (e *Engine) processLine(file string, lineNo int, raw string) error {
	line := specfile.Classify(raw, e.fs)

	switch line.Kind {
	case specfile.Empty, specfile.Comment:
		return nil

	case specfile.Invalid:
		lineErr := invalidLineError(file, lineNo, line.Reason)
		if !e.params.Interactive() {
			return lineErr
		}
		e.logger.Warn().
			Str("file", file).
			Int("line", lineNo).
			Str("code", string(lineErr.Code)).
			Msg("Invalid line, waiting for acknowledgement")
		return e.prompter.Acknowledge(lineErr.Error())

	case specfile.Spec:
		return e.processSpec(line.Target, line.Link)
	}

	return nil
}

// processSpec reconciles one specification against the state at the link
// path. Nothing there means create; the correct symlink already there means
// report and move on; anything else is a conflict.
func (e *Engine) processSpec(target, link string) error {
	info, err := e.fs.Lstat(link)
	if err != nil {
		if os.IsNotExist(err) {
			return e.create(target, link)
		}
		return errors.Wrapf(err, errors.ErrInternal, "failed to inspect link path %s", link).
			WithDetail("link", link)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		existing, err := e.fs.Readlink(link)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal,
				"a symlink of path %s already exists, but failed to read it", link).
				WithDetail("link", link).
				WithDetail("target", target)
		}
		if existing == target {
			return e.feedback(style.OutcomeSatisfied, target, link)
		}
	}

	return e.resolveConflict(target, link)
}

// create makes the symlink at a link path with nothing in the way.
func (e *Engine) create(target, link string) error {
	if err := e.fs.Symlink(target, link); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create %s -> %s", link, target).
			WithDetail("link", link).
			WithDetail("target", target)
	}
	e.logger.Debug().Str("link", link).Str("target", target).Msg("Created symlink")
	return e.feedback(style.OutcomeDone, target, link)
}

// resolveConflict applies the sticky policy when one is set, otherwise
// prompts and dispatches the chosen action. An "always" choice becomes the
// sticky policy for the rest of the run, across file boundaries.
func (e *Engine) resolveConflict(target, link string) error {
	if e.sticky != ActionNone {
		return e.dispatch(e.sticky, target, link)
	}

	choice, err := e.prompter.Conflict(target, link)
	if err != nil {
		return err
	}

	var action Action
	switch choice {
	case prompt.Skip:
		action = ActionSkip
	case prompt.AlwaysSkip:
		action = ActionSkip
		e.sticky = ActionSkip
	case prompt.Backup:
		action = ActionBackup
	case prompt.AlwaysBackup:
		action = ActionBackup
		e.sticky = ActionBackup
	case prompt.Overwrite:
		action = ActionOverwrite
	case prompt.AlwaysOverwrite:
		action = ActionOverwrite
		e.sticky = ActionOverwrite
	default:
		return errors.Newf(errors.ErrInternal, "unhandled prompt choice %d", choice)
	}

	return e.dispatch(action, target, link)
}

// dispatch runs one resolution action against a conflict.
func (e *Engine) dispatch(action Action, target, link string) error {
	switch action {
	case ActionSkip:
		return e.skip(target, link)
	case ActionBackup:
		return e.backup(target, link)
	case ActionOverwrite:
		return e.overwrite(target, link)
	default:
		return errors.Newf(errors.ErrInternal, "unhandled action %d", action)
	}
}

// feedback prints the one-line report for a processed spec line.
func (e *Engine) feedback(outcome style.Outcome, target, link string) error {
	if _, err := fmt.Fprintln(e.out, e.renderer.Feedback(outcome, target, link)); err != nil {
		return errors.Wrap(err, errors.ErrPromptIO, "failed to write run feedback")
	}
	return nil
}

// invalidLineError builds the error for a line that cannot be reconciled.
func invalidLineError(file string, lineNo int, reason specfile.InvalidReason) *errors.SlinkError {
	switch reason {
	case specfile.TargetMissing:
		return errors.Newf(errors.ErrLineTargetMissing,
			"invalid line in %s, line number %d: the target does not exist", file, lineNo).
			WithDetail("file", file).
			WithDetail("line", lineNo)
	default:
		return errors.Newf(errors.ErrLineNoMatch,
			"invalid line in %s, line number %d: can't match up against the symlink specification format", file, lineNo).
			WithDetail("file", file).
			WithDetail("line", lineNo)
	}
}
