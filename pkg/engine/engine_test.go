package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/params"
	"github.com/arthur-debert/slink/pkg/prompt"
	"github.com/arthur-debert/slink/pkg/style"
	"github.com/arthur-debert/slink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptPrompter feeds a fixed sequence of choices to the engine and records
// what it was asked. Running out of scripted choices fails the test, so a
// run that must not prompt gets an empty script.
type scriptPrompter struct {
	t            *testing.T
	choices      []prompt.Choice
	conflicts    []string
	acknowledged []string
}

func (p *scriptPrompter) Conflict(target, link string) (prompt.Choice, error) {
	if len(p.conflicts) >= len(p.choices) {
		p.t.Fatalf("Unexpected conflict prompt for %s -> %s", link, target)
	}
	choice := p.choices[len(p.conflicts)]
	p.conflicts = append(p.conflicts, link)
	return choice, nil
}

func (p *scriptPrompter) Acknowledge(message string) error {
	p.acknowledged = append(p.acknowledged, message)
	return nil
}

func testClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

// clockStamp is testClock rendered the way backup names render it
const clockStamp = "2026-03-14T15:09:26Z"

func runParams(env *testutil.TestEnvironment) params.Params {
	return params.Params{
		Dir:       env.SourceDir,
		Filename:  "sls",
		BackupDir: env.BackupDir,
		Depth:     -1,
	}
}

func newTestEngine(env *testutil.TestEnvironment, p params.Params, prompter prompt.Prompter) (*Engine, *bytes.Buffer) {
	out := &bytes.Buffer{}
	eng := New(Options{
		Params:   p,
		FS:       env.FS,
		Out:      out,
		Renderer: style.NewPlainRenderer(),
		Prompter: prompter,
		Now:      testClock,
	})
	return eng, out
}

func outputLines(out *bytes.Buffer) []string {
	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestRunCreatesMissingLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("vimrc", "set nocompatible\n")
	spaced := env.Target("my theme", "colors\n")
	link := env.LinkPath(".vimrc")
	spacedLink := env.LinkPath(".theme")
	env.SpecFile("", "sls",
		target+" "+link,
		`"`+spaced+`" `+spacedLink,
	)

	prompter := &scriptPrompter{t: t}
	eng, out := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	testutil.AssertSymlink(t, link, target)
	testutil.AssertSymlink(t, spacedLink, spaced)

	lines := outputLines(out)
	require.Len(t, lines, 2)
	assert.Equal(t, "(d) "+link+" -> "+target, lines[0])
	assert.Equal(t, "(d) "+spacedLink+" -> "+spaced, lines[1])
}

func TestRunIsIdempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("gitconfig", "[user]\n")
	link := env.LinkPath(".gitconfig")
	env.SpecFile("", "sls", target+" "+link)

	first, _ := newTestEngine(env, runParams(env), &scriptPrompter{t: t})
	require.NoError(t, first.Run())
	testutil.AssertSymlink(t, link, target)

	second, out := newTestEngine(env, runParams(env), &scriptPrompter{t: t})
	require.NoError(t, second.Run())

	testutil.AssertSymlink(t, link, target)
	lines := outputLines(out)
	require.Len(t, lines, 1)
	assert.Equal(t, "(.) "+link+" -> "+target, lines[0])
}

func TestRunIgnoresCommentsAndBlankLines(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("zshrc", "export EDITOR=vim\n")
	link := env.LinkPath(".zshrc")
	env.SpecFile("", "sls",
		"// links for the shell",
		"",
		target+" "+link,
		"",
	)

	eng, out := newTestEngine(env, runParams(env), &scriptPrompter{t: t})
	require.NoError(t, eng.Run())

	testutil.AssertSymlink(t, link, target)
	assert.Len(t, outputLines(out), 1)
}

func TestConflictSkipLeavesFileAlone(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("profile", "new content\n")
	link := env.LinkPath(".profile")
	testutil.CreateFile(t, env.HomeDir, ".profile", "old content\n")
	env.SpecFile("", "sls", target+" "+link)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.Skip}}
	eng, out := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	assert.False(t, testutil.SymlinkExists(t, link))
	testutil.AssertFileContent(t, link, "old content\n")
	lines := outputLines(out)
	require.Len(t, lines, 1)
	assert.Equal(t, "(s) "+link+" -> "+target, lines[0])
}

func TestConflictBackupMovesFileAndLinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("notes", "fresh\n")
	link := env.LinkPath("notes.txt")
	testutil.CreateFile(t, env.HomeDir, "notes.txt", "precious\n")
	env.SpecFile("", "sls", target+" "+link)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.Backup}}
	eng, out := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	testutil.AssertSymlink(t, link, target)
	backupPath := filepath.Join(env.BackupDir, "notes_backup_"+clockStamp+".txt")
	testutil.AssertFileContent(t, backupPath, "precious\n")

	lines := outputLines(out)
	require.Len(t, lines, 1)
	assert.Equal(t, "(b) "+link+" -> "+target, lines[0])
}

func TestConflictOverwriteReplacesFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("bashrc", "new\n")
	link := env.LinkPath(".bashrc")
	testutil.CreateFile(t, env.HomeDir, ".bashrc", "doomed\n")
	env.SpecFile("", "sls", target+" "+link)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.Overwrite}}
	eng, out := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	testutil.AssertSymlink(t, link, target)

	entries, err := os.ReadDir(env.BackupDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "overwrite must not leave a backup behind")

	lines := outputLines(out)
	require.Len(t, lines, 1)
	assert.Equal(t, "(o) "+link+" -> "+target, lines[0])
}

func TestConflictOverwriteRemovesDirectoryTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("config", "managed\n")
	link := env.LinkPath(".config")
	dir := testutil.CreateDir(t, env.HomeDir, ".config")
	testutil.CreateFile(t, dir, "nested/settings.ini", "unmanaged\n")
	env.SpecFile("", "sls", target+" "+link)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.Overwrite}}
	eng, _ := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	testutil.AssertSymlink(t, link, target)
}

func TestConflictOverwriteSymlinkToDirectoryKeepsDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("themes", "managed\n")
	realDir := testutil.CreateDir(t, env.SourceDir, "old-themes")
	testutil.CreateFile(t, realDir, "dark.toml", "palette\n")
	link := env.LinkPath(".themes")
	testutil.CreateSymlink(t, realDir, link)
	env.SpecFile("", "sls", target+" "+link)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.Overwrite}}
	eng, _ := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	testutil.AssertSymlink(t, link, target)
	testutil.AssertFileContent(t, filepath.Join(realDir, "dark.toml"), "palette\n")
}

func TestAlwaysSkipNeverPrompts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target1 := env.Target("alpha", "a\n")
	target2 := env.Target("beta", "b\n")
	link1 := env.LinkPath("alpha")
	link2 := env.LinkPath("beta")
	testutil.CreateFile(t, env.HomeDir, "alpha", "keep me\n")
	testutil.CreateFile(t, env.HomeDir, "beta", "me too\n")
	env.SpecFile("", "sls",
		target1+" "+link1,
		target2+" "+link2,
	)

	p := runParams(env)
	p.AlwaysSkip = true
	eng, out := newTestEngine(env, p, &scriptPrompter{t: t})

	require.NoError(t, eng.Run())

	testutil.AssertFileContent(t, link1, "keep me\n")
	testutil.AssertFileContent(t, link2, "me too\n")
	lines := outputLines(out)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "(s) "))
	assert.True(t, strings.HasPrefix(lines[1], "(s) "))
}

func TestAlwaysChoiceSticksAcrossFiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target1 := env.Target("kitty.conf", "font_size 12\n")
	target2 := env.Target("alacritty.yml", "font: 12\n")
	link1 := env.LinkPath("kitty.conf")
	link2 := env.LinkPath("alacritty.yml")
	testutil.CreateFile(t, env.HomeDir, "kitty.conf", "old kitty\n")
	testutil.CreateFile(t, env.HomeDir, "alacritty.yml", "old alacritty\n")
	env.SpecFile("", "sls", target1+" "+link1)
	env.SpecFile("terminals", "sls", target2+" "+link2)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.AlwaysBackup}}
	eng, out := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	require.Len(t, prompter.conflicts, 1, "second conflict must reuse the sticky choice")
	assert.Equal(t, link1, prompter.conflicts[0])

	testutil.AssertSymlink(t, link1, target1)
	testutil.AssertSymlink(t, link2, target2)
	testutil.AssertFileContent(t,
		filepath.Join(env.BackupDir, "kitty_backup_"+clockStamp+".conf"), "old kitty\n")
	testutil.AssertFileContent(t,
		filepath.Join(env.BackupDir, "alacritty_backup_"+clockStamp+".yml"), "old alacritty\n")

	lines := outputLines(out)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "(b) "))
	assert.True(t, strings.HasPrefix(lines[1], "(b) "))
}

func TestWrongSymlinkIsConflict(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("current", "v2\n")
	stale := env.Target("stale", "v1\n")
	link := env.LinkPath("tool")
	testutil.CreateSymlink(t, stale, link)
	env.SpecFile("", "sls", target+" "+link)

	prompter := &scriptPrompter{t: t, choices: []prompt.Choice{prompt.Skip}}
	eng, _ := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	require.Len(t, prompter.conflicts, 1)
	testutil.AssertSymlink(t, link, stale)
}

func TestInvalidLineInteractiveAcknowledgesAndContinues(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("tmux.conf", "set -g mouse on\n")
	link := env.LinkPath(".tmux.conf")
	specPath := env.SpecFile("", "sls",
		"just-one-token",
		target+" "+link,
	)

	prompter := &scriptPrompter{t: t}
	eng, _ := newTestEngine(env, runParams(env), prompter)

	require.NoError(t, eng.Run())

	require.Len(t, prompter.acknowledged, 1)
	assert.Contains(t, prompter.acknowledged[0], specPath)
	assert.Contains(t, prompter.acknowledged[0], "line number 1")
	testutil.AssertSymlink(t, link, target)
}

func TestInvalidLineBatchAborts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("inputrc", "set editing-mode vi\n")
	link := env.LinkPath(".inputrc")
	env.SpecFile("", "sls",
		"just-one-token",
		target+" "+link,
	)

	p := runParams(env)
	p.AlwaysSkip = true
	eng, _ := newTestEngine(env, p, &scriptPrompter{t: t})

	err := eng.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLineNoMatch))
	testutil.AssertNoFile(t, link)
}

func TestMissingTargetBatchAborts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	link := env.LinkPath(".missing")
	specPath := env.SpecFile("", "sls",
		filepath.Join(env.SourceDir, "does-not-exist")+" "+link,
	)

	p := runParams(env)
	p.AlwaysBackup = true
	eng, _ := newTestEngine(env, p, &scriptPrompter{t: t})

	err := eng.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLineTargetMissing))
	assert.Contains(t, err.Error(), specPath)
	assert.Contains(t, err.Error(), "line number 1")
}

func TestRunMissingDirFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	p := runParams(env)
	p.Dir = filepath.Join(env.SourceDir, "nope")
	eng, _ := newTestEngine(env, p, &scriptPrompter{t: t})

	err := eng.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirNotFound))
}

func TestRunCreatesBackupDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("wezterm.lua", "return {}\n")
	link := env.LinkPath(".wezterm.lua")
	env.SpecFile("", "sls", target+" "+link)

	p := runParams(env)
	p.BackupDir = filepath.Join(env.BackupDir, "deep", "nested")
	eng, _ := newTestEngine(env, p, &scriptPrompter{t: t})

	require.NoError(t, eng.Run())
	assert.True(t, testutil.DirExists(t, p.BackupDir))
}

func TestRunBackupPathIsFileFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	blocked := testutil.CreateFile(t, env.HomeDir, "backups", "not a dir\n")

	p := runParams(env)
	p.BackupDir = blocked
	eng, _ := newTestEngine(env, p, &scriptPrompter{t: t})

	err := eng.Run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackupDir))
}

func TestBackupName(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 500000000, time.UTC)
	stamp := "2026-03-14T15:09:26.5Z"

	tests := []struct {
		link string
		want string
	}{
		{"/home/user/.bashrc", ".bashrc_backup_" + stamp},
		{"/home/user/notes.txt", "notes_backup_" + stamp + ".txt"},
		{"/home/user/archive.tar.gz", "archive.tar_backup_" + stamp + ".gz"},
		{"/home/user/plain", "plain_backup_" + stamp},
		{"/home/user/.config.toml", ".config_backup_" + stamp + ".toml"},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.link), func(t *testing.T) {
			assert.Equal(t, tt.want, backupName(tt.link, now))
		})
	}
}
