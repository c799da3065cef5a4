package slink

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given args and returns
// everything it wrote to its output stream
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd := NewRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMakeCmdCreatesSymlinks(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("vimrc", "set nocompatible\n")
	link := env.LinkPath(".vimrc")
	env.SpecFile("", "sls", target+" "+link)

	out, err := runCommand(t, "make", env.SourceDir, "--no-color")
	require.NoError(t, err)

	testutil.AssertSymlink(t, link, target)
	assert.Contains(t, out, "(d) "+link+" -> "+target)
}

func TestMakeCmdAlwaysSkipLeavesConflicts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("profile", "new\n")
	link := env.LinkPath(".profile")
	testutil.CreateFile(t, env.HomeDir, ".profile", "old\n")
	env.SpecFile("", "sls", target+" "+link)

	out, err := runCommand(t, "make", env.SourceDir, "--always-skip", "--no-color")
	require.NoError(t, err)

	testutil.AssertFileContent(t, link, "old\n")
	assert.Contains(t, out, "(s) "+link+" -> "+target)
}

func TestMakeCmdRejectsBothAlwaysFlags(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := runCommand(t, "make", env.SourceDir, "--always-skip", "--always-backup")
	require.Error(t, err)
}

func TestMakeCmdMissingDir(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := runCommand(t, "make", filepath.Join(env.SourceDir, "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirNotFound))
}

func TestMakeCmdFilenameFlag(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("gitconfig", "[user]\n")
	link := env.LinkPath(".gitconfig")
	env.SpecFile("", "links", target+" "+link)
	env.SpecFile("", "sls", "this line would abort the run")

	_, err := runCommand(t, "make", env.SourceDir, "-f", "links", "--always-skip")
	require.NoError(t, err)

	testutil.AssertSymlink(t, link, target)
}

func TestScanCmdReportsCounts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	target := env.Target("zshrc", "export EDITOR=vim\n")
	specPath := env.SpecFile("", "sls",
		"// shell config",
		"",
		target+" "+env.LinkPath(".zshrc"),
		"not a valid line at all",
	)

	out, err := runCommand(t, "scan", env.SourceDir)
	require.NoError(t, err)

	assert.Contains(t, out, specPath)
	assert.Contains(t, out, "SPECS")
	assert.Contains(t, out, "INVALID")

	// Nothing was created by the scan
	testutil.AssertNoFile(t, env.LinkPath(".zshrc"))
}

func TestScanCmdNoFiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	out, err := runCommand(t, "scan", env.SourceDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No spec files found.")
}

func TestGenConfigCmdPrints(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := runCommand(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "# slink configuration")
	assert.Contains(t, out, "# filename = \"sls\"")
}

func TestGenConfigCmdWrite(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := runCommand(t, "genconfig", "--write")
	require.NoError(t, err)

	configPath := filepath.Join(os.Getenv("SLINK_CONFIG_DIR"), "config.toml")
	assert.Contains(t, out, configPath)
	assert.True(t, testutil.FileExists(t, configPath))

	// A second write must not clobber the existing file
	out, err = runCommand(t, "genconfig", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestVersionCmd(t *testing.T) {
	testutil.NewTestEnvironment(t)

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "slink version")
}

func TestHelpTopicIsEmbedded(t *testing.T) {
	rootCmd := NewRootCmd()
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}
