// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate isolated test environments for engine and command tests

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/slink/pkg/filesystem"
	"github.com/arthur-debert/slink/pkg/types"
)

// TestEnvironment provides an isolated directory layout for symlink tests
type TestEnvironment struct {
	// SourceDir holds spec files and link targets
	SourceDir string

	// HomeDir stands in for the user's home, where links are created
	HomeDir string

	// BackupDir receives files displaced by the backup action
	BackupDir string

	// FS is the real filesystem, rooted nowhere special; all paths
	// handed to it in tests live under the temp directory
	FS types.FS

	t *testing.T
}

// NewTestEnvironment creates an isolated environment under a temp directory.
// HOME and the slink directory overrides point inside it so tests never
// touch the real user directories.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()

	env := &TestEnvironment{
		SourceDir: filepath.Join(tempDir, "dotfiles"),
		HomeDir:   filepath.Join(tempDir, "home"),
		BackupDir: filepath.Join(tempDir, "backups"),
		FS:        filesystem.NewOS(),
		t:         t,
	}

	for _, dir := range []string{env.SourceDir, env.HomeDir, env.BackupDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("SLINK_CONFIG_DIR", filepath.Join(tempDir, "config"))
	t.Setenv("SLINK_DATA_DIR", filepath.Join(tempDir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tempDir, "state"))

	return env
}

// SpecFile writes a spec file with the given lines in a directory relative
// to SourceDir. Pass "" for relDir to write at the source root.
func (env *TestEnvironment) SpecFile(relDir, name string, lines ...string) string {
	env.t.Helper()

	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return CreateFile(env.t, filepath.Join(env.SourceDir, relDir), name, content)
}

// Target creates a link target file under SourceDir and returns its path
func (env *TestEnvironment) Target(name, content string) string {
	env.t.Helper()
	return CreateFile(env.t, env.SourceDir, name, content)
}

// LinkPath returns a path under HomeDir suitable for use as a link location
func (env *TestEnvironment) LinkPath(name string) string {
	return filepath.Join(env.HomeDir, name)
}
