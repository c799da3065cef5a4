// Package testutil provides utilities for testing slink components.
//
// Key components:
//   - TestEnvironment: isolated temp-directory environment with source,
//     home, and backup directories plus env var isolation
//   - File, directory, and symlink helpers that fail the test on error
//   - Assertion helpers for values, errors, files, and symlinks
//
// Symlink behavior differs between real and simulated filesystems, so
// tests that exercise conflict resolution should use TestEnvironment
// (real filesystem in a temp dir) rather than the in-memory filesystem.
package testutil
