// Package types defines the core interfaces shared across slink packages,
// most importantly the FS filesystem abstraction that lets the engine and
// tests run against real or scripted filesystems.
package types
