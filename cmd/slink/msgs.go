package slink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Make symlinks specified in files"
	MsgMakeShort       = "Make the symlinks specified in files under DIR"
	MsgScanShort       = "Report the spec files under DIR without touching anything"
	MsgGenConfigShort  = "Print the default configuration file"
	MsgGenConfigLong   = "Output the annotated default configuration to stdout.\n\nWith --write, the file is written to the slink config directory instead,\nunless a config file already exists there."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWritten = "Written config file to %s\n"
	MsgConfigExists  = "Config file %s already exists, not touching it\n"
	MsgNoSpecFiles   = "No spec files found."

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFilename     = "Base name of the files specifying symlinks (default from config, \"sls\")"
	MsgFlagBackupDir    = "Directory receiving files displaced by the backup action"
	MsgFlagDepth        = "How many directory levels below DIR to scan (negative = no limit, 0 = DIR only)"
	MsgFlagAlwaysSkip   = "Always skip symlinks conflicting with an existing file (uninteractive)"
	MsgFlagAlwaysBackup = "Always back up the conflicting file before linking (uninteractive)"
	MsgFlagNoColor      = "Disable colored output"
	MsgFlagWrite        = "Write the config file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/make-long.txt
	msgMakeLongRaw string
	MsgMakeLong    = strings.TrimSpace(msgMakeLongRaw)

	//go:embed msgs/make-example.txt
	msgMakeExampleRaw string
	MsgMakeExample    = strings.TrimSpace(msgMakeExampleRaw)

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/scan-example.txt
	msgScanExampleRaw string
	MsgScanExample    = strings.TrimSpace(msgScanExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
