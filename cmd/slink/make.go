package slink

import (
	"os"

	"github.com/arthur-debert/slink/pkg/config"
	"github.com/arthur-debert/slink/pkg/engine"
	"github.com/arthur-debert/slink/pkg/filesystem"
	"github.com/arthur-debert/slink/pkg/params"
	"github.com/arthur-debert/slink/pkg/paths"
	"github.com/arthur-debert/slink/pkg/style"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMakeCmd() *cobra.Command {
	var (
		filename     string
		backupDir    string
		depth        int
		alwaysSkip   bool
		alwaysBackup bool
		noColor      bool
	)

	cmd := &cobra.Command{
		Use:     "make DIR",
		Short:   MsgMakeShort,
		Long:    MsgMakeLong,
		Example: MsgMakeExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New()
			if err != nil {
				return err
			}

			dir, err := p.NormalizePath(args[0])
			if err != nil {
				return err
			}

			if backupDir != "" {
				if backupDir, err = p.NormalizePath(backupDir); err != nil {
					return err
				}
			}

			fsys := filesystem.NewOS()
			cfg, err := config.Load(fsys, p)
			if err != nil {
				return err
			}

			runParams, err := params.New(params.CLI{
				Dir:          dir,
				Filename:     filename,
				BackupDir:    backupDir,
				Depth:        depth,
				DepthSet:     cmd.Flags().Changed("depth"),
				AlwaysSkip:   alwaysSkip,
				AlwaysBackup: alwaysBackup,
			}, cfg)
			if err != nil {
				return err
			}

			log.Info().
				Str("dir", runParams.Dir).
				Str("filename", runParams.Filename).
				Bool("interactive", runParams.Interactive()).
				Msg("Making symlinks")

			var renderer style.Renderer = style.NewTerminalRenderer()
			if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
				renderer = style.NewPlainRenderer()
			}

			eng := engine.New(engine.Options{
				Params:   runParams,
				FS:       fsys,
				Out:      cmd.OutOrStdout(),
				Renderer: renderer,
			})
			return eng.Run()
		},
	}

	cmd.Flags().StringVarP(&filename, "filename", "f", "", MsgFlagFilename)
	cmd.Flags().StringVarP(&backupDir, "backup-dir", "b", "", MsgFlagBackupDir)
	cmd.Flags().IntVar(&depth, "depth", config.DefaultDepth, MsgFlagDepth)
	cmd.Flags().BoolVar(&alwaysSkip, "always-skip", false, MsgFlagAlwaysSkip)
	cmd.Flags().BoolVar(&alwaysBackup, "always-backup", false, MsgFlagAlwaysBackup)
	cmd.Flags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)
	cmd.MarkFlagsMutuallyExclusive("always-skip", "always-backup")

	return cmd
}
