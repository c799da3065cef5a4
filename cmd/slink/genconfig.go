package slink

import (
	"fmt"
	"os"

	"github.com/arthur-debert/slink/pkg/config"
	"github.com/arthur-debert/slink/pkg/filesystem"
	"github.com/arthur-debert/slink/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")

			content := config.GenerateConfigContent()

			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			p, err := paths.New()
			if err != nil {
				return err
			}

			// Never clobber a config the user may have edited
			configPath := p.ConfigFilePath()
			if _, err := os.Stat(configPath); err == nil {
				log.Warn().Str("path", configPath).Msg("Config file already exists, skipping")
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigExists, configPath)
				return nil
			}

			fsys := filesystem.NewOS()
			if err := fsys.MkdirAll(p.ConfigDir(), 0755); err != nil {
				return err
			}
			if err := fsys.WriteFile(configPath, []byte(content), 0644); err != nil {
				return err
			}

			log.Info().Str("path", configPath).Msg("Written config file")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, configPath)
			return nil
		},
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)

	return cmd
}
