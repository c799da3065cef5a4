package slink

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/arthur-debert/slink/pkg/config"
	"github.com/arthur-debert/slink/pkg/errors"
	"github.com/arthur-debert/slink/pkg/filesystem"
	"github.com/arthur-debert/slink/pkg/params"
	"github.com/arthur-debert/slink/pkg/paths"
	"github.com/arthur-debert/slink/pkg/specfile"
	"github.com/arthur-debert/slink/pkg/types"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var (
		filename string
		depth    int
	)

	cmd := &cobra.Command{
		Use:     "scan DIR",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Example: MsgScanExample,
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

			fsys := filesystem.NewOS()
			cfg, err := config.Load(fsys, p)
			if err != nil {
				return err
			}

			runParams, err := params.New(params.CLI{
				Dir:      dir,
				Filename: filename,
				Depth:    depth,
				DepthSet: cmd.Flags().Changed("depth"),
			}, cfg)
			if err != nil {
				return err
			}

			files, err := specfile.Find(runParams.Dir, runParams.Filename, runParams.Depth, fsys)
			if err != nil {
				return err
			}

			log.Info().Int("count", len(files)).Str("dir", runParams.Dir).Msg("Scanned for spec files")

			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoSpecFiles)
				return nil
			}

			tableData := pterm.TableData{{"FILE", "SPECS", "COMMENTS", "EMPTY", "INVALID"}}
			for _, file := range files {
				counts, err := countLines(file, fsys)
				if err != nil {
					return err
				}
				tableData = append(tableData, []string{
					file,
					strconv.Itoa(counts.specs),
					strconv.Itoa(counts.comments),
					strconv.Itoa(counts.empty),
					strconv.Itoa(counts.invalid),
				})
			}

			rendered, err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)

			return nil
		},
	}

	cmd.Flags().StringVarP(&filename, "filename", "f", "", MsgFlagFilename)
	cmd.Flags().IntVar(&depth, "depth", config.DefaultDepth, MsgFlagDepth)

	return cmd
}

// lineCounts tallies what kinds of lines a spec file contains
type lineCounts struct {
	specs    int
	comments int
	empty    int
	invalid  int
}

func countLines(path string, fsys types.FS) (lineCounts, error) {
	var counts lineCounts

	f, err := fsys.Open(path)
	if err != nil {
		return counts, errors.Wrapf(err, errors.ErrFileOpen, "tried to open %s, but unexpectedly failed", path).
			WithDetail("file", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		switch specfile.Classify(scanner.Text(), fsys).Kind {
		case specfile.Spec:
			counts.specs++
		case specfile.Comment:
			counts.comments++
		case specfile.Empty:
			counts.empty++
		default:
			counts.invalid++
		}
	}
	if err := scanner.Err(); err != nil {
		return counts, errors.Wrapf(err, errors.ErrLineRead, "error reading line %d of file %s", lineNo+1, path).
			WithDetail("file", path)
	}

	return counts, nil
}
