package cli

import (
	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/fileutil"
)

// archiveCommand groups the archive subcommands.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Create and extract archives",
	}

	cmd.AddCommand(c.archiveCreateCommand())
	cmd.AddCommand(c.archiveExtractCommand())

	return cmd
}

func (c *CLI) archiveCreateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "create [directory]",
		Short: "Archive a directory as zip or tar.gz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fileutil.CompressDir(args[0], output); err != nil {
				return err
			}
			printSuccess("Archived %s", args[0])
			printFile(output)
			if size, err := fileutil.FileSize(output); err == nil {
				printDetail("%s", fileutil.HumanSize(size))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "archive.zip", "output archive (.zip, .tar.gz, .tgz)")

	return cmd
}

func (c *CLI) archiveExtractCommand() *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "extract [archive]",
		Short: "Extract a zip or tar.gz archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fileutil.ExtractArchive(args[0], destDir); err != nil {
				return err
			}
			printSuccess("Extracted %s", args[0])
			printDetail("Destination: %s", destDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dest", "d", ".", "destination directory")

	return cmd
}
