package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/cmdutil"
)

// commandsCommand groups the shell-command reference subcommands.
func (c *CLI) commandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "A reference catalog of common shell commands",
	}

	cmd.AddCommand(c.commandsListCommand())
	cmd.AddCommand(c.commandsRunCommand())
	cmd.AddCommand(c.commandsInfoCommand())

	return cmd
}

func (c *CLI) commandsListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the command catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			current := ""
			for _, entry := range cmdutil.Catalog() {
				if category != "" && entry.Category != category {
					continue
				}
				if entry.Category != current {
					current = entry.Category
					fmt.Println(StyleHighlight.Render(current))
				}
				printKeyValue(entry.Name, entry.Description)
				printDetail("e.g. %s", entry.Example)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")

	return cmd
}

func (c *CLI) commandsRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [command] [args...]",
		Short: "Run a shell command, capturing its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout, stderr, err := cmdutil.Run(cmd.Context(), args[0], args[1:]...)
			if stdout != "" {
				fmt.Print(stdout)
			}
			if stderr != "" {
				printWarning("%s", stderr)
			}
			return err
		},
	}
}

func (c *CLI) commandsInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show host and runtime information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := cmdutil.SystemInfo()
			printKeyValue("OS", info.OS)
			printKeyValue("Arch", info.Arch)
			printKeyValue("CPUs", fmt.Sprint(info.CPUs))
			printKeyValue("Go", info.GoVersion)
			printKeyValue("Host", info.Hostname)
			printKeyValue("Workdir", info.WorkDir)
			return nil
		},
	}
}
