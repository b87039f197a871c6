package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/fileutil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It walks the
// file cache's shard layout (two-digit subdirectories of hashed entries)
// and reports how many downloads and bytes it dropped.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			shards, err := os.ReadDir(dir)
			if os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return err
			}

			count := 0
			var freed int64
			for _, shard := range shards {
				if !shard.IsDir() {
					continue
				}
				shardDir := filepath.Join(dir, shard.Name())
				entries, err := os.ReadDir(shardDir)
				if err != nil {
					continue
				}
				for _, e := range entries {
					if info, err := e.Info(); err == nil {
						freed += info.Size()
					}
					if err := os.Remove(filepath.Join(shardDir, e.Name())); err == nil {
						count++
					}
				}
				// Shard directory should be empty now.
				os.Remove(shardDir)
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached downloads (%s)", count, fileutil.HumanSize(freed))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand. The bare path on
// stdout keeps the output usable in shell substitutions.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
