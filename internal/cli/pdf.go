package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/fileutil"
	"github.com/pagebinder/pagebinder/pkg/pdfutil"
)

// pdfCommand groups the PDF utility subcommands.
func (c *CLI) pdfCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Download, merge, split, rasterize, and inspect PDFs",
	}

	cmd.AddCommand(c.pdfDownloadCommand())
	cmd.AddCommand(c.pdfMergeCommand())
	cmd.AddCommand(c.pdfSplitCommand())
	cmd.AddCommand(c.pdfRasterizeCommand())
	cmd.AddCommand(c.pdfTextCommand())
	cmd.AddCommand(c.pdfInfoCommand())

	return cmd
}

func (c *CLI) pdfDownloadCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "download [url]",
		Short: "Download a PDF from a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if output == "" {
				output = filepath.Base(url)
				if !strings.HasSuffix(output, ".pdf") {
					output = "download.pdf"
				}
			}

			client := c.newHTTPClient(cmd.Context(), noCache)
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Downloading %s...", url))
			spinner.Start()

			if err := pdfutil.Download(cmd.Context(), client, url, output); err != nil {
				spinner.StopWithError("Download failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Downloaded %s", output))

			printFile(output)
			if size, err := fileutil.FileSize(output); err == nil {
				printDetail("%s", fileutil.HumanSize(size))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default derived from URL)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable download caching")

	return cmd
}

func (c *CLI) pdfMergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge [files...]",
		Short: "Merge PDFs into a single file, in argument order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			if err := pdfutil.Merge(args, output); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Merged %d files", len(args)))
			printSuccess("Created %s", output)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "merged.pdf", "output file")

	return cmd
}

func (c *CLI) pdfSplitCommand() *cobra.Command {
	var (
		outputDir string
		span      int
	)

	cmd := &cobra.Command{
		Use:   "split [file.pdf]",
		Short: "Split a PDF into smaller files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pdfutil.Split(args[0], outputDir, span); err != nil {
				return err
			}
			printSuccess("Split %s", args[0])
			printDetail("Output: %s (%d pages per file)", outputDir, span)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "split", "output directory")
	cmd.Flags().IntVarP(&span, "pages", "p", 1, "pages per output file")

	return cmd
}

func (c *CLI) pdfRasterizeCommand() *cobra.Command {
	var (
		outputDir string
		dpi       float64
		format    string
	)

	cmd := &cobra.Command{
		Use:   "rasterize [file.pdf]",
		Short: "Render PDF pages as images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			n, err := pdfutil.Rasterize(args[0], outputDir, dpi, format)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rendered %d pages", n))
			printSuccess("Rendered %d pages to %s", n, outputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "pages", "output directory")
	cmd.Flags().Float64Var(&dpi, "dpi", 150, "render resolution")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "image format: png, jpg")

	return cmd
}

func (c *CLI) pdfTextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "text [file.pdf]",
		Short: "Extract plain text from a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := pdfutil.ExtractText(args[0])
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
}

func (c *CLI) pdfInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file.pdf]",
		Short: "Show page count and size of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := pdfutil.PageCount(args[0])
			if err != nil {
				return err
			}
			size, err := fileutil.FileSize(args[0])
			if err != nil {
				return err
			}
			printKeyValue("File", args[0])
			printKeyValue("Pages", fmt.Sprint(pages))
			printKeyValue("Size", fileutil.HumanSize(size))
			return nil
		},
	}
}
