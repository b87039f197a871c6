package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/assembler"
	"github.com/pagebinder/pagebinder/pkg/blob"
	"github.com/pagebinder/pagebinder/pkg/fileutil"
	"github.com/pagebinder/pagebinder/pkg/imageutil"
)

// assembleCommand creates the assemble command, the core of pagebinder.
func (c *CLI) assembleCommand() *cobra.Command {
	var (
		output      string
		size        string
		orientation string
	)

	cmd := &cobra.Command{
		Use:   "assemble [images...]",
		Short: "Bind a sequence of images into a multi-page PDF",
		Long: `Bind a sequence of images into a multi-page PDF, one image per page.

Each image is decoded, re-encoded losslessly as PNG, and scaled to fit the
page while preserving its aspect ratio. Page order follows argument order.
Remote URLs are skipped; only local files end up in the document.

Page size and orientation default to the [page] section of the config file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			if size == "" {
				size = c.config.Page.Size
			}
			if orientation == "" {
				orientation = c.config.Page.Orientation
			}

			doc, err := assembler.NewFpdfDocument(size, orientation)
			if err != nil {
				return err
			}

			// Local files become in-memory blobs; anything else is passed
			// through untouched so the assembler can skip it.
			store := blob.NewStore()
			sources := make([]string, len(args))
			for i, arg := range args {
				img, err := imageutil.Open(arg)
				if err != nil {
					sources[i] = arg
					logger.Debug("Not a local image, passing through", "source", arg)
					continue
				}
				sources[i] = store.Put(img)
			}

			prog := newProgress(logger)
			a := assembler.New(store, logger)
			if err := a.Assemble(cmd.Context(), doc, sources, output); err != nil {
				printError("Assembly failed")
				return err
			}

			pages := doc.PageCount()
			if pages == 0 {
				printWarning("No eligible images, nothing was written")
				return nil
			}
			prog.done(fmt.Sprintf("Assembled %d pages", pages))

			printSuccess("Created %s", output)
			printFile(output)
			if size, err := fileutil.FileSize(output); err == nil {
				printDetail("%s · %d pages", fileutil.HumanSize(size), pages)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", assembler.DefaultOutputName, "output PDF path")
	cmd.Flags().StringVar(&size, "size", "", "page size: A4, A3, Letter, Legal")
	cmd.Flags().StringVar(&orientation, "orientation", "", "page orientation: P (portrait), L (landscape)")

	return cmd
}
