package cli

import (
	"github.com/spf13/cobra"

	"github.com/pagebinder/pagebinder/pkg/fileutil"
	"github.com/pagebinder/pagebinder/pkg/imageutil"
)

// imageCommand groups the image utility subcommands.
func (c *CLI) imageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Resize, convert, and recompress images",
	}

	cmd.AddCommand(c.imageResizeCommand())
	cmd.AddCommand(c.imageThumbnailCommand())
	cmd.AddCommand(c.imageConvertCommand())
	cmd.AddCommand(c.imageCompressCommand())
	cmd.AddCommand(c.imageDPICommand())

	return cmd
}

func (c *CLI) imageResizeCommand() *cobra.Command {
	var (
		width, height int
		keepAspect    bool
	)

	cmd := &cobra.Command{
		Use:   "resize [input] [output]",
		Short: "Resize an image",
		Long: `Resize an image to the given dimensions.

Passing only --width or only --height preserves the aspect ratio along the
other axis. With --keep-aspect the image is fitted within the box instead
of stretched to it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imageutil.Resize(args[0], args[1], width, height, keepAspect); err != nil {
				return err
			}
			w, h, err := imageutil.Dimensions(args[1])
			if err != nil {
				return err
			}
			printSuccess("Resized to %dx%d", w, h)
			printFile(args[1])
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "W", 0, "target width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "target height in pixels")
	cmd.Flags().BoolVar(&keepAspect, "keep-aspect", false, "fit within the box instead of stretching")

	return cmd
}

func (c *CLI) imageThumbnailCommand() *cobra.Command {
	var maxWidth, maxHeight int

	cmd := &cobra.Command{
		Use:   "thumbnail [input] [output]",
		Short: "Create a thumbnail that fits within a bounding box",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imageutil.Thumbnail(args[0], args[1], maxWidth, maxHeight); err != nil {
				return err
			}
			printSuccess("Created thumbnail")
			printFile(args[1])
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxWidth, "width", "W", 200, "bounding box width in pixels")
	cmd.Flags().IntVarP(&maxHeight, "height", "H", 200, "bounding box height in pixels")

	return cmd
}

func (c *CLI) imageConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert an image to the format implied by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imageutil.Convert(args[0], args[1]); err != nil {
				return err
			}
			printSuccess("Converted %s", args[0])
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) imageCompressCommand() *cobra.Command {
	var quality int

	cmd := &cobra.Command{
		Use:   "compress [input] [output.jpg]",
		Short: "Recompress an image as a JPEG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imageutil.Compress(args[0], args[1], quality); err != nil {
				return err
			}
			before, errB := fileutil.FileSize(args[0])
			after, errA := fileutil.FileSize(args[1])
			printSuccess("Compressed %s", args[0])
			printFile(args[1])
			if errB == nil && errA == nil {
				printDetail("%s %s %s", fileutil.HumanSize(before), iconArrow, fileutil.HumanSize(after))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&quality, "quality", "q", 75, "JPEG quality (1-100)")

	return cmd
}

func (c *CLI) imageDPICommand() *cobra.Command {
	var dpi int

	cmd := &cobra.Command{
		Use:   "dpi [input] [output]",
		Short: "Rewrite the resolution metadata of a PNG or JPEG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := imageutil.SetDPI(args[0], args[1], dpi); err != nil {
				return err
			}
			printSuccess("Set resolution to %d dpi", dpi)
			printFile(args[1])
			return nil
		},
	}

	cmd.Flags().IntVar(&dpi, "dpi", 300, "resolution in dots per inch")

	return cmd
}
