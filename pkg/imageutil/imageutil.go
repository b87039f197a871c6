// Package imageutil implements the image operations pagebinder exposes on
// the command line: resizing, thumbnailing, format conversion, JPEG
// recompression, and DPI metadata rewrites. Decoding and resampling are
// handled by disintegration/imaging; webp, bmp, and tiff decode support
// comes from golang.org/x/image.
package imageutil

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// Open decodes the image at path. Registered formats cover png, jpeg, gif,
// bmp, tiff, and webp.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, pberrors.Wrap(pberrors.ErrCodeInvalidImage, err, "decoding %s", path)
	}
	return img, nil
}

// Resize scales the image at input to width x height and writes it to
// outputPath. With keepAspect the image is fitted within width x height
// instead of stretched to it. A zero width or height preserves the aspect
// ratio along that axis regardless; both zero is an error.
func Resize(input, outputPath string, width, height int, keepAspect bool) error {
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "invalid target size %dx%d", width, height)
	}
	img, err := Open(input)
	if err != nil {
		return err
	}
	var resized image.Image
	if keepAspect && width > 0 && height > 0 {
		resized = imaging.Fit(img, width, height, imaging.Lanczos)
	} else {
		resized = imaging.Resize(img, width, height, imaging.Lanczos)
	}
	return save(resized, outputPath, 0)
}

// Thumbnail scales the image at input down to fit within maxWidth x
// maxHeight, preserving aspect ratio. Images already within bounds are
// copied unscaled.
func Thumbnail(input, outputPath string, maxWidth, maxHeight int) error {
	if maxWidth < 1 || maxHeight < 1 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "invalid bounding box %dx%d", maxWidth, maxHeight)
	}
	img, err := Open(input)
	if err != nil {
		return err
	}
	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	return save(thumb, outputPath, 0)
}

// Convert re-encodes the image at input into the format implied by
// outputPath's extension.
func Convert(input, outputPath string) error {
	img, err := Open(input)
	if err != nil {
		return err
	}
	return save(img, outputPath, 0)
}

// Compress re-encodes the image at input as a JPEG with the given quality
// (1-100). Transparency is flattened by the JPEG encoder.
func Compress(input, outputPath string, quality int) error {
	if quality < 1 || quality > 100 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "quality must be 1-100, got %d", quality)
	}
	if ext := strings.ToLower(filepath.Ext(outputPath)); ext != ".jpg" && ext != ".jpeg" {
		return pberrors.New(pberrors.ErrCodeInvalidFormat, "compress output must be a JPEG, got %s", outputPath)
	}
	img, err := Open(input)
	if err != nil {
		return err
	}
	return save(img, outputPath, quality)
}

// Dimensions returns the pixel width and height of the image at path
// without decoding the full pixel data.
func Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "opening %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, pberrors.Wrap(pberrors.ErrCodeInvalidImage, err, "reading %s", path)
	}
	return cfg.Width, cfg.Height, nil
}

// save encodes img to outputPath based on its extension. quality applies to
// JPEG output only; 0 selects the default.
func save(img image.Image, outputPath string, quality int) error {
	ext := strings.ToLower(filepath.Ext(outputPath))
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}

	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		q := quality
		if q == 0 {
			q = 90
		}
		err = jpeg.Encode(f, flattenWhite(img), &jpeg.Options{Quality: q})
	case ".gif", ".bmp", ".tif", ".tiff":
		// imaging handles its own encoder registry for these.
		err = imaging.Encode(f, img, formatFromExt(ext))
	default:
		f.Close()
		os.Remove(outputPath)
		return pberrors.New(pberrors.ErrCodeInvalidFormat, "unsupported output format %q", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// flattenWhite composites img over an opaque white background. JPEG has no
// alpha channel; without this, transparent pixels encode as black.
func flattenWhite(img image.Image) image.Image {
	if opaque, ok := img.(interface{ Opaque() bool }); ok && opaque.Opaque() {
		return img
	}
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.OverlayCenter(canvas, img, 1.0)
}

func formatFromExt(ext string) imaging.Format {
	switch ext {
	case ".gif":
		return imaging.GIF
	case ".tif", ".tiff":
		return imaging.TIFF
	default:
		return imaging.BMP
	}
}
