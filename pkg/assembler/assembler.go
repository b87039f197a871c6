package assembler

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/charmbracelet/log"

	"github.com/pagebinder/pagebinder/pkg/blob"
	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// DefaultOutputName is the output filename used when the caller does not
// choose one.
const DefaultOutputName = "download.pdf"

// Resolver turns a source handle into a decoded image.
// *blob.Store implements it.
type Resolver interface {
	Resolve(source string) (image.Image, error)
}

// Assembler builds one-image-per-page documents from source handles.
type Assembler struct {
	resolver Resolver
	logger   *log.Logger
}

// New creates an Assembler. A nil logger falls back to log.Default().
func New(resolver Resolver, logger *log.Logger) *Assembler {
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{resolver: resolver, logger: logger}
}

// Assemble places each blob-handle source on its own page of doc, in input
// order, and saves the result to outputPath (DefaultOutputName if empty).
//
// Sources that are not blob handles (remote URLs, plain paths) are skipped
// with a debug log line; they never fail the run. Any failure on an eligible
// source aborts the whole assembly and nothing is saved. When no source is
// eligible the document ends up with zero pages and no file is written.
func (a *Assembler) Assemble(ctx context.Context, doc Document, sources []string, outputPath string) error {
	if outputPath == "" {
		outputPath = DefaultOutputName
	}

	pageW, pageH := doc.PageWidth(), doc.PageHeight()

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !blob.IsHandle(source) {
			a.logger.Debug("skipping non-local image", "source", source)
			continue
		}

		img, err := a.resolver.Resolve(source)
		if err != nil {
			return pberrors.Wrap(pberrors.ErrCodeInvalidImage, err, "resolving %s", source)
		}

		data, w, h, err := rasterize(img)
		if err != nil {
			return pberrors.Wrap(pberrors.ErrCodeInvalidImage, err, "rasterizing %s", source)
		}

		fw, fh := FitDimensions(pageW, pageH, w, h)
		a.logger.Debug("adding page", "source", source, "natural", [2]float64{w, h}, "placed", [2]float64{fw, fh})

		if err := doc.AddImage(data, "PNG", 0, 0, fw, fh); err != nil {
			return pberrors.Wrap(pberrors.ErrCodeInternal, err, "placing %s", source)
		}
		doc.AddPage()
	}

	// The loop always advances past the last placed image, leaving one
	// blank page at the end; drop it. Guarded so an all-ineligible input
	// does not delete below zero.
	if doc.PageCount() > 0 {
		if err := doc.DeletePage(doc.PageCount()); err != nil {
			return err
		}
	}

	if doc.PageCount() == 0 {
		a.logger.Info("no eligible images, nothing to save")
		return nil
	}

	if err := doc.Save(outputPath); err != nil {
		return pberrors.Wrap(pberrors.ErrCodeInternal, err, "saving %s", outputPath)
	}
	a.logger.Info("document saved", "path", outputPath, "pages", doc.PageCount())
	return nil
}

// rasterize re-encodes img as lossless PNG at its natural pixel size and
// returns the encoded bytes with the natural dimensions.
func rasterize(img image.Image) ([]byte, float64, float64, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, 0, 0, pberrors.New(pberrors.ErrCodeInvalidImage, "image has no pixels")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, 0, err
	}
	return buf.Bytes(), float64(bounds.Dx()), float64(bounds.Dy()), nil
}
