// Package pdfutil wraps the PDF manipulation operations pagebinder exposes:
// downloading, merging, splitting, page rasterization, page counting, and
// plain-text extraction. All encoding work is delegated to pdfcpu, MuPDF
// (go-fitz), and ledongthuc/pdf.
package pdfutil

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
	"github.com/pagebinder/pagebinder/pkg/httputil"
)

// pdfHeader is the magic prefix every PDF starts with.
var pdfHeader = []byte("%PDF")

// Download fetches the PDF at url and writes it to outputPath.
// The response body is verified to carry a PDF header before anything is
// written; a non-PDF body fails with INVALID_FORMAT and leaves no file.
func Download(ctx context.Context, client *httputil.Client, url, outputPath string) error {
	data, err := client.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if !bytes.HasPrefix(data, pdfHeader) {
		return pberrors.New(pberrors.ErrCodeInvalidFormat, "%s did not return a PDF", url)
	}
	return os.WriteFile(outputPath, data, 0644)
}

// Merge combines the input PDFs into a single file at outputPath, in the
// given order. Inputs that do not exist fail the whole merge; partial merges
// are never written.
func Merge(inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "no input files")
	}
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "input %s", in)
		}
	}
	conf := model.NewDefaultConfiguration()
	return api.MergeCreateFile(inputs, outputPath, false, conf)
}

// Split writes input's pages into numbered files under outputDir,
// pagesPerFile pages per output file. The directory is created if needed.
func Split(input, outputDir string, pagesPerFile int) error {
	if pagesPerFile < 1 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "pages per file must be >= 1, got %d", pagesPerFile)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	conf := model.NewDefaultConfiguration()
	return api.SplitFile(input, outputDir, pagesPerFile, conf)
}

// PageCount returns the number of pages in the PDF at input.
func PageCount(input string) (int, error) {
	return api.PageCountFile(input)
}

// Rasterize renders every page of input as an image file page_<n>.<ext>
// under outputDir. Supported formats are "png" and "jpg"; dpi controls the
// render resolution (72 reproduces the page at natural size).
func Rasterize(input, outputDir string, dpi float64, format string) (int, error) {
	format = strings.ToLower(format)
	if format != "png" && format != "jpg" {
		return 0, pberrors.New(pberrors.ErrCodeInvalidFormat, "unsupported image format %q (png or jpg)", format)
	}
	if dpi <= 0 {
		return 0, pberrors.New(pberrors.ErrCodeInvalidInput, "dpi must be positive, got %v", dpi)
	}

	doc, err := fitz.New(input)
	if err != nil {
		return 0, pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "opening %s", input)
	}
	defer doc.Close()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.ImageDPI(n, dpi)
		if err != nil {
			return 0, pberrors.Wrap(pberrors.ErrCodeInternal, err, "rendering page %d", n+1)
		}

		path := filepath.Join(outputDir, fmt.Sprintf("page_%d.%s", n+1, format))
		f, err := os.Create(path)
		if err != nil {
			return 0, err
		}
		switch format {
		case "png":
			err = png.Encode(f, img)
		case "jpg":
			err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
		}
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return 0, pberrors.Wrap(pberrors.ErrCodeInternal, err, "writing %s", path)
		}
	}
	return doc.NumPage(), nil
}

// ExtractText returns the plain text of every page in the PDF at input.
func ExtractText(input string) (string, error) {
	f, r, err := pdf.Open(input)
	if err != nil {
		return "", pberrors.Wrap(pberrors.ErrCodeInvalidFormat, err, "opening %s", input)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", pberrors.Wrap(pberrors.ErrCodeInternal, err, "extracting text from %s", input)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}
