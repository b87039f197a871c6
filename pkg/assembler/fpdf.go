package assembler

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// placement is one image drawn on a page.
type placement struct {
	data   []byte
	format string
	x, y   float64
	w, h   float64
}

// FpdfDocument is a gofpdf-backed Document. Pages are buffered in memory and
// the PDF is only generated at Save time; that keeps DeletePage exact, which
// gofpdf itself does not offer.
//
// A new document starts with a single blank page, like the generator it
// replaces.
type FpdfDocument struct {
	size        string // page size name, e.g. "A4"
	orientation string // "P" or "L"
	pageW       float64
	pageH       float64
	pages       [][]placement
	cur         int // index of the current page
}

// NewFpdfDocument creates a document with the named page size ("A4",
// "Letter", "Legal", "A3", "A5") and orientation ("P" or "L"), measured in
// points. It fails fast if the size or orientation is unknown.
func NewFpdfDocument(size, orientation string) (*FpdfDocument, error) {
	probe := gofpdf.New(orientation, "pt", size, "")
	if probe.Err() {
		return nil, pberrors.Wrap(pberrors.ErrCodeInvalidInput, probe.Error(),
			"unsupported page size %q / orientation %q", size, orientation)
	}
	w, h := probe.GetPageSize()
	if w <= 0 || h <= 0 {
		return nil, pberrors.New(pberrors.ErrCodeInvalidInput,
			"unsupported page size %q / orientation %q", size, orientation)
	}
	return &FpdfDocument{
		size:        size,
		orientation: orientation,
		pageW:       w,
		pageH:       h,
		pages:       [][]placement{{}},
		cur:         0,
	}, nil
}

// PageWidth returns the page width in points.
func (d *FpdfDocument) PageWidth() float64 { return d.pageW }

// PageHeight returns the page height in points.
func (d *FpdfDocument) PageHeight() float64 { return d.pageH }

// AddImage places an encoded image on the current page.
func (d *FpdfDocument) AddImage(data []byte, format string, x, y, w, h float64) error {
	if len(data) == 0 {
		return pberrors.New(pberrors.ErrCodeInvalidImage, "empty image data")
	}
	if len(d.pages) == 0 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "document has no current page")
	}
	d.pages[d.cur] = append(d.pages[d.cur], placement{
		data:   data,
		format: format,
		x:      x,
		y:      y,
		w:      w,
		h:      h,
	})
	return nil
}

// AddPage appends a blank page and makes it current.
func (d *FpdfDocument) AddPage() {
	d.pages = append(d.pages, []placement{})
	d.cur = len(d.pages) - 1
}

// DeletePage removes page n (1-based). If the current page is removed, the
// cursor moves to the last remaining page.
func (d *FpdfDocument) DeletePage(n int) error {
	if n < 1 || n > len(d.pages) {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "page %d out of range [1,%d]", n, len(d.pages))
	}
	d.pages = append(d.pages[:n-1], d.pages[n:]...)
	if d.cur >= len(d.pages) {
		d.cur = max(len(d.pages)-1, 0)
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (d *FpdfDocument) PageCount() int { return len(d.pages) }

// Save drives gofpdf over the buffered pages and writes the PDF to path.
func (d *FpdfDocument) Save(path string) error {
	if len(d.pages) == 0 {
		return ErrEmptyDocument
	}

	pdf := gofpdf.New(d.orientation, "pt", d.size, "")
	pdf.SetAutoPageBreak(false, 0)

	for pageNum, page := range d.pages {
		pdf.AddPage()
		for imgNum, p := range page {
			name := fmt.Sprintf("page%d_img%d", pageNum+1, imgNum+1)
			opts := gofpdf.ImageOptions{ImageType: p.format}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(p.data))
			pdf.ImageOptions(name, p.x, p.y, p.w, p.h, false, opts, 0, "")
		}
	}

	if pdf.Err() {
		return pberrors.Wrap(pberrors.ErrCodeInternal, pdf.Error(), "generating PDF")
	}
	return pdf.OutputFileAndClose(path)
}

// Ensure FpdfDocument implements Document.
var _ Document = (*FpdfDocument)(nil)
