// Package assembler builds a multi-page PDF from registered images, one
// image per page, each scaled to span the page on one axis.
//
// The document backend is injected via the [Document] interface rather than
// discovered from the environment, so assembly is testable without a PDF
// library and fails fast when no backend is available.
package assembler

import "errors"

// ErrEmptyDocument is returned by Document.Save when the document contains
// no pages. The assembler treats it as "nothing to write", not a failure.
var ErrEmptyDocument = errors.New("document has no pages")

// Document is one output document under construction. It mirrors the
// page-oriented surface of the underlying PDF library: a cursor sits on the
// current page, AddImage draws on it, AddPage appends a fresh blank page and
// moves the cursor there. A freshly created Document has one blank page.
//
// Page indices are 1-based.
type Document interface {
	// PageWidth returns the fixed page width in document units.
	PageWidth() float64

	// PageHeight returns the fixed page height in document units.
	PageHeight() float64

	// AddImage places an encoded image (format "PNG", "JPG", ...) on the
	// current page with its top-left corner at (x, y) and the given
	// display size.
	AddImage(data []byte, format string, x, y, w, h float64) error

	// AddPage appends a blank page and makes it current.
	AddPage()

	// DeletePage removes page n (1-based).
	DeletePage(n int) error

	// PageCount returns the number of pages currently in the document.
	PageCount() int

	// Save finalizes the document and writes it to path.
	// Saving a document with zero pages returns ErrEmptyDocument.
	Save(path string) error
}
