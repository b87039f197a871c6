package assembler

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagebinder/pagebinder/pkg/blob"
)

// fakeDocument records calls without touching a PDF library. Like the real
// backend, it starts with one blank page.
type fakeDocument struct {
	pageW, pageH float64
	pages        [][]fakePlacement
	cur          int
	saved        []string
	addImageErr  error
}

type fakePlacement struct {
	format     string
	x, y, w, h float64
}

func newFakeDocument(w, h float64) *fakeDocument {
	return &fakeDocument{pageW: w, pageH: h, pages: [][]fakePlacement{{}}}
}

func (d *fakeDocument) PageWidth() float64  { return d.pageW }
func (d *fakeDocument) PageHeight() float64 { return d.pageH }

func (d *fakeDocument) AddImage(data []byte, format string, x, y, w, h float64) error {
	if d.addImageErr != nil {
		return d.addImageErr
	}
	d.pages[d.cur] = append(d.pages[d.cur], fakePlacement{format, x, y, w, h})
	return nil
}

func (d *fakeDocument) AddPage() {
	d.pages = append(d.pages, []fakePlacement{})
	d.cur = len(d.pages) - 1
}

func (d *fakeDocument) DeletePage(n int) error {
	if n < 1 || n > len(d.pages) {
		return errors.New("page out of range")
	}
	d.pages = append(d.pages[:n-1], d.pages[n:]...)
	if d.cur >= len(d.pages) {
		d.cur = max(len(d.pages)-1, 0)
	}
	return nil
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func (d *fakeDocument) Save(path string) error {
	if len(d.pages) == 0 {
		return ErrEmptyDocument
	}
	d.saved = append(d.saved, path)
	return nil
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	return img
}

func TestAssemble_OnePagePerImage(t *testing.T) {
	store := blob.NewStore()
	sources := []string{
		store.Put(testImage(1000, 500)),
		store.Put(testImage(400, 1000)),
		store.Put(testImage(50, 50)),
	}

	doc := newFakeDocument(210, 297)
	a := New(store, nil)
	if err := a.Assemble(context.Background(), doc, sources, "out.pdf"); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if doc.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", doc.PageCount())
	}
	for i, page := range doc.pages {
		if len(page) != 1 {
			t.Errorf("page %d has %d images, want 1", i+1, len(page))
		}
	}
	if len(doc.saved) != 1 || doc.saved[0] != "out.pdf" {
		t.Errorf("saved = %v, want [out.pdf]", doc.saved)
	}
}

func TestAssemble_PlacementUsesFitDimensions(t *testing.T) {
	store := blob.NewStore()
	sources := []string{store.Put(testImage(1000, 500))}

	doc := newFakeDocument(210, 297)
	a := New(store, nil)
	if err := a.Assemble(context.Background(), doc, sources, "out.pdf"); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	p := doc.pages[0][0]
	if p.x != 0 || p.y != 0 {
		t.Errorf("placement at (%v, %v), want origin", p.x, p.y)
	}
	if p.w != 210 || p.h != 105 {
		t.Errorf("placement size = (%v, %v), want (210, 105)", p.w, p.h)
	}
	if p.format != "PNG" {
		t.Errorf("placement format = %q, want PNG", p.format)
	}
}

func TestAssemble_SkipsRemoteSources(t *testing.T) {
	store := blob.NewStore()
	sources := []string{
		store.Put(testImage(100, 100)),
		"https://example.com/remote.png",
		store.Put(testImage(200, 100)),
	}

	doc := newFakeDocument(210, 297)
	a := New(store, nil)
	if err := a.Assemble(context.Background(), doc, sources, "out.pdf"); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2 (remote source must not produce a page)", doc.PageCount())
	}
}

func TestAssemble_NoEligibleSources(t *testing.T) {
	store := blob.NewStore()
	sources := []string{"https://example.com/a.png", "https://example.com/b.png"}

	doc := newFakeDocument(210, 297)
	a := New(store, nil)
	if err := a.Assemble(context.Background(), doc, sources, "out.pdf"); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if doc.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0 (initial blank page removed)", doc.PageCount())
	}
	if len(doc.saved) != 0 {
		t.Errorf("saved = %v, want no saves for an empty document", doc.saved)
	}
}

func TestAssemble_EmptyInput(t *testing.T) {
	doc := newFakeDocument(210, 297)
	a := New(blob.NewStore(), nil)
	if err := a.Assemble(context.Background(), doc, nil, "out.pdf"); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if doc.PageCount() != 0 {
		t.Errorf("PageCount() = %d, want 0", doc.PageCount())
	}
	if len(doc.saved) != 0 {
		t.Errorf("saved = %v, want none", doc.saved)
	}
}

func TestAssemble_ResolveFailureAbortsWithoutSave(t *testing.T) {
	store := blob.NewStore()
	sources := []string{
		store.Put(testImage(100, 100)),
		"blob:00000000-0000-0000-0000-000000000000", // eligible but unknown
	}

	doc := newFakeDocument(210, 297)
	a := New(store, nil)
	err := a.Assemble(context.Background(), doc, sources, "out.pdf")
	if err == nil {
		t.Fatal("Assemble() = nil, want error for unresolvable source")
	}
	if len(doc.saved) != 0 {
		t.Errorf("saved = %v, want no saves after failure", doc.saved)
	}
}

func TestAssemble_AddImageFailureAborts(t *testing.T) {
	store := blob.NewStore()
	sources := []string{store.Put(testImage(100, 100))}

	doc := newFakeDocument(210, 297)
	doc.addImageErr = errors.New("placement failed")
	a := New(store, nil)
	if err := a.Assemble(context.Background(), doc, sources, "out.pdf"); err == nil {
		t.Fatal("Assemble() = nil, want error")
	}
	if len(doc.saved) != 0 {
		t.Errorf("saved = %v, want no saves after failure", doc.saved)
	}
}

func TestAssemble_CancelledContext(t *testing.T) {
	store := blob.NewStore()
	sources := []string{store.Put(testImage(100, 100))}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := newFakeDocument(210, 297)
	a := New(store, nil)
	if err := a.Assemble(ctx, doc, sources, "out.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Assemble() = %v, want context.Canceled", err)
	}
}

func TestAssemble_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	store := blob.NewStore()
	sources := []string{store.Put(testImage(640, 480))}

	doc, err := NewFpdfDocument("A4", "P")
	if err != nil {
		t.Fatalf("NewFpdfDocument() error: %v", err)
	}
	a := New(store, nil)
	if err := a.Assemble(context.Background(), doc, sources, ""); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, DefaultOutputName)); err != nil {
		t.Errorf("expected %s to be written: %v", DefaultOutputName, err)
	}
}
