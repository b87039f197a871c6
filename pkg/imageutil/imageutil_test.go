package imageutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// writeImage encodes a solid-color image at path, format chosen by extension.
func writeImage(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg":
		err = jpeg.Encode(f, img, nil)
	default:
		t.Fatalf("unsupported fixture extension %s", path)
	}
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func TestResize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, 100, 50)

	if err := Resize(in, out, 40, 20, false); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 20 {
		t.Errorf("resized to %dx%d, want 40x20", w, h)
	}
}

func TestResizePreservesAspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, 100, 50)

	if err := Resize(in, out, 40, 0, false); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 20 {
		t.Errorf("resized to %dx%d, want 40x20", w, h)
	}
}

func TestResizeKeepAspectFitsWithinBox(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, 100, 50)

	if err := Resize(in, out, 40, 40, true); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 20 {
		t.Errorf("fitted to %dx%d, want 40x20", w, h)
	}
}

func TestResizeStretchesWithoutKeepAspect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, 100, 50)

	if err := Resize(in, out, 40, 40, false); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 40 {
		t.Errorf("stretched to %dx%d, want 40x40", w, h)
	}
}

func TestResizeInvalidSize(t *testing.T) {
	if err := Resize("in.png", "out.png", 0, 0, false); err == nil {
		t.Fatal("Resize() with zero size succeeded, want error")
	}
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "thumb.png")
	writeImage(t, in, 400, 200)

	if err := Thumbnail(in, out, 100, 80); err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 100 || h != 50 {
		t.Errorf("thumbnail is %dx%d, want 100x50", w, h)
	}
}

func TestThumbnailRectangularBox(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "thumb.png")
	writeImage(t, in, 200, 400)

	if err := Thumbnail(in, out, 300, 100); err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatal(err)
	}
	if w != 50 || h != 100 {
		t.Errorf("thumbnail is %dx%d, want 50x100", w, h)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writeImage(t, in, 20, 20)

	if err := Convert(in, out); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if format != "jpeg" {
		t.Errorf("converted format = %q, want jpeg", format)
	}
}

func TestCompress(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writeImage(t, in, 50, 50)

	if err := Compress(in, out, 40); err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("compressed output missing: %v", err)
	}
}

// writeTransparentPNG encodes a fully transparent image at path.
func writeTransparentPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

// requireWhite decodes the image at path and fails unless the center pixel
// is (near-)white. JPEG encoding is lossy, so a small tolerance applies.
func requireWhite(t *testing.T, path string) {
	t.Helper()
	img, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	center := img.Bounds().Min.Add(img.Bounds().Size().Div(2))
	r, g, b, _ := img.At(center.X, center.Y).RGBA()
	for name, v := range map[string]uint32{"r": r >> 8, "g": g >> 8, "b": b >> 8} {
		if v < 250 {
			t.Errorf("transparent pixel %s = %d after JPEG flatten, want ~255", name, v)
		}
	}
}

func TestConvertFlattensTransparencyToWhite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writeTransparentPNG(t, in, 8, 8)

	if err := Convert(in, out); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	requireWhite(t, out)
}

func TestCompressFlattensTransparencyToWhite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writeTransparentPNG(t, in, 8, 8)

	if err := Compress(in, out, 90); err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	requireWhite(t, out)
}

func TestCompressRejectsNonJPEGOutput(t *testing.T) {
	err := Compress("in.png", "out.png", 40)
	if err == nil {
		t.Fatal("Compress() to PNG succeeded, want error")
	}
	if pberrors.GetCode(err) != pberrors.ErrCodeInvalidFormat {
		t.Errorf("error code = %q, want %q", pberrors.GetCode(err), pberrors.ErrCodeInvalidFormat)
	}
}

func TestCompressInvalidQuality(t *testing.T) {
	for _, q := range []int{0, 101, -5} {
		if err := Compress("in.png", "out.jpg", q); err == nil {
			t.Errorf("Compress() with quality %d succeeded, want error", q)
		}
	}
}

func TestSetDPIPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeImage(t, in, 10, 10)

	if err := SetDPI(in, out, 300); err != nil {
		t.Fatalf("SetDPI() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	idx := bytes.Index(data, []byte("pHYs"))
	if idx < 0 {
		t.Fatal("output PNG has no pHYs chunk")
	}
	ppm := binary.BigEndian.Uint32(data[idx+4 : idx+8])
	if ppm != 11811 { // round(300 / 0.0254)
		t.Errorf("pixels per metre = %d, want 11811", ppm)
	}

	// Output must still decode to the same image.
	w, h, err := Dimensions(out)
	if err != nil {
		t.Fatalf("output no longer decodes: %v", err)
	}
	if w != 10 || h != 10 {
		t.Errorf("output is %dx%d, want 10x10", w, h)
	}
}

func TestSetDPIJPEG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	out := filepath.Join(dir, "out.jpg")
	writeImage(t, in, 10, 10)

	if err := SetDPI(in, out, 150); err != nil {
		t.Fatalf("SetDPI() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	idx := bytes.Index(data, []byte("JFIF\x00"))
	if idx < 0 {
		t.Fatal("output JPEG has no JFIF segment")
	}
	if unit := data[idx+7]; unit != 1 {
		t.Errorf("density unit = %d, want 1 (dpi)", unit)
	}
	if x := binary.BigEndian.Uint16(data[idx+8 : idx+10]); x != 150 {
		t.Errorf("x density = %d, want 150", x)
	}

	if _, _, err := Dimensions(out); err != nil {
		t.Fatalf("output no longer decodes: %v", err)
	}
}

func TestSetDPIUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.gif")
	if err := os.WriteFile(in, []byte("GIF89a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SetDPI(in, filepath.Join(dir, "out.gif"), 72); err == nil {
		t.Fatal("SetDPI() on gif succeeded, want error")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Fatal("Open() of missing file succeeded, want error")
	}
	if pberrors.GetCode(err) != pberrors.ErrCodeFileNotFound {
		t.Errorf("error code = %q, want %q", pberrors.GetCode(err), pberrors.ErrCodeFileNotFound)
	}
}
