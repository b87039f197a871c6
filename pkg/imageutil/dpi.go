package imageutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"
	"os"
	"path/filepath"
	"strings"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// SetDPI rewrites the resolution metadata of the PNG or JPEG at input and
// writes the result to outputPath. Pixel data is untouched: PNGs get a pHYs
// chunk, JPEGs get their JFIF density fields set.
func SetDPI(input, outputPath string, dpi int) error {
	if dpi < 1 {
		return pberrors.New(pberrors.ErrCodeInvalidInput, "dpi must be >= 1, got %d", dpi)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "opening %s", input)
	}

	var out []byte
	switch ext := strings.ToLower(filepath.Ext(input)); ext {
	case ".png":
		out, err = setPNGDPI(data, dpi)
	case ".jpg", ".jpeg":
		out, err = setJPEGDPI(data, dpi)
	default:
		return pberrors.New(pberrors.ErrCodeInvalidFormat, "dpi metadata is only supported for png and jpeg, got %s", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, out, 0644)
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// setPNGDPI inserts or replaces the pHYs chunk directly after IHDR. The
// chunk stores pixels per metre, so the dpi is converted at 1in = 0.0254m.
func setPNGDPI(data []byte, dpi int) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, pberrors.New(pberrors.ErrCodeInvalidImage, "not a PNG file")
	}
	ppm := uint32(math.Round(float64(dpi) / 0.0254))

	phys := make([]byte, 9)
	binary.BigEndian.PutUint32(phys[0:4], ppm)
	binary.BigEndian.PutUint32(phys[4:8], ppm)
	phys[8] = 1 // unit: metre

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, 'p', 'H', 'Y', 's')
	chunk = append(chunk, phys...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, pngSignature...)

	pos := len(pngSignature)
	inserted := false
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		end := pos + 8 + length + 4
		if end > len(data) {
			return nil, pberrors.New(pberrors.ErrCodeInvalidImage, "truncated PNG chunk %q", typ)
		}
		switch typ {
		case "pHYs":
			// Drop the existing chunk; the replacement follows IHDR.
		default:
			out = append(out, data[pos:end]...)
		}
		if typ == "IHDR" {
			out = append(out, chunk...)
			inserted = true
		}
		pos = end
	}
	if !inserted {
		return nil, pberrors.New(pberrors.ErrCodeInvalidImage, "PNG has no IHDR chunk")
	}
	return out, nil
}

// setJPEGDPI rewrites the density fields of the JFIF APP0 segment, adding
// one after SOI when the file carries none.
func setJPEGDPI(data []byte, dpi int) ([]byte, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, pberrors.New(pberrors.ErrCodeInvalidImage, "not a JPEG file")
	}

	// Existing JFIF APP0 directly after SOI?
	if len(data) >= 20 && data[2] == 0xFF && data[3] == 0xE0 &&
		bytes.Equal(data[6:11], []byte("JFIF\x00")) {
		out := append([]byte(nil), data...)
		out[13] = 1 // density unit: dots per inch
		binary.BigEndian.PutUint16(out[14:16], uint16(dpi))
		binary.BigEndian.PutUint16(out[16:18], uint16(dpi))
		return out, nil
	}

	app0 := []byte{
		0xFF, 0xE0, 0x00, 0x10,
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x02, // version 1.2
		0x01,       // density unit: dots per inch
		0x00, 0x00, // x density, patched below
		0x00, 0x00, // y density, patched below
		0x00, 0x00, // no thumbnail
	}
	binary.BigEndian.PutUint16(app0[12:14], uint16(dpi))
	binary.BigEndian.PutUint16(app0[14:16], uint16(dpi))

	out := make([]byte, 0, len(data)+len(app0))
	out = append(out, data[:2]...)
	out = append(out, app0...)
	out = append(out, data[2:]...)
	return out, nil
}
