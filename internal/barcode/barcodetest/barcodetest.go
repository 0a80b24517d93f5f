// Package barcodetest renders barcode images for tests.
package barcodetest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/stretchr/testify/require"
)

const (
	imageWidth  = 400
	imageHeight = 120
)

// Render draws text as a barcode of the given symbology.
func Render(t testing.TB, sym barcode.Symbology, text string) image.Image {
	t.Helper()

	var (
		writer gozxing.Writer
		format gozxing.BarcodeFormat
	)
	switch sym {
	case barcode.SymbologyEAN13:
		writer, format = oned.NewEAN13Writer(), gozxing.BarcodeFormat_EAN_13
	case barcode.SymbologyEAN8:
		writer, format = oned.NewEAN8Writer(), gozxing.BarcodeFormat_EAN_8
	case barcode.SymbologyUPCA:
		writer, format = oned.NewUPCAWriter(), gozxing.BarcodeFormat_UPC_A
	default:
		t.Fatalf("barcodetest: unsupported symbology %q", sym)
	}

	matrix, err := writer.Encode(text, format, imageWidth, imageHeight, nil)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// PNG returns Render's output encoded as PNG.
func PNG(t testing.TB, sym barcode.Symbology, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, Render(t, sym, text)))
	return buf.Bytes()
}

// WritePNG writes a PNG barcode frame to path.
func WritePNG(t testing.TB, path string, sym barcode.Symbology, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, PNG(t, sym, text), 0o644))
}

// Blank returns a PNG holding no barcode.
func Blank(t testing.TB) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, imageWidth, imageHeight))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
