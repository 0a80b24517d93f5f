// Package barcode decodes 1-D retail barcodes (EAN-13, EAN-8, UPC-A, UPC-E)
// from images.
package barcode

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// ErrNoBarcode is returned when an image holds no readable barcode.
var ErrNoBarcode = errors.New("no barcode found")

// Symbology identifies a barcode encoding standard.
type Symbology string

const (
	SymbologyUnknown Symbology = ""
	SymbologyEAN13   Symbology = "ean13"
	SymbologyEAN8    Symbology = "ean8"
	SymbologyUPCA    Symbology = "upc_a"
	SymbologyUPCE    Symbology = "upc_e"
)

// Supported lists the symbologies the scanner accepts.
var Supported = []Symbology{SymbologyEAN13, SymbologyEAN8, SymbologyUPCA, SymbologyUPCE}

// String returns a display label such as "EAN-13".
func (s Symbology) String() string {
	switch s {
	case SymbologyEAN13:
		return "EAN-13"
	case SymbologyEAN8:
		return "EAN-8"
	case SymbologyUPCA:
		return "UPC-A"
	case SymbologyUPCE:
		return "UPC-E"
	default:
		return "unknown"
	}
}

// ParseSymbology accepts both the identifier ("upc_a") and the display
// label ("UPC-A"), case-insensitively.
func ParseSymbology(value string) (Symbology, bool) {
	normalized := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(value))
	switch normalized {
	case "ean13":
		return SymbologyEAN13, true
	case "ean8":
		return SymbologyEAN8, true
	case "upca":
		return SymbologyUPCA, true
	case "upce":
		return SymbologyUPCE, true
	default:
		return SymbologyUnknown, false
	}
}

func fromFormat(format gozxing.BarcodeFormat) Symbology {
	switch format {
	case gozxing.BarcodeFormat_EAN_13:
		return SymbologyEAN13
	case gozxing.BarcodeFormat_EAN_8:
		return SymbologyEAN8
	case gozxing.BarcodeFormat_UPC_A:
		return SymbologyUPCA
	case gozxing.BarcodeFormat_UPC_E:
		return SymbologyUPCE
	default:
		return SymbologyUnknown
	}
}

// Result is one decoded barcode.
type Result struct {
	Text      string
	Symbology Symbology
}

// Decoder reads the four supported symbologies from images.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	reader gozxing.Reader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewDecoder returns a decoder restricted to EAN-13, EAN-8, UPC-A and UPC-E.
func NewDecoder() *Decoder {
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_POSSIBLE_FORMATS: []gozxing.BarcodeFormat{
			gozxing.BarcodeFormat_EAN_13,
			gozxing.BarcodeFormat_EAN_8,
			gozxing.BarcodeFormat_UPC_A,
			gozxing.BarcodeFormat_UPC_E,
		},
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	return &Decoder{
		reader: oned.NewMultiFormatUPCEANReader(hints),
		hints:  hints,
	}
}

// DecodeImage finds a barcode in img.
func (d *Decoder) DecodeImage(img image.Image) (Result, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Result{}, fmt.Errorf("prepare bitmap: %w", err)
	}
	res, err := d.reader.Decode(bmp, d.hints)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNoBarcode, err)
	}
	return Result{Text: res.GetText(), Symbology: fromFormat(res.GetBarcodeFormat())}, nil
}

// Decode reads a PNG or JPEG image from r and decodes it.
func (d *Decoder) Decode(r io.Reader) (Result, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}
	return d.DecodeImage(img)
}

// DecodeFile opens path and decodes the image it holds.
func (d *Decoder) DecodeFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return d.Decode(f)
}
