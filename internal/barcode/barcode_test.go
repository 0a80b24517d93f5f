package barcode_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/barcode/barcodetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	tests := []struct {
		name string
		sym  barcode.Symbology
		text string
		want barcode.Result
	}{
		{
			name: "ean13",
			sym:  barcode.SymbologyEAN13,
			text: "5901234123457",
			want: barcode.Result{Text: "5901234123457", Symbology: barcode.SymbologyEAN13},
		},
		{
			name: "ean8",
			sym:  barcode.SymbologyEAN8,
			text: "96385074",
			want: barcode.Result{Text: "96385074", Symbology: barcode.SymbologyEAN8},
		},
		{
			name: "upc-a",
			sym:  barcode.SymbologyUPCA,
			text: "012345678905",
			want: barcode.Result{Text: "012345678905", Symbology: barcode.SymbologyUPCA},
		},
	}

	dec := barcode.NewDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec.DecodeImage(barcodetest.Render(t, tt.sym, tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBlankImage(t *testing.T) {
	_, err := barcode.NewDecoder().Decode(bytes.NewReader(barcodetest.Blank(t)))
	require.ErrorIs(t, err, barcode.ErrNoBarcode)
}

func TestDecodeNotAnImage(t *testing.T) {
	_, err := barcode.NewDecoder().Decode(bytes.NewReader([]byte("not an image")))
	require.Error(t, err)
	require.NotErrorIs(t, err, barcode.ErrNoBarcode)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	barcodetest.WritePNG(t, path, barcode.SymbologyEAN13, "5901234123457")

	got, err := barcode.NewDecoder().DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5901234123457", got.Text)

	_, err = barcode.NewDecoder().DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestParseSymbology(t *testing.T) {
	for _, input := range []string{"upc_a", "UPC-A", "upca"} {
		sym, ok := barcode.ParseSymbology(input)
		require.True(t, ok, input)
		assert.Equal(t, barcode.SymbologyUPCA, sym)
	}
	_, ok := barcode.ParseSymbology("qr")
	assert.False(t, ok)

	for _, sym := range barcode.Supported {
		parsed, ok := barcode.ParseSymbology(sym.String())
		require.True(t, ok)
		assert.Equal(t, sym, parsed)
	}
	assert.Equal(t, "unknown", barcode.SymbologyUnknown.String())
}
