package camera

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/barscan/internal/barcode"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 128

type frameResult struct {
	res barcode.Result
	err error
}

// frameDecoder decodes image frames and remembers the outcome per frame
// digest, so a camera pointed at a still scene decodes each picture once.
type frameDecoder struct {
	decoder *barcode.Decoder
	cache   *lru.Cache[[sha256.Size]byte, frameResult]
}

func newFrameDecoder(size int) (*frameDecoder, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[[sha256.Size]byte, frameResult](size)
	if err != nil {
		return nil, fmt.Errorf("frame cache: %w", err)
	}
	return &frameDecoder{decoder: barcode.NewDecoder(), cache: cache}, nil
}

func (f *frameDecoder) decodeFile(path string) (barcode.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return barcode.Result{}, fmt.Errorf("read frame %s: %w", path, err)
	}
	return f.decodeBytes(data)
}

func (f *frameDecoder) decodeBytes(data []byte) (barcode.Result, error) {
	sum := sha256.Sum256(data)
	if cached, ok := f.cache.Get(sum); ok {
		return cached.res, cached.err
	}
	res, err := f.decoder.Decode(bytes.NewReader(data))
	// Unreadable images are not cached: the file may still be being written.
	if err == nil || isNoBarcode(err) {
		f.cache.Add(sum, frameResult{res: res, err: err})
	}
	return res, err
}

func isNoBarcode(err error) bool {
	return errors.Is(err, barcode.ErrNoBarcode)
}

func isFrame(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
