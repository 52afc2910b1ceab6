package image

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	_ "image/png"
	"regexp"
	"sync"

	"github.com/Laisky/errors/v2"
	_ "golang.org/x/image/webp"
)

// Regex to match data URL pattern
var dataURLPattern = regexp.MustCompile(`data:image/([^;]+);base64,`)

var readerPool = sync.Pool{
	New: func() any {
		return &bytes.Reader{}
	},
}

// Size returns the pixel dimensions of an encoded image without decoding the
// full pixel data.
func Size(data []byte) (width int, height int, err error) {
	reader := readerPool.Get().(*bytes.Reader)
	defer readerPool.Put(reader)
	reader.Reset(data)

	cfg, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, errors.Wrap(err, "decode image config")
	}

	return cfg.Width, cfg.Height, nil
}

// GetImageSizeFromBase64 returns the pixel dimensions of a base64 payload.
// A data URL prefix is stripped when present.
func GetImageSizeFromBase64(encoded string) (width int, height int, err error) {
	decoded, err := base64.StdEncoding.DecodeString(dataURLPattern.ReplaceAllString(encoded, ""))
	if err != nil {
		return 0, 0, errors.Wrap(err, "decode base64 image")
	}

	return Size(decoded)
}

// Decode parses an encoded image (png, jpeg, gif, or webp) into memory.
func Decode(data []byte) (image.Image, error) {
	reader := readerPool.Get().(*bytes.Reader)
	defer readerPool.Put(reader)
	reader.Reset(data)

	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	return img, nil
}

// EncodePNG serializes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}

	return buf.Bytes(), nil
}

// DetectFormat reports the image format implied by the payload's magic bytes.
func DetectFormat(data []byte) (string, error) {
	if len(data) < 8 {
		return "", errors.New("insufficient data to detect image format")
	}

	switch {
	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A:
		// PNG: complete 8-byte signature: 89 50 4E 47 0D 0A 1A 0A
		return "png", nil

	case data[0] == 0xFF && data[1] == 0xD8:
		// JPEG: starts with FF D8, third byte can vary (E0, E1, DB, etc.)
		return "jpeg", nil

	case data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x38 &&
		(data[4] == 0x37 || data[4] == 0x39) && data[5] == 0x61:
		// GIF: GIF87a or GIF89a
		return "gif", nil

	case len(data) >= 12 &&
		data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 &&
		data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50:
		// WebP: RIFF header + WEBP signature at bytes 8-11
		return "webp", nil
	}

	return "", errors.New("unsupported image format")
}
