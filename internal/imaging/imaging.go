package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"

	"golang.org/x/image/webp"
)

// MaxUploadSize is the largest accepted image file, in bytes.
const MaxUploadSize = 5 << 20

// ErrUnsupported marks data that is not one of the accepted image formats.
var ErrUnsupported = errors.New("unsupported image format")

// extensions maps accepted MIME types to canonical file extensions.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Detect sniffs the actual MIME type from the file's bytes (not trusting
// client headers or filename extensions) and confirms the payload parses as
// an image. Returns the detected MIME type and the canonical extension.
func Detect(data []byte) (mime, ext string, err error) {
	mime = http.DetectContentType(data)
	ext, ok := extensions[mime]
	if !ok {
		return "", "", fmt.Errorf("%w: %s (only JPEG, PNG, GIF, and WebP accepted)", ErrUnsupported, mime)
	}

	// The magic bytes alone can lie; make sure the image header decodes.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", "", fmt.Errorf("%w: decoding image header: %v", ErrUnsupported, err)
	}

	return mime, ext, nil
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
	image.RegisterFormat("gif", "GIF8?a", gif.Decode, gif.DecodeConfig)
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
}
