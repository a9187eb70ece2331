package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError reports a payload that could not be turned into a raster
// image. It is a client input fault, never fatal to the service.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode image: " + e.Reason
	}
	return fmt.Sprintf("decode image: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode turns a base64 payload into a raster image and its pixel
// dimensions. Browser clients send canvas data URLs, so an optional
// "data:image/...;base64," prefix is stripped first.
func Decode(encoded string) (image.Image, int, int, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, "base64,"); i >= 0 {
			payload = payload[i+len("base64,"):]
		}
	}
	if payload == "" {
		return nil, 0, 0, &DecodeError{Reason: "empty payload"}
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, 0, 0, &DecodeError{Reason: "invalid base64", Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, &DecodeError{Reason: "unsupported image format", Err: err}
	}

	bounds := img.Bounds()
	return img, bounds.Dx(), bounds.Dy(), nil
}
