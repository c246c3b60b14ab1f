package domain

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"regexp"

	_ "golang.org/x/image/webp"
)

// dataURIPrefix matches the header browsers emit for FileReader.readAsDataURL
// on images. Anything else is treated as bare base64.
var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

type ImageFormat string

const (
	FormatJPEG    ImageFormat = "jpeg"
	FormatPNG     ImageFormat = "png"
	FormatGIF     ImageFormat = "gif"
	FormatWEBP    ImageFormat = "webp"
	FormatUnknown ImageFormat = "unknown"
)

// Photo is the binary form of the uploaded data URI.
type Photo struct {
	data   []byte
	format ImageFormat
}

// DecodeDataURI strips an image data URI header and decodes the payload.
func DecodeDataURI(uri string) (Photo, error) {
	payload := dataURIPrefix.ReplaceAllString(uri, "")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		var rawErr error
		data, rawErr = base64.RawStdEncoding.DecodeString(payload)
		if rawErr != nil {
			return Photo{}, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
		}
	}

	return Photo{data: data, format: detectFormat(data)}, nil
}

func (p Photo) Data() []byte {
	return p.data
}

func (p Photo) Format() ImageFormat {
	return p.format
}

func (p Photo) Size() int {
	return len(p.data)
}

// EncodePNGDataURI wraps base64 PNG data returned by the provider.
func EncodePNGDataURI(b64 string) OutfitImage {
	return OutfitImage("data:image/png;base64," + b64)
}

func detectFormat(data []byte) ImageFormat {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return FormatUnknown
	}

	switch format {
	case "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	case "gif":
		return FormatGIF
	case "webp":
		return FormatWEBP
	default:
		return FormatUnknown
	}
}
