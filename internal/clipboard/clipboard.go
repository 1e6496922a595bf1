// Package clipboard provides image and text reading from the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.design/x/clipboard"

	"github.com/nepalflora/sap/internal/logger"
)

// ImageData is a decoded clipboard image, re-encoded to PNG for a consistent
// wire format regardless of what the source application put on the clipboard.
type ImageData struct {
	Data   []byte // PNG encoded image data
	Width  int
	Height int
}

// initialized tracks whether the clipboard has been initialized
var initialized bool

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.Debug("Clipboard: failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	logger.Debug("Clipboard: initialized")
	return nil
}

// ReadImage attempts to read an image from the clipboard.
// Returns nil if the clipboard doesn't contain an image.
func ReadImage() (*ImageData, error) {
	if !initialized {
		if err := Init(); err != nil {
			return nil, err
		}
	}

	imgBytes := clipboard.Read(clipboard.FmtImage)
	if len(imgBytes) == 0 {
		logger.Debug("Clipboard: no image data found")
		return nil, nil // No image in clipboard, not an error
	}

	logger.Debug("Clipboard: read %d bytes of image data", len(imgBytes))

	img, format, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		logger.Debug("Clipboard: failed to decode image: %v", err)
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	logger.Debug("Clipboard: image decoded: %dx%d, format=%s", width, height, format)

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	return &ImageData{
		Data:   pngBuf.Bytes(),
		Width:  width,
		Height: height,
	}, nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	if !initialized {
		if err := Init(); err != nil {
			return "", err
		}
	}

	textBytes := clipboard.Read(clipboard.FmtText)
	if textBytes == nil {
		return "", nil
	}

	return string(textBytes), nil
}
