// Package attachment models the single image staged for the next outgoing
// message. An Attachment is one value carrying the raw image bytes; the
// transport form (raw base64, no data-URL prefix) and the display form are
// accessors over that one value, so the two representations can never drift
// apart or be cleared independently.
package attachment

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	saperrors "github.com/nepalflora/sap/internal/errors"
)

// Attachment is an image staged for sending. Immutable after construction.
type Attachment struct {
	data      []byte
	mediaType string
	name      string
	width     int // 0 when unknown
	height    int // 0 when unknown
}

// New creates an Attachment from raw image bytes. The media type must begin
// with "image/"; anything else is rejected. The bytes are not decoded, so a
// corrupt file that still declares an image type passes through (the backend
// reports the decode failure).
func New(data []byte, mediaType, name string) (*Attachment, error) {
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, saperrors.NotAnImage(name)
	}
	return &Attachment{
		data:      data,
		mediaType: mediaType,
		name:      name,
	}, nil
}

// FromClipboard creates an Attachment from clipboard image data. The
// clipboard reader re-encodes to PNG and knows the pixel dimensions.
func FromClipboard(data []byte, width, height int) *Attachment {
	return &Attachment{
		data:      data,
		mediaType: "image/png",
		name:      "clipboard",
		width:     width,
		height:    height,
	}
}

// FromFile reads the file at path and creates an Attachment from it. The
// media type is sniffed from the file's magic bytes, falling back to the
// extension when the content is not recognized.
func FromFile(path string) (*Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, saperrors.ImageReadFailed(path, err)
	}

	name := filepath.Base(path)
	mediaType := sniffMediaType(data, path)
	return New(data, mediaType, name)
}

// sniffMediaType determines a media type from magic bytes, then from the
// file extension. Returns "" when neither yields one.
func sniffMediaType(data []byte, path string) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		// Strip any parameters, e.g. "text/html; charset=utf-8"
		if idx := strings.Index(byExt, ";"); idx >= 0 {
			byExt = byExt[:idx]
		}
		return strings.TrimSpace(byExt)
	}
	return ""
}

// Base64 returns the transport representation: standard base64 of the raw
// bytes, with no data-URL prefix.
func (a *Attachment) Base64() string {
	return base64.StdEncoding.EncodeToString(a.data)
}

// Preview returns the display representation shown in the transcript and the
// composer, e.g. "[Image: leaf.jpg (184KB, 1024x768)]".
func (a *Attachment) Preview() string {
	if a.width > 0 && a.height > 0 {
		return fmt.Sprintf("[Image: %s (%dKB, %dx%d)]", a.name, a.SizeKB(), a.width, a.height)
	}
	return fmt.Sprintf("[Image: %s (%dKB)]", a.name, a.SizeKB())
}

// MediaType returns the attachment's MIME type (always "image/...").
func (a *Attachment) MediaType() string {
	return a.mediaType
}

// Name returns the display name of the attachment source.
func (a *Attachment) Name() string {
	return a.name
}

// Size returns the raw size in bytes.
func (a *Attachment) Size() int {
	return len(a.data)
}

// SizeKB returns the raw size in kilobytes.
func (a *Attachment) SizeKB() int {
	return len(a.data) / 1024
}
