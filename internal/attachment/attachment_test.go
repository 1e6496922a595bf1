package attachment

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	saperrors "github.com/nepalflora/sap/internal/errors"
)

// pngBytes encodes a small image so tests exercise real PNG magic bytes.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		wantErr   bool
	}{
		{"png accepted", "image/png", false},
		{"jpeg accepted", "image/jpeg", false},
		{"webp accepted", "image/webp", false},
		{"text rejected", "text/plain", true},
		{"pdf rejected", "application/pdf", true},
		{"empty rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att, err := New([]byte{1, 2, 3}, tt.mediaType, "x")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%q) succeeded, want error", tt.mediaType)
				}
				if !saperrors.Is(err, saperrors.KindImage) {
					t.Errorf("error kind = %v, want KindImage", saperrors.GetKind(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tt.mediaType, err)
			}
			if att.MediaType() != tt.mediaType {
				t.Errorf("MediaType() = %q, want %q", att.MediaType(), tt.mediaType)
			}
		})
	}
}

func TestBase64_NoDataURLPrefix(t *testing.T) {
	data := pngBytes(t)
	att := FromClipboard(data, 2, 2)

	encoded := att.Base64()
	if strings.HasPrefix(encoded, "data:") {
		t.Error("Base64() must not carry a data-URL prefix")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("Base64() output is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("Base64() does not round-trip the raw bytes")
	}
}

func TestFromFile_SniffsPNG(t *testing.T) {
	// Deliberately misleading extension: magic bytes win
	path := filepath.Join(t.TempDir(), "photo.dat")
	if err := os.WriteFile(path, pngBytes(t), 0644); err != nil {
		t.Fatal(err)
	}

	att, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() failed: %v", err)
	}
	if att.MediaType() != "image/png" {
		t.Errorf("MediaType() = %q, want %q", att.MediaType(), "image/png")
	}
	if att.Name() != "photo.dat" {
		t.Errorf("Name() = %q, want %q", att.Name(), "photo.dat")
	}
}

func TestFromFile_ExtensionFallback(t *testing.T) {
	// Content the sniffer doesn't recognize, but an image extension
	path := filepath.Join(t.TempDir(), "tiny.png")
	if err := os.WriteFile(path, []byte{0, 1}, 0644); err != nil {
		t.Fatal(err)
	}

	att, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() failed: %v", err)
	}
	if att.MediaType() != "image/png" {
		t.Errorf("MediaType() = %q, want %q", att.MediaType(), "image/png")
	}
}

func TestFromFile_RejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := FromFile(path)
	if err == nil {
		t.Fatal("FromFile() accepted a text file")
	}
	if !saperrors.Is(err, saperrors.KindImage) {
		t.Errorf("error kind = %v, want KindImage", saperrors.GetKind(err))
	}
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("FromFile() succeeded for a missing file")
	}
	if !saperrors.Is(err, saperrors.KindIO) {
		t.Errorf("error kind = %v, want KindIO", saperrors.GetKind(err))
	}
}

func TestPreview(t *testing.T) {
	withDims := FromClipboard(make([]byte, 2048), 640, 480)
	got := withDims.Preview()
	if !strings.Contains(got, "clipboard") || !strings.Contains(got, "2KB") || !strings.Contains(got, "640x480") {
		t.Errorf("Preview() = %q, want name, size and dimensions", got)
	}

	noDims, err := New(make([]byte, 4096), "image/jpeg", "leaf.jpg")
	if err != nil {
		t.Fatal(err)
	}
	got = noDims.Preview()
	if !strings.Contains(got, "leaf.jpg") || !strings.Contains(got, "4KB") {
		t.Errorf("Preview() = %q, want name and size", got)
	}
	if strings.Contains(got, "0x0") {
		t.Errorf("Preview() = %q, must not show unknown dimensions", got)
	}
}
