// Package storage persists uploaded project thumbnails.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"launchpad/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	// Decoders for the upload formats we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadBytes caps a raw thumbnail upload.
	MaxUploadBytes = 10 << 20

	thumbMaxWidth  = 1280
	thumbMaxHeight = 720
	thumbQuality   = 80
)

// ThumbnailStore normalizes uploaded images into bounded WebP thumbnails on
// local disk.
type ThumbnailStore struct {
	dir     string
	baseURL string
}

// NewThumbnailStore creates the store and its backing directory.
func NewThumbnailStore(dir, baseURL string) (*ThumbnailStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail dir: %w", err)
	}
	return &ThumbnailStore{dir: dir, baseURL: baseURL}, nil
}

// Save decodes, resizes, and re-encodes the upload, returning the public URL
// path for the stored thumbnail.
func (s *ThumbnailStore) Save(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(raw) > MaxUploadBytes {
		return "", models.NewValidationError("Thumbnail too large (max 10MB)")
	}
	if len(raw) == 0 {
		return "", models.NewValidationError("Thumbnail upload is empty")
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", models.NewValidationError("Unsupported image format")
	}

	img = resizeToFit(img, thumbMaxWidth, thumbMaxHeight)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: thumbQuality}); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.NewString() + ".webp"
	if err := os.WriteFile(filepath.Join(s.dir, name), buf.Bytes(), 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return s.baseURL + "/" + name, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
