package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"roomkeeper/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// MaxPhotoDimension is the maximum width or height for stored photos.
	MaxPhotoDimension = 1024

	// PhotoJPEGQuality is the compression quality for JPEG output.
	PhotoJPEGQuality = 85
)

var allowedPhotoMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ImagingService normalizes uploaded cleaning photos: validates the real
// format by sniffing bytes, downscales oversized images, re-encodes as
// JPEG, and writes the result under the configured photo directory. The
// stored path is what the Photo model references.
type ImagingService struct {
	storageDir string
	log        logger.Logger
}

func NewImagingService(config config.Config) *ImagingService {
	return &ImagingService{
		storageDir: config.PhotoStorageDir,
		log:        logger.New("imagingService"),
	}
}

// ProcessAndStore normalizes the image and writes it to disk, returning
// the stored path relative to the storage dir.
func (s *ImagingService) ProcessAndStore(r io.Reader, sessionID uuid.UUID) (string, error) {
	log := s.log.Function("ProcessAndStore")

	data, err := s.process(r)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.storageDir, sessionID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", log.Err("failed to create photo directory", err, "dir", dir)
	}

	filename := uuid.New().String() + ".jpg"
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", log.Err("failed to write photo", err, "path", path)
	}

	return filepath.Join(sessionID.String(), filename), nil
}

// Remove deletes a previously stored photo file. Missing files are not
// an error so cleanup after a rejected upload is idempotent.
func (s *ImagingService) Remove(path string) error {
	full := filepath.Join(s.storageDir, path)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *ImagingService) process(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	// Sniff the actual MIME type from bytes, not the client headers.
	detected := http.DetectContentType(data)
	if !allowedPhotoMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, MaxPhotoDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: PhotoJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return buf.Bytes(), nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio. Returns the original when already in bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
