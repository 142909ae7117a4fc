package services

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImagingForTest(t *testing.T) *ImagingService {
	t.Helper()
	return &ImagingService{
		storageDir: t.TempDir(),
		log:        logger.New("imagingService"),
	}
}

func encodeJPEG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return &buf
}

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessAndStore(t *testing.T) {
	t.Run("stores a JPEG under the session directory", func(t *testing.T) {
		service := newImagingForTest(t)
		sessionID := uuid.New()

		path, err := service.ProcessAndStore(encodeJPEG(t, 640, 480), sessionID)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, sessionID.String()))
		assert.True(t, strings.HasSuffix(path, ".jpg"))

		_, statErr := os.Stat(filepath.Join(service.storageDir, path))
		assert.NoError(t, statErr)
	})

	t.Run("accepts PNG and re-encodes as JPEG", func(t *testing.T) {
		service := newImagingForTest(t)

		path, err := service.ProcessAndStore(encodePNG(t, 100, 100), uuid.New())

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, ".jpg"))
	})

	t.Run("downscales oversized images", func(t *testing.T) {
		service := newImagingForTest(t)
		sessionID := uuid.New()

		path, err := service.ProcessAndStore(encodeJPEG(t, MaxPhotoDimension*2, MaxPhotoDimension), sessionID)
		require.NoError(t, err)

		file, err := os.Open(filepath.Join(service.storageDir, path))
		require.NoError(t, err)
		defer file.Close()

		stored, _, err := image.Decode(file)
		require.NoError(t, err)
		assert.Equal(t, MaxPhotoDimension, stored.Bounds().Dx())
		assert.Equal(t, MaxPhotoDimension/2, stored.Bounds().Dy())
	})

	t.Run("rejects non-image payloads", func(t *testing.T) {
		service := newImagingForTest(t)

		_, err := service.ProcessAndStore(strings.NewReader("not an image at all"), uuid.New())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported image format")
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes a stored photo", func(t *testing.T) {
		service := newImagingForTest(t)
		sessionID := uuid.New()

		path, err := service.ProcessAndStore(encodeJPEG(t, 10, 10), sessionID)
		require.NoError(t, err)

		assert.NoError(t, service.Remove(path))

		_, statErr := os.Stat(filepath.Join(service.storageDir, path))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		service := newImagingForTest(t)
		assert.NoError(t, service.Remove("nope/missing.jpg"))
	})
}

func TestDownscale(t *testing.T) {
	t.Run("keeps small images untouched", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 200, 100))
		result := downscale(img, MaxPhotoDimension)
		assert.Equal(t, img.Bounds(), result.Bounds())
	})

	t.Run("preserves aspect ratio for tall images", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 500, 2000))
		result := downscale(img, 1000)
		assert.Equal(t, 250, result.Bounds().Dx())
		assert.Equal(t, 1000, result.Bounds().Dy())
	})
}
