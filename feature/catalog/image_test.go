package catalog

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func decodeDataURI(payload string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(raw))
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	err := imaging.Encode(&buf, img, imaging.PNG)
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestNormalizeImage(t *testing.T) {
	t.Run("SmallImageKeptAsIs", func(t *testing.T) {
		uri, err := NormalizeImage(encodePNG(t, 100, 80))
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	})

	t.Run("WideImageDownscaled", func(t *testing.T) {
		uri, err := NormalizeImage(encodePNG(t, 1200, 900))
		assert.NoError(t, err)

		// Decode the payload back and verify the width bound
		payload := strings.TrimPrefix(uri, "data:image/jpeg;base64,")
		assert.NotEqual(t, uri, payload)

		decoded, err := decodeDataURI(payload)
		assert.NoError(t, err)
		assert.Equal(t, 600, decoded.Bounds().Dx())
		assert.Equal(t, 450, decoded.Bounds().Dy())
	})

	t.Run("Undecodable", func(t *testing.T) {
		_, err := NormalizeImage([]byte("not an image"))
		assert.Error(t, err)
	})
}
