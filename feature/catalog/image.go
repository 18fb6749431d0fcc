package catalog

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"
)

// maxImageWidth bounds stored recipe photos; anything wider is downscaled
// before being embedded so the recipe collection stays small enough for a
// single-document persistence model.
const maxImageWidth = 600

// NormalizeImage decodes an uploaded photo, downscales it to at most
// maxImageWidth (preserving aspect ratio), and re-encodes it as a JPEG
// data URI ready to embed on a recipe.
func NormalizeImage(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
