package utils

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ProcessThumbnail resizes an uploaded artwork image so stored thumbnails
// stay small. Images already within bounds pass through a re-encode only.
func ProcessThumbnail(reader io.Reader, maxWidth int) ([]byte, error) {
	src, err := imaging.Decode(reader)
	if err != nil {
		return nil, err
	}

	var resized image.Image = src
	if src.Bounds().Dx() > maxWidth {
		resized = imaging.Resize(src, maxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
