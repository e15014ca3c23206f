// file: internals/helpers/convert_image.go
package helper

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const maxReceiptImageWidth = 1600

// ConvertImageToWebP decodes an uploaded image (jpeg/png/webp), caps its width
// and re-encodes it as webp. Keeps receipt uploads small and uniform.
func ConvertImageToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > maxReceiptImageWidth {
		img = imaging.Resize(img, maxReceiptImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// IsSupportedImage does a cheap extension check before decoding.
func IsSupportedImage(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
