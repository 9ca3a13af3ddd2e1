// Package contenthash derives the dedup key and intrinsic pixel
// dimensions for uploaded media.
package contenthash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Sum returns the hex sha256 digest of the file bytes. The digest
// depends on content only, never on filename, MIME type or upload time.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ImageDimensions decodes just enough of the image header to report
// intrinsic pixel dimensions. Non-image or undecodable input yields an
// error; callers treat that as "dimensions unknown", not as fatal.
func ImageDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
