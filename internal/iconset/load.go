// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Register additional decoders for image.Decode.
	_ "github.com/jackmordaunt/icns/v3"
	_ "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load reads and decodes the image at path.
//
// Besides PNG, JPEG and GIF it understands BMP, TIFF, WebP, ICO and ICNS. For
// ICO and ICNS files the largest image is used. JPEG images are rotated
// according to their EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return img, nil
}
