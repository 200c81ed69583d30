// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/jackmordaunt/icns/v3"
)

// WriteICNS encodes img as an Apple icon image and writes it to path, creating
// the parent directory if needed. Slots larger than img are left out, so img
// should be at least 1024×1024.
func WriteICNS(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := icns.NewEncoder(w).WithAlgorithm(icns.Lanczos3).Encode(img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
