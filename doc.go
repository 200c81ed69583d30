// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Mkiconset generates a macOS iconset from a single image.

# Usage

	$ mkiconset [flags] <source image>

Mkiconset resizes the source image to every size of a macOS iconset (16, 32,
128, 256 and 512 pixels, each at 1x and 2x scale) and writes them as PNG
files into the output directory, creating it if needed. Sources smaller than
1024×1024 are upscaled. PNG, JPEG, GIF, BMP, TIFF, WebP, ICO and ICNS sources
are supported.

The result can be turned into an .icns file with iconutil:

	$ iconutil -c icns icon.iconset

or by mkiconset itself with the -icns flag.

With -watch, mkiconset keeps running and regenerates the iconset each time
the source image changes.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
