// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package iconset generates macOS iconsets.

An iconset is a directory of PNG images at the standard icon sizes, each at
1x and 2x scale:

	icon_16x16.png        16
	icon_16x16@2x.png     32
	icon_32x32.png        32
	icon_32x32@2x.png     64
	icon_128x128.png      128
	icon_128x128@2x.png   256
	icon_256x256.png      256
	icon_256x256@2x.png   512
	icon_512x512.png      512
	icon_512x512@2x.png   1024

Such a directory can be turned into an .icns file with iconutil(1), or
directly with [WriteICNS].
*/
package iconset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"go.astrophena.name/mkiconset/internal/logger"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Possible errors, used in tests.
var (
	errNoSource      = errors.New("no source image")
	errUnknownFilter = errors.New("unknown resampling filter")
)

// Entry is one image of an iconset.
type Entry struct {
	// Size is the edge length of the square image, in pixels.
	Size int
	// Name is the file name inside the iconset directory.
	Name string
}

// Sizes is the list of images that make up an iconset.
var Sizes = []Entry{
	{16, "icon_16x16.png"},
	{32, "icon_16x16@2x.png"},
	{32, "icon_32x32.png"},
	{64, "icon_32x32@2x.png"},
	{128, "icon_128x128.png"},
	{256, "icon_128x128@2x.png"},
	{256, "icon_256x256.png"},
	{512, "icon_256x256@2x.png"},
	{512, "icon_512x512.png"},
	{1024, "icon_512x512@2x.png"},
}

// Filters maps filter names accepted by [ParseFilter] to resampling filters.
// Only filters that give good results when upscaling are listed.
var Filters = map[string]imaging.ResampleFilter{
	"lanczos":           imaging.Lanczos,
	"catmullrom":        imaging.CatmullRom,
	"mitchellnetravali": imaging.MitchellNetravali,
}

// ParseFilter returns the resampling filter with the given name.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	f, ok := Filters[strings.ToLower(name)]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("%w: %q", errUnknownFilter, name)
	}
	return f, nil
}

// Config represents an iconset generation configuration.
type Config struct {
	// Src is the path to the source image.
	Src string
	// Dst is the iconset directory. If empty, uses "icon.iconset" in the
	// temporary directory.
	Dst string
	// Filter is the resampling filter. If zero, uses Lanczos. Since
	// imaging.NearestNeighbor is the zero filter, it can't be selected.
	Filter imaging.ResampleFilter
	// Jobs is how many images are resized at once. If less than one, images
	// are resized one by one in the table order.
	Jobs int
	// ICNS is the path of the .icns file to write after generating the
	// iconset. If empty, no .icns file is written.
	ICNS string
	// Logf is used for progress messages. If nil, messages are discarded.
	Logf logger.Logf
}

func (c *Config) setDefaults() {
	if c.Dst == "" {
		c.Dst = filepath.Join(os.TempDir(), "icon.iconset")
	}
	if c.Filter.Support == 0 {
		c.Filter = imaging.Lanczos
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	if c.Logf == nil {
		c.Logf = logger.Discard
	}
}

// Generate generates an iconset based on the provided [Config].
//
// Nothing is written if the source image can't be loaded. Otherwise files are
// written one at a time and are left in place if a later one fails.
func Generate(ctx context.Context, c *Config) error {
	if c.Src == "" {
		return errNoSource
	}
	c.setDefaults()

	src, err := Load(c.Src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dst, 0o755); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)
	for _, e := range Sizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return writeEntry(src, c.Dst, e, c.Filter)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if c.ICNS != "" {
		largest := Sizes[len(Sizes)-1]
		img, err := Load(filepath.Join(c.Dst, largest.Name))
		if err != nil {
			return err
		}
		if err := WriteICNS(c.ICNS, img); err != nil {
			return err
		}
		c.Logf("Created %s", c.ICNS)
	}

	c.Logf("Created iconset at %s", c.Dst)
	return nil
}

func writeEntry(src image.Image, dir string, e Entry, filter imaging.ResampleFilter) error {
	dst := imaging.Resize(src, e.Size, e.Size, filter)
	if err := imaging.Save(dst, filepath.Join(dir, e.Name)); err != nil {
		return fmt.Errorf("writing %s: %w", e.Name, err)
	}
	return nil
}
