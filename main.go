// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/mkiconset/internal/iconset"
)

func main() { cli.Main(new(app)) }

type app struct {
	dst    string
	icns   string
	filter string
	jobs   int
	watch  bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.dst, "o", filepath.Join(os.TempDir(), "icon.iconset"), "Write iconset to `dir`.")
	fs.StringVar(&a.icns, "icns", "", "Also pack the iconset into `file`.")
	fs.StringVar(&a.filter, "filter", "lanczos", "Resampling `filter` (lanczos, catmullrom or mitchellnetravali).")
	fs.IntVar(&a.jobs, "jobs", 1, "Resize `n` images at once.")
	fs.BoolVar(&a.watch, "watch", false, "Regenerate the iconset when the source image changes.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) != 1 {
		return fmt.Errorf("%w: want exactly one source image", cli.ErrInvalidArgs)
	}

	filter, err := iconset.ParseFilter(a.filter)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	logf := func(format string, args ...any) {
		fmt.Fprintf(env.Stdout, format+"\n", args...)
	}
	c := &iconset.Config{
		Src:    env.Args[0],
		Dst:    a.dst,
		Filter: filter,
		Jobs:   a.jobs,
		ICNS:   a.icns,
		Logf:   logf,
	}
	if a.watch {
		return iconset.Watch(ctx, c)
	}
	return iconset.Generate(ctx, c)
}
