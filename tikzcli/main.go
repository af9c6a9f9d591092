// Package tikzcli implements the tikzed command line.
package tikzcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cdr.dev/slog"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/tikzed/lib/log"
	"oss.terrastruct.com/tikzed/lib/version"
	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzrenderers/tikzpreview"
	"oss.terrastruct.com/tikzed/tikzstyle"
)

type flags struct {
	styles   *string
	latex    *string
	pdftoppm *string
	dpi      *int64
	hidpi    *int64
	watch    *bool
	check    *bool
	dump     *bool
	debug    *bool
	version  *bool
}

func Run(ctx context.Context, ms *xmain.State) (err error) {
	ctx = log.Stderr(ctx)
	defer log.Sync(ctx)

	var f flags
	f.styles = ms.Opts.String("TIKZED_STYLES", "styles", "s", "", "path to a .tikzstyles or .yaml style file")
	f.latex = ms.Opts.String("TIKZED_LATEX", "latex", "", "", "pdflatex executable used by preview (default: found in $PATH)")
	f.pdftoppm = ms.Opts.String("TIKZED_PDFTOPPM", "pdftoppm", "", "", "pdftoppm executable used by preview (default: found in $PATH)")
	f.dpi, err = ms.Opts.Int64("TIKZED_DPI", "dpi", "", tikzpreview.DefaultLowDPI, "resolution of the preview image")
	if err != nil {
		return err
	}
	f.hidpi, err = ms.Opts.Int64("TIKZED_HIDPI", "hidpi", "", tikzpreview.DefaultHighDPI, "resolution of the high DPI preview image, written next to it with an @2x suffix")
	if err != nil {
		return err
	}
	f.watch, err = ms.Opts.Bool("TIKZED_WATCH", "watch", "w", false, "preview: re-render whenever the input changes")
	if err != nil {
		return err
	}
	f.check, err = ms.Opts.Bool("TIKZED_CHECK", "check", "", false, "fmt: check that the files are formatted without rewriting them")
	if err != nil {
		return err
	}
	f.dump, err = ms.Opts.Bool("", "dump", "", false, "apply: print the document serialization as JSON to stdout")
	if err != nil {
		return err
	}
	f.debug, err = ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs")
	if err != nil {
		ms.Log.Warn.Printf("Invalid DEBUG flag value ignored")
		f.debug = new(bool)
	}
	f.version, err = ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if *f.debug {
		ctx = log.Leveled(ctx, slog.LevelDebug)
		ms.Env.Setenv("DEBUG", "1")
	}

	args := ms.Opts.Flags.Args()
	if len(args) == 0 {
		if *f.version {
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
		help(ms)
		return nil
	}

	switch args[0] {
	case "apply":
		return applyCmd(ctx, ms, &f, args[1:])
	case "fmt":
		return fmtCmd(ctx, ms, &f, args[1:])
	case "preview":
		return previewCmd(ctx, ms, &f, args[1:])
	case "styles":
		return stylesCmd(ctx, ms, &f, args[1:])
	case "help":
		help(ms)
		return nil
	case "version":
		if len(args) > 1 {
			return xmain.UsageErrorf("version subcommand accepts no arguments")
		}
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	default:
		return xmain.UsageErrorf("unknown subcommand %q", args[0])
	}
}

// loadStyles reads a style registry from a .tikzstyles or YAML file. An empty
// path yields an empty registry.
func loadStyles(ms *xmain.State, path string) (*tikzstyle.Registry, error) {
	if path == "" {
		return tikzstyle.NewRegistry(), nil
	}
	b, err := ms.ReadPath(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return tikzstyle.LoadYAML(bytes.NewReader(b))
	default:
		return tikzstyle.ParseTikzStyles(bytes.NewReader(b))
	}
}

func renameExt(fp string, newExt string) string {
	if fp == "-" {
		return fp
	}
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}
