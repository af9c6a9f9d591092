package tikzcli

import (
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/tikzed/lib/version"
	"oss.terrastruct.com/tikzed/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s apply [--dump] script.yaml [in.tikz] [out.tikz]
  %[1]s fmt [--check] file.tikz ...
  %[1]s preview [--watch] [--dpi=72] [--hidpi=144] file.tikz [file.png]
  %[1]s styles [file.tikzstyles | file.yaml]
  %[1]s version

%[1]s edits, formats and previews TikZ pictures in the tikzit subset: nodes in a
nodelayer and straight edges in an edgelayer.

Use - to read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s apply script.yaml [in.tikz] [out.tikz] - Apply a YAML edit script through the undo stack.
    in.tikz defaults to an empty picture and out.tikz to in.tikz, or stdout without an input.
  %[1]s fmt file.tikz ... - Rewrite files in canonical form
  %[1]s preview file.tikz [file.png] - Render with pdflatex and pdftoppm to file.png and file@2x.png
  %[1]s styles [file] - List styles and how they paint, from file or --styles
`, filepath.Base(ms.Name), version.Version, ms.Opts.Defaults())
}
