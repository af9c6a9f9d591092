package tikzpreview_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/tikzed/lib/log"
	"oss.terrastruct.com/tikzed/tikzformat"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzrenderers/tikzpreview"
)

// fakeLatex writes a placeholder PDF next to the output directory it is given.
const fakeLatex = `#!/bin/sh
for a; do
	case "$a" in
	-output-directory=*) out="${a#-output-directory=}" ;;
	esac
	last="$a"
done
%s
base=$(basename "$last" .tex)
printf 'PDF' > "$out/$base.pdf"
`

// fakePdftoppm is called as: -png -r DPI -singlefile in.pdf prefix
const fakePdftoppm = `#!/bin/sh
printf 'PNG %s' "$3" > "$6.png"
`

func script(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(text), 0755))
	return p
}

func fakeRenderer(t *testing.T, latexPrelude string) (*tikzpreview.Renderer, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake executables are shell scripts")
	}
	dir := t.TempDir()
	r := tikzpreview.New(
		script(t, dir, "pdflatex", fmt.Sprintf(fakeLatex, latexPrelude)),
		script(t, dir, "pdftoppm", fakePdftoppm),
	)
	texPath := filepath.Join(dir, "pic.tex")
	require.NoError(t, os.WriteFile(texPath, []byte(`\documentclass{standalone}`), 0644))
	return r, texPath
}

func TestRender(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	r, texPath := fakeRenderer(t, "")

	p, err := r.Render(ctx, texPath, 72, 300)
	require.NoError(t, err)
	assert.Equal(t, texPath, p.Path)
	assert.Equal(t, "PNG 72", string(p.Low))
	assert.Equal(t, "PNG 300", string(p.High))
	assert.Equal(t, 72, p.LowDPI)
	assert.Equal(t, 300, p.HighDPI)
}

func TestRenderWorkDir(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	r, texPath := fakeRenderer(t, "")
	r.WorkDir = t.TempDir()

	_, err := r.Render(ctx, texPath, 10, 20)
	require.NoError(t, err)
	for _, name := range []string{"pic.pdf", "pic-10.png", "pic-20.png"} {
		assert.FileExists(t, filepath.Join(r.WorkDir, name))
	}
}

func TestRenderFailure(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	r, texPath := fakeRenderer(t, `echo "! Undefined control sequence."; echo boom >&2; exit 1`)

	_, err := r.Render(ctx, texPath, 72, 144)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render")
	assert.Contains(t, err.Error(), "stderr:\nboom")
}

func TestRenderAsyncFailure(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	r := tikzpreview.New(filepath.Join(t.TempDir(), "missing-pdflatex"), "pdftoppm")

	got := make(chan *tikzpreview.Preview, 1)
	r.RenderAsync(ctx, "pic.tex", 72, 144, func(p *tikzpreview.Preview) {
		got <- p
	})
	r.Wait()
	assert.Nil(t, <-got)
}

func TestRenderAsyncSupersede(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	marker := filepath.Join(t.TempDir(), "first")
	// The first invocation blocks until killed.
	r, texPath := fakeRenderer(t, fmt.Sprintf(`if [ ! -e %q ]; then touch %q; exec sleep 30; fi`, marker, marker))

	results := make(chan *tikzpreview.Preview, 2)
	r.RenderAsync(ctx, texPath, 72, 144, func(p *tikzpreview.Preview) {
		results <- p
	})
	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 10*time.Second, 10*time.Millisecond)

	r.RenderAsync(ctx, texPath, 72, 144, func(p *tikzpreview.Preview) {
		results <- p
	})
	r.Wait()
	close(results)

	var ok, failed int
	for p := range results {
		if p == nil {
			failed++
		} else {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, failed)
}

func TestRenderPdflatex(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed")
	}
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}

	ctx := log.WithTB(context.Background(), t, nil)
	r, err := tikzpreview.Find(ctx, "", "")
	require.NoError(t, err)

	d := tikzgraph.NewDocument(nil)
	n := d.CreateNode()
	d.SetNodeText(n, "$x$")
	texPath := filepath.Join(t.TempDir(), "pic.tex")
	require.NoError(t, os.WriteFile(texPath, []byte(tikzformat.Standalone(d)), 0644))

	p, err := r.Render(ctx, texPath, tikzpreview.DefaultLowDPI, tikzpreview.DefaultHighDPI)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(p.Low[:4]))
	assert.Greater(t, len(p.High), len(p.Low))
}
