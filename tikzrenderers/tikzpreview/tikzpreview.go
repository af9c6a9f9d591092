// Package tikzpreview renders TikZ sources to PNG previews by running pdflatex
// and then pdftoppm once per resolution.
package tikzpreview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tikzed/lib/go2"
	"oss.terrastruct.com/tikzed/lib/log"
	"oss.terrastruct.com/tikzed/lib/syncmap"
	"oss.terrastruct.com/tikzed/lib/xexec"
)

const (
	DefaultLowDPI  = 72
	DefaultHighDPI = 144

	DefaultTimeout = time.Minute
)

// Preview is a rendered source at two resolutions.
type Preview struct {
	Path    string
	LowDPI  int
	HighDPI int
	// Low and High are PNG bytes.
	Low  []byte
	High []byte
}

// Renderer runs the external tools. Construct it with New or Find.
type Renderer struct {
	LatexPath    string
	PdftoppmPath string
	// WorkDir receives build output. Empty means a temporary directory per
	// render, removed afterwards.
	WorkDir string
	// Timeout bounds each render. TIKZED_TIMEOUT overrides it.
	Timeout time.Duration

	jobs syncmap.SyncMap[string, *job]
	wg   sync.WaitGroup
}

type job struct {
	cancel context.CancelFunc
}

func New(latexPath, pdftoppmPath string) *Renderer {
	return &Renderer{
		LatexPath:    latexPath,
		PdftoppmPath: pdftoppmPath,
		Timeout:      DefaultTimeout,
		jobs:         syncmap.New[string, *job](),
	}
}

// Find locates pdflatex and pdftoppm in PATH. Non-empty arguments are tried
// first.
func Find(ctx context.Context, latexPath, pdftoppmPath string) (_ *Renderer, err error) {
	defer xdefer.Errorf(&err, "failed to find preview executables")

	latex, err := xexec.FindFirst(latexPath, "pdflatex")
	if err != nil {
		return nil, fmt.Errorf("pdflatex: %w", err)
	}
	pdftoppm, err := xexec.FindFirst(pdftoppmPath, "pdftoppm")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w", err)
	}
	log.Debug(ctx, "found preview executables", slog.F("pdflatex", latex), slog.F("pdftoppm", pdftoppm))
	return New(latex, pdftoppm), nil
}

// Render typesets texPath and rasterizes the first page at both resolutions.
func (r *Renderer) Render(ctx context.Context, texPath string, lowDPI, highDPI int) (_ *Preview, err error) {
	defer xdefer.Errorf(&err, "failed to render %s", texPath)

	ctx, cancel := log.WithTimeout(ctx, r.Timeout)
	defer cancel()

	absPath, err := filepath.Abs(texPath)
	if err != nil {
		return nil, err
	}
	dir := r.WorkDir
	if dir == "" {
		dir, err = os.MkdirTemp("", "tikzpreview-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
	}

	start := time.Now()
	_, err = r.run(ctx, dir, r.LatexPath,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory="+dir,
		absPath,
	)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	pdfPath := filepath.Join(dir, base+".pdf")

	p := &Preview{
		Path:    texPath,
		LowDPI:  lowDPI,
		HighDPI: highDPI,
	}
	p.Low, err = r.rasterize(ctx, dir, pdfPath, base, lowDPI)
	if err != nil {
		return nil, err
	}
	p.High, err = r.rasterize(ctx, dir, pdfPath, base, highDPI)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "rendered preview", slog.F("path", texPath), slog.F("elapsed", time.Since(start)))
	return p, nil
}

func (r *Renderer) rasterize(ctx context.Context, dir, pdfPath, base string, dpi int) ([]byte, error) {
	prefix := filepath.Join(dir, base+"-"+strconv.Itoa(dpi))
	_, err := r.run(ctx, dir, r.PdftoppmPath,
		"-png",
		"-r", strconv.Itoa(dpi),
		"-singlefile",
		pdfPath,
		prefix,
	)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(prefix + ".png")
}

func (r *Renderer) run(ctx context.Context, dir, path string, args ...string) (_ []byte, err error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	defer xdefer.Errorf(&err, "failed to run %v", cmd.Args)

	log.Debug(ctx, "running", slog.F("args", cmd.Args))
	stdout, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		ee := &exec.ExitError{}
		if errors.As(err, &ee) {
			if len(ee.Stderr) > 0 {
				return nil, fmt.Errorf("%v\nstderr:\n%s", ee, ee.Stderr)
			}
			// pdflatex reports errors on stdout.
			if len(stdout) > 0 {
				return nil, fmt.Errorf("%v\nstdout:\n%s", ee, tail(stdout, 20))
			}
		}
		return nil, err
	}
	return stdout, nil
}

// RenderAsync renders in the background and calls done exactly once, with nil
// if the render failed or was superseded. Starting another render of the same
// path cancels the one in flight.
func (r *Renderer) RenderAsync(ctx context.Context, texPath string, lowDPI, highDPI int, done func(*Preview)) {
	ctx, cancel := context.WithCancel(log.Named(ctx, "preview"))
	j := &job{cancel: cancel}
	if prev, ok := r.jobs.Swap(texPath, j); ok {
		log.Debug(ctx, "superseding preview", slog.F("path", texPath))
		prev.cancel()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		p, err := r.Render(ctx, texPath, lowDPI, highDPI)
		r.jobs.DeleteFunc(texPath, func(cur *job) bool {
			return cur == j
		})
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Warn(ctx, "preview failed", slog.Error(err))
			}
			p = nil
		}
		done(p)
	}()
}

// Wait blocks until every RenderAsync callback has returned.
func (r *Renderer) Wait() {
	r.wg.Wait()
}

func tail(b []byte, n int) string {
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	return strings.Join(lines[go2.Max(len(lines)-n, 0):], "\n")
}
