package tikzcli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzformat"
	"oss.terrastruct.com/tikzed/tikzrenderers/tikzpreview"
	"oss.terrastruct.com/tikzed/tikzstyle"
)

func previewCmd(ctx context.Context, ms *xmain.State, f *flags, args []string) (err error) {
	defer xdefer.Errorf(&err, "failed to preview")

	if len(args) == 0 {
		return xmain.UsageErrorf("preview must be passed an input file")
	}
	if len(args) > 2 {
		return xmain.UsageErrorf("too many arguments passed")
	}
	if *f.dpi <= 0 || *f.hidpi <= 0 {
		return xmain.UsageErrorf("--dpi and --hidpi must be positive")
	}
	inputPath := args[0]
	if inputPath == "-" {
		return xmain.UsageErrorf("preview cannot read from stdin")
	}
	outputPath := renameExt(inputPath, ".png")
	if len(args) == 2 {
		outputPath = args[1]
	}
	if outputPath == "-" {
		return xmain.UsageErrorf("preview cannot write to stdout")
	}

	styles, err := loadStyles(ms, *f.styles)
	if err != nil {
		return err
	}
	r, err := tikzpreview.Find(ctx, *f.latex, *f.pdftoppm)
	if err != nil {
		return err
	}
	workDir, err := os.MkdirTemp("", "tikzed-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	pj := &previewJob{
		ms:         ms,
		r:          r,
		styles:     styles,
		inputPath:  inputPath,
		outputPath: outputPath,
		workDir:    workDir,
		lowDPI:     int(*f.dpi),
		highDPI:    int(*f.hidpi),
	}

	if *f.watch {
		w, err := newWatcher(ctx, ms, pj)
		if err != nil {
			return err
		}
		return w.run()
	}

	texPath, err := pj.prepare()
	if err != nil {
		return err
	}
	p, err := r.Render(ctx, texPath, pj.lowDPI, pj.highDPI)
	if err != nil {
		return err
	}
	return pj.write(p)
}

type previewJob struct {
	ms         *xmain.State
	r          *tikzpreview.Renderer
	styles     *tikzstyle.Registry
	inputPath  string
	outputPath string
	workDir    string
	lowDPI     int
	highDPI    int
}

// prepare returns a compilable .tex for the input. A .tex input is used as
// is; anything else is parsed as a picture and wrapped in a standalone
// document.
func (pj *previewJob) prepare() (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to prepare %s", pj.inputPath)

	if strings.EqualFold(filepath.Ext(pj.inputPath), ".tex") {
		return pj.inputPath, nil
	}
	input, err := pj.ms.ReadPath(pj.inputPath)
	if err != nil {
		return "", err
	}
	doc, err := tikzformat.Parse(bytes.NewReader(input), pj.styles)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(pj.inputPath), filepath.Ext(pj.inputPath))
	texPath := filepath.Join(pj.workDir, base+".tex")
	if err := os.WriteFile(texPath, []byte(tikzformat.Standalone(doc)), 0600); err != nil {
		return "", err
	}
	return texPath, nil
}

func (pj *previewJob) hiDPIPath() string {
	ext := filepath.Ext(pj.outputPath)
	return strings.TrimSuffix(pj.outputPath, ext) + "@2x" + ext
}

func (pj *previewJob) write(p *tikzpreview.Preview) error {
	if err := pj.ms.WritePath(pj.outputPath, p.Low); err != nil {
		return err
	}
	if err := pj.ms.WritePath(pj.hiDPIPath(), p.High); err != nil {
		return err
	}
	pj.ms.Log.Success.Printf("rendered %s to %s", pj.ms.HumanPath(pj.inputPath), pj.ms.HumanPath(pj.outputPath))
	return nil
}
