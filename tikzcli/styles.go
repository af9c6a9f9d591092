package tikzcli

import (
	"context"
	"fmt"
	"strings"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzstyle"
)

func stylesCmd(ctx context.Context, ms *xmain.State, f *flags, args []string) (err error) {
	defer xdefer.Errorf(&err, "failed to list styles")

	path := *f.styles
	switch len(args) {
	case 0:
		if path == "" {
			return xmain.UsageErrorf("styles must be passed a style file or --styles")
		}
	case 1:
		path = args[0]
	default:
		return xmain.UsageErrorf("styles accepts at most one file")
	}

	reg, err := loadStyles(ms, path)
	if err != nil {
		return err
	}

	b := &strings.Builder{}
	for _, name := range reg.Names() {
		s, _ := reg.Get(name)
		p, err := s.Paint()
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "%s: %s\n  %s\n", name, s, describePaint(p))
	}
	_, err = ms.Stdout.Write([]byte(b.String()))
	return err
}

func describePaint(p tikzstyle.Paint) string {
	var parts []string
	if p.HasFill {
		parts = append(parts, "fill "+p.Fill.Hex())
	} else {
		parts = append(parts, "no fill")
	}
	if p.HasStroke {
		parts = append(parts, fmt.Sprintf("stroke %s %gpt", p.Stroke.Hex(), p.LineWidth))
	} else {
		parts = append(parts, "no stroke")
	}
	parts = append(parts, "label "+p.LabelColor().Hex())
	parts = append(parts, "selected "+p.Selected().Stroke.Hex())
	parts = append(parts, "shape "+p.Shape)
	if p.Dash != "" {
		parts = append(parts, p.Dash)
	}
	switch {
	case p.ArrowHead && p.ArrowTail:
		parts = append(parts, "<->")
	case p.ArrowHead:
		parts = append(parts, "->")
	case p.ArrowTail:
		parts = append(parts, "<-")
	}
	return strings.Join(parts, ", ")
}
