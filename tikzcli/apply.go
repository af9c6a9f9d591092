package tikzcli

import (
	"bytes"
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"
	"oss.terrastruct.com/xjson"

	"oss.terrastruct.com/tikzed/lib/log"
	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzformat"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzoracle"
)

func applyCmd(ctx context.Context, ms *xmain.State, f *flags, args []string) (err error) {
	defer xdefer.Errorf(&err, "failed to apply")

	if len(args) == 0 {
		return xmain.UsageErrorf("apply must be passed an edit script")
	}
	if len(args) > 3 {
		return xmain.UsageErrorf("too many arguments passed")
	}
	scriptPath := args[0]
	var inputPath, outputPath string
	if len(args) >= 2 {
		inputPath = args[1]
		outputPath = inputPath
	}
	if len(args) == 3 {
		outputPath = args[2]
	}
	if outputPath == "" {
		outputPath = "-"
	}

	styles, err := loadStyles(ms, *f.styles)
	if err != nil {
		return err
	}

	sb, err := ms.ReadPath(scriptPath)
	if err != nil {
		return err
	}
	script, err := tikzoracle.LoadScript(bytes.NewReader(sb))
	if err != nil {
		return err
	}

	doc := tikzgraph.NewDocument(styles)
	names := map[string]tikzgraph.ID{}
	if inputPath != "" {
		input, err := ms.ReadPath(inputPath)
		if err != nil {
			return err
		}
		pic, err := tikzformat.Decode(bytes.NewReader(input), styles)
		if err != nil {
			return err
		}
		doc, names = pic.Doc, pic.Names
	}

	a := tikzoracle.NewApplier(doc)
	for name, id := range names {
		a.Bind(name, id)
	}
	if err := a.Apply(ctx, script); err != nil {
		return err
	}
	if err := doc.Check(); err != nil {
		return err
	}
	m := doc.UndoManager()
	log.Debug(ctx, "undo stack",
		slog.F("index", m.Index()),
		slog.F("count", m.Count()),
		slog.F("undo", m.UndoText()),
		slog.F("redo", m.RedoText()),
	)

	if n := danglingEdges(doc); n > 0 {
		plural := "edge"
		if n > 1 {
			plural = "edges"
		}
		ms.Log.Warn.Printf("dropping %d %s without both endpoints from the TikZ output", n, plural)
	}

	// WritePath closes stdout so the dump must come first.
	if *f.dump {
		b := []byte(xjson.MarshalIndent(doc.Serialize()))
		if _, err := ms.Stdout.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	if err := ms.WritePath(outputPath, []byte(tikzformat.Format(doc))); err != nil {
		return err
	}
	if outputPath != "-" {
		ms.Log.Success.Printf("applied %d edits to %s", len(script.Ops), ms.HumanPath(outputPath))
	}
	return nil
}

func danglingEdges(doc *tikzgraph.Document) int {
	n := 0
	for _, e := range doc.Edges() {
		_, hasStart := e.Start()
		_, hasEnd := e.End()
		if !hasStart || !hasEnd {
			n++
		}
	}
	return n
}
