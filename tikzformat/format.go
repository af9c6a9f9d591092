// Package tikzformat writes and reads the tikzit subset of TikZ: one node per
// line in a nodelayer, one straight edge per line in an edgelayer.
package tikzformat

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzstyle"
)

func Format(doc *tikzgraph.Document) string {
	var p printer
	p.picture(doc)
	return p.sb.String()
}

// Standalone wraps Format in a LaTeX document that compiles on its own, with
// the document's styles in the preamble.
func Standalone(doc *tikzgraph.Document) string {
	var p printer
	p.line(`\documentclass[tikz]{standalone}`)
	p.line(`\usetikzlibrary{arrows.meta,shapes.geometric}`)
	p.line(`\pgfdeclarelayer{edgelayer}`)
	p.line(`\pgfdeclarelayer{nodelayer}`)
	p.line(`\pgfsetlayers{edgelayer,nodelayer,main}`)
	if _, ok := doc.Styles().Get(tikzstyle.None); !ok {
		p.line(`\tikzstyle{none}=[inner sep=0mm]`)
	}
	p.sb.WriteString(doc.Styles().Format())
	p.line(`\begin{document}`)
	p.picture(doc)
	p.line(`\end{document}`)
	return p.sb.String()
}

type printer struct {
	sb        strings.Builder
	indentStr string
}

func (p *printer) indent() {
	p.indentStr += "\t"
}

func (p *printer) deindent() {
	p.indentStr = p.indentStr[:len(p.indentStr)-1]
}

func (p *printer) line(s string) {
	p.sb.WriteString(p.indentStr)
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

func (p *printer) picture(doc *tikzgraph.Document) {
	p.line(`\begin{tikzpicture}`)
	p.indent()

	p.line(`\begin{pgfonlayer}{nodelayer}`)
	p.indent()
	for _, n := range doc.Nodes() {
		p.node(n)
	}
	p.deindent()
	p.line(`\end{pgfonlayer}`)

	p.line(`\begin{pgfonlayer}{edgelayer}`)
	p.indent()
	for _, e := range doc.Edges() {
		p.edge(e)
	}
	p.deindent()
	p.line(`\end{pgfonlayer}`)

	p.deindent()
	p.line(`\end{tikzpicture}`)
}

func (p *printer) node(n *tikzgraph.Node) {
	style := n.Style()
	if style == "" {
		style = tikzstyle.None
	}
	p.line(fmt.Sprintf(`\node [style=%s] (%d) at %s {%s};`, style, n.ID(), n.Pos().TikZ(), n.Text()))
}

func (p *printer) edge(e *tikzgraph.Edge) {
	start, ok1 := e.Start()
	end, ok2 := e.End()
	if !ok1 || !ok2 {
		p.line(fmt.Sprintf(`%% dangling edge %d`, e.ID()))
		return
	}
	var opts string
	if e.Style() != "" && e.Style() != tikzstyle.None {
		opts = fmt.Sprintf(" [style=%s]", e.Style())
	}
	p.line(fmt.Sprintf(`\draw%s (%d) to (%d);`, opts, start, end))
}
