package tikzformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/tikzed/lib/geo"
	"oss.terrastruct.com/tikzed/tikzgraph"
	"oss.terrastruct.com/tikzed/tikzstyle"
)

var (
	nodeRe = regexp.MustCompile(`^\\node\s*(?:\[([^\]]*)\])?\s*\(([^()]+)\)\s*at\s*\(\s*([^,()]+?)\s*,\s*([^,()]+?)\s*\)\s*\{((?s:.*))\}\s*;$`)
	edgeRe = regexp.MustCompile(`^\\draw\s*(?:\[([^\]]*)\])?\s*\(([^()]+)\)\s*to\s*\(([^()]*)\)\s*;$`)
	envRe  = regexp.MustCompile(`^\\(begin|end)\{(tikzpicture|pgfonlayer)\}(\{(nodelayer|edgelayer)\})?(\[[^\]]*\])?$`)
)

// Picture is a parsed document along with the names its nodes had in the
// source.
type Picture struct {
	Doc   *tikzgraph.Document
	Names map[string]tikzgraph.ID
}

// Parse reads a picture written by Format, or by tikzit, into a new Document.
// Nodes get fresh IDs in file order. Nothing is pushed onto the undo stack.
func Parse(r io.Reader, styles *tikzstyle.Registry) (*tikzgraph.Document, error) {
	pic, err := Decode(r, styles)
	if err != nil {
		return nil, err
	}
	return pic.Doc, nil
}

func Decode(r io.Reader, styles *tikzstyle.Registry) (_ *Picture, err error) {
	defer xdefer.Errorf(&err, "failed to parse tikz")

	pic := &Picture{
		Doc:   tikzgraph.NewDocument(styles),
		Names: make(map[string]tikzgraph.ID),
	}
	sc := bufio.NewScanner(r)
	var errs []string
	lineno := 0
	// A statement whose braces are still open continues on the next line,
	// as multi-line node text does.
	var stmt strings.Builder
	stmtLine := 0
	depth := 0
	for sc.Scan() {
		lineno++
		text := tikzstyle.StripComment(sc.Text())
		if stmtLine == 0 {
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
			if text == "" {
				continue
			}
			stmtLine = lineno
		} else {
			stmt.WriteByte('\n')
		}
		stmt.WriteString(text)
		depth += braceDepth(text)
		if depth > 0 {
			continue
		}
		if err := pic.statement(strings.TrimRightFunc(stmt.String(), unicode.IsSpace)); err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", stmtLine, err))
		}
		stmt.Reset()
		stmtLine = 0
		depth = 0
	}
	if stmtLine != 0 {
		errs = append(errs, fmt.Sprintf("line %d: unterminated statement", stmtLine))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, errors.New(strings.Join(errs, "\n"))
	}
	return pic, nil
}

// braceDepth is the net number of braces s opens. Escaped braces don't count.
func braceDepth(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth
}

func (pic *Picture) statement(line string) error {
	if envRe.MatchString(line) {
		return nil
	}
	if m := nodeRe.FindStringSubmatch(line); m != nil {
		return pic.node(m[1], m[2], m[3], m[4], m[5])
	}
	if m := edgeRe.FindStringSubmatch(line); m != nil {
		return pic.edge(m[1], m[2], m[3])
	}
	return fmt.Errorf("unsupported statement %q", line)
}

func (pic *Picture) node(opts, name, x, y, text string) error {
	name = strings.TrimSpace(name)
	if _, ok := pic.Names[name]; ok {
		return fmt.Errorf("duplicate node name %q", name)
	}
	style, err := styleOpt(opts)
	if err != nil {
		return err
	}
	var pos geo.Point
	if pos.X, err = strconv.ParseFloat(x, 64); err != nil {
		return fmt.Errorf("invalid x coordinate %q", x)
	}
	if pos.Y, err = strconv.ParseFloat(y, 64); err != nil {
		return fmt.Errorf("invalid y coordinate %q", y)
	}

	d := pic.Doc
	n := d.CreateNode()
	d.SetNodePos(n, pos)
	d.SetNodeText(n, text)
	if style != tikzstyle.None {
		d.SetNodeStyle(n, style)
	}
	pic.Names[name] = n.ID()
	return nil
}

func (pic *Picture) edge(opts, from, to string) error {
	style, err := styleOpt(opts)
	if err != nil {
		return err
	}
	start, err := pic.lookup(from)
	if err != nil {
		return err
	}
	end := start
	// tikzit writes self loops as (a) to ().
	if strings.TrimSpace(to) != "" {
		end, err = pic.lookup(to)
		if err != nil {
			return err
		}
	}

	d := pic.Doc
	e := d.CreateEdge()
	d.SetEdgeStart(e, start)
	d.SetEdgeEnd(e, end)
	if style != tikzstyle.None {
		d.SetEdgeStyle(e, style)
	}
	return nil
}

// lookup resolves a node reference, dropping any .anchor suffix.
func (pic *Picture) lookup(ref string) (*tikzgraph.Node, error) {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndexByte(ref, '.'); i > 0 {
		if _, ok := pic.Names[ref]; !ok {
			ref = ref[:i]
		}
	}
	id, ok := pic.Names[ref]
	if !ok {
		return nil, fmt.Errorf("undefined node %q", ref)
	}
	return pic.Doc.NodeFromID(id), nil
}

// styleOpt extracts style=name from an option list. Other options are kept
// in styles, not on nodes, so they are rejected.
func styleOpt(opts string) (string, error) {
	props, err := tikzstyle.ParseProps(opts)
	if err != nil {
		return "", err
	}
	style := tikzstyle.None
	for _, p := range props {
		if p.Key != "style" {
			return "", fmt.Errorf("unsupported option %q", p.String())
		}
		style = p.Value
	}
	return style, nil
}
