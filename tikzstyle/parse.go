package tikzstyle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"oss.terrastruct.com/xdefer"
)

var tikzstyleRe = regexp.MustCompile(`^\\tikzstyle\{([^{}]+)\}\s*=\s*\[(.*)\]\s*$`)

// ParseTikzStyles reads \tikzstyle{name}=[props] lines. Blank lines and %
// comments are skipped.
func ParseTikzStyles(r io.Reader) (_ *Registry, err error) {
	defer xdefer.Errorf(&err, "failed to parse tikzstyles")

	reg := NewRegistry()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(StripComment(sc.Text()))
		if text == "" {
			continue
		}
		m := tikzstyleRe.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("line %d: expected \\tikzstyle{name}=[...]: %q", line, text)
		}
		props, err := ParseProps(m[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := reg.Add(Style{Name: strings.TrimSpace(m[1]), Props: props}); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return reg, nil
}

// ParseProps splits a TikZ option list on top-level commas. Braced groups
// such as label={[red]above:x} stay intact.
func ParseProps(s string) ([]Prop, error) {
	var props []Prop
	depth := 0
	start := 0
	flush := func(end int) {
		part := strings.TrimSpace(s[start:end])
		start = end + 1
		if part == "" {
			return
		}
		k, v, _ := strings.Cut(part, "=")
		props = append(props, Prop{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
	}
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced } in %q", s)
			}
		case ',':
			if depth == 0 {
				flush(i)
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced { in %q", s)
	}
	flush(len(s))
	return props, nil
}

// StripComment removes a trailing % comment, honouring \% escapes.
func StripComment(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '%' {
			return s[:i]
		}
	}
	return s
}

// Format writes every style as a \tikzstyle line in registry order.
func (r *Registry) Format() string {
	sb := &strings.Builder{}
	_ = r.WriteTikzStyles(sb)
	return sb.String()
}

func (r *Registry) WriteTikzStyles(w io.Writer) error {
	for _, name := range r.order {
		s := r.styles[name]
		if _, err := fmt.Fprintf(w, "\\tikzstyle{%s}=[%s]\n", s.Name, s.String()); err != nil {
			return err
		}
	}
	return nil
}
