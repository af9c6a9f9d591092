package tikzstyle

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/xdefer"
)

// yamlFile is the YAML form of a style registry:
//
//	styles:
//	  - name: red node
//	    props:
//	      fill: red
//	      draw: black
//	      dashed: ""
//
// props may also be a TikZ option string ("fill=red, dashed").
type yamlFile struct {
	Styles []yamlStyle `yaml:"styles"`
}

type yamlStyle struct {
	Name  string    `yaml:"name"`
	Props yaml.Node `yaml:"props"`
}

// LoadYAML reads a registry from YAML. Mapping order is preserved.
func LoadYAML(r io.Reader) (_ *Registry, err error) {
	defer xdefer.Errorf(&err, "failed to load style YAML")

	var f yamlFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, err
	}

	reg := NewRegistry()
	for i, ys := range f.Styles {
		props, err := yamlProps(&ys.Props)
		if err != nil {
			return nil, fmt.Errorf("styles[%d] (%s): %w", i, ys.Name, err)
		}
		if err := reg.Add(Style{Name: ys.Name, Props: props}); err != nil {
			return nil, fmt.Errorf("styles[%d]: %w", i, err)
		}
	}
	return reg, nil
}

func yamlProps(n *yaml.Node) ([]Prop, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		return ParseProps(n.Value)
	case yaml.MappingNode:
		props := make([]Prop, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: prop %q must be a scalar", v.Line, k.Value)
			}
			props = append(props, Prop{Key: k.Value, Value: v.Value})
		}
		return props, nil
	default:
		return nil, fmt.Errorf("line %d: props must be a mapping or an option string", n.Line)
	}
}

// MarshalYAML writes the registry in the form LoadYAML reads.
func (r *Registry) MarshalYAML() (interface{}, error) {
	f := &yaml.Node{Kind: yaml.MappingNode}
	styles := &yaml.Node{Kind: yaml.SequenceNode}
	for _, name := range r.order {
		s := r.styles[name]
		props := &yaml.Node{Kind: yaml.MappingNode}
		for _, p := range s.Props {
			props.Content = append(props.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Key},
				&yaml.Node{Kind: yaml.ScalarNode, Value: p.Value, Style: yaml.DoubleQuotedStyle},
			)
		}
		styles.Content = append(styles.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: "name"},
				{Kind: yaml.ScalarNode, Value: s.Name},
				{Kind: yaml.ScalarNode, Value: "props"},
				props,
			},
		})
	}
	f.Content = append(f.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "styles"}, styles)
	return f, nil
}
