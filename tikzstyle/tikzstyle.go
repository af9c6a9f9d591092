// Package tikzstyle holds named TikZ styles. A Registry is constructed
// explicitly and handed to each document; there is no process-wide registry.
package tikzstyle

import (
	"fmt"
	"sort"
	"strings"
)

// None is the style name of elements drawn with TikZ defaults.
const None = "none"

// Prop is one key=value entry of a style. Flags such as "dashed" or "->" have
// an empty Value.
type Prop struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

func (p Prop) String() string {
	if p.Value == "" {
		return p.Key
	}
	return p.Key + "=" + p.Value
}

type Style struct {
	Name  string `json:"name"`
	Props []Prop `json:"props"`
}

// Get returns the value of the last prop with key, as TikZ lets later keys
// override earlier ones.
func (s Style) Get(key string) (string, bool) {
	for i := len(s.Props) - 1; i >= 0; i-- {
		if s.Props[i].Key == key {
			return s.Props[i].Value, true
		}
	}
	return "", false
}

// String formats the props as a TikZ option list without brackets.
func (s Style) String() string {
	strs := make([]string, 0, len(s.Props))
	for _, p := range s.Props {
		strs = append(strs, p.String())
	}
	return strings.Join(strs, ", ")
}

// Registry is an ordered set of styles keyed by name.
type Registry struct {
	styles map[string]*Style
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		styles: make(map[string]*Style),
	}
}

// Add inserts s, replacing any style of the same name in place.
func (r *Registry) Add(s Style) error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if _, ok := r.styles[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	props := make([]Prop, len(s.Props))
	copy(props, s.Props)
	r.styles[s.Name] = &Style{Name: s.Name, Props: props}
	return nil
}

func (r *Registry) Get(name string) (Style, bool) {
	s, ok := r.styles[name]
	if !ok {
		return Style{}, false
	}
	return *s, true
}

func (r *Registry) Remove(name string) bool {
	if _, ok := r.styles[name]; !ok {
		return false
	}
	delete(r.styles, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Names returns style names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SortedNames returns style names alphabetically, for listings.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Merge adds every style of other, replacing same-named styles in r.
func (r *Registry) Merge(other *Registry) {
	for _, name := range other.order {
		// Names in other were validated on Add.
		_ = r.Add(*other.styles[name])
	}
}

// ValidateName rejects names TikZ cannot carry inside \tikzstyle{...}.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("style name must not be empty")
	}
	if name == None {
		return fmt.Errorf("style name %q is reserved", None)
	}
	if strings.ContainsAny(name, "{}[]=,") {
		return fmt.Errorf("style name %q contains a reserved character", name)
	}
	return nil
}
