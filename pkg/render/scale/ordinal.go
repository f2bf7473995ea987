package scale

import "slices"

// Ordinal maps string keys to colors. The i-th domain key gets the
// (i mod len(colors))-th color; keys outside the domain get the unknown
// color.
type Ordinal struct {
	domain  []string
	index   map[string]int
	colors  []string
	unknown string
}

// NewOrdinal builds a color scale. colors is sliced to len(domain) when
// longer, and cycled when shorter.
func NewOrdinal(domain, colors []string, unknown string) Ordinal {
	d := slices.Clone(domain)
	index := make(map[string]int, len(d))
	for i, k := range d {
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}
	c := slices.Clone(colors)
	if len(c) > len(d) {
		c = c[:len(d)]
	}
	return Ordinal{domain: d, index: index, colors: c, unknown: unknown}
}

// Map returns the color for key.
func (o Ordinal) Map(key string) string {
	i, ok := o.index[key]
	if !ok || len(o.colors) == 0 {
		return o.unknown
	}
	return o.colors[i%len(o.colors)]
}

// Domain returns the keys in color order.
func (o Ordinal) Domain() []string { return slices.Clone(o.domain) }

// Colors returns the (sliced) color range.
func (o Ordinal) Colors() []string { return slices.Clone(o.colors) }

// Unknown returns the fallback color.
func (o Ordinal) Unknown() string { return o.unknown }
