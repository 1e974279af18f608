package splice

import "sort"

// StyleKey names a style attribute such as font or color.
type StyleKey string

// Style maps attribute keys to values. Styles are treated as immutable:
// every method that changes attributes returns a new Style.
type Style map[StyleKey]string

// Color is a named foreground or background color.
type Color string

// DefaultBaseStyle returns the base style used by rich builders unless
// WithBaseStyle overrides it.
func DefaultBaseStyle() Style {
	return Style{
		StyleKeyFont:     DefaultFont,
		StyleKeyFontSize: DefaultFontSize,
		StyleKeyColor:    string(DefaultColor),
	}
}

// ColorStyle returns a style that only sets the foreground color.
func ColorStyle(c Color) Style {
	return Style{StyleKeyColor: string(c)}
}

// Clone returns an independent copy. Cloning nil yields nil.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns s with every key of override applied on top.
// Keys missing from override keep their value from s.
func (s Style) Merge(override Style) Style {
	if s == nil && override == nil {
		return nil
	}
	out := make(Style, len(s)+len(override))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// With returns a copy of s with key set to value.
func (s Style) With(key StyleKey, value string) Style {
	return s.Merge(Style{key: value})
}

// Get returns the value for key.
func (s Style) Get(key StyleKey) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Color returns the foreground color, if set.
func (s Style) Color() (Color, bool) {
	v, ok := s[StyleKeyColor]
	return Color(v), ok
}

// Flag reports whether a boolean attribute such as bold is switched on.
func (s Style) Flag(key StyleKey) bool {
	return s[key] == StyleFlagOn
}

// Equal reports whether both styles hold the same attributes.
func (s Style) Equal(other Style) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Keys returns the attribute keys in sorted order.
func (s Style) Keys() []StyleKey {
	keys := make([]StyleKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
