package page

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

type declaration struct {
	property string
	value    string
}

// style is an inline style attribute kept in declaration order so it can be
// written back without reshuffling what the author wrote.
type style []declaration

func parseStyle(s string) style {
	var st style
	for _, part := range strings.Split(s, ";") {
		property, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		property = strings.ToLower(strings.TrimSpace(property))
		if property == "" {
			continue
		}
		st = append(st, declaration{property: property, value: strings.TrimSpace(value)})
	}
	return st
}

func (st style) get(property string) (string, bool) {
	for i := len(st) - 1; i >= 0; i-- {
		if st[i].property == property {
			return st[i].value, true
		}
	}
	return "", false
}

func (st style) set(property, value string) style {
	for i := len(st) - 1; i >= 0; i-- {
		if st[i].property == property {
			if value == "" {
				return append(st[:i:i], st[i+1:]...)
			}
			st[i].value = value
			return st
		}
	}
	if value == "" {
		return st
	}
	return append(st, declaration{property: property, value: value})
}

func (st style) String() string {
	parts := make([]string, len(st))
	for i, d := range st {
		parts[i] = d.property + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

// pixels reads a length in px (or a bare number). Anything else is 0.
func (st style) pixels(property string) float64 {
	value, ok := st.get(property)
	if !ok {
		return 0
	}
	value = strings.TrimSuffix(strings.TrimSpace(value), "px")
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return v
}

func (st style) color(property string, fallback color.RGBA) color.RGBA {
	value, ok := st.get(property)
	if !ok {
		return fallback
	}
	c, ok := parseColor(value)
	if !ok {
		return fallback
	}
	return c
}

func parseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}
