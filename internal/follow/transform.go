package follow

import (
	"strconv"
	"strings"
)

// TransformFunc is one entry of a transform property, e.g. rotate(10deg).
// Fragments that do not look like name(args) are kept verbatim in Args with raw set.
type TransformFunc struct {
	Name string
	Args string
	raw  bool
}

func Translate(d Position) TransformFunc {
	return TransformFunc{
		Name: "translate",
		Args: formatPixels(d.X) + ", " + formatPixels(d.Y),
	}
}

func (f TransformFunc) String() string {
	if f.raw {
		return f.Args
	}
	return f.Name + "(" + f.Args + ")"
}

func (f TransformFunc) IsZero() bool {
	return f == TransformFunc{}
}

// TransformList is the ordered list of functions making up a transform property.
type TransformList []TransformFunc

// ParseTransform splits a transform property into its functions. "none" and the
// empty string yield an empty list.
func ParseTransform(s string) TransformList {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil
	}

	var list TransformList
	i := 0
	for i < len(s) {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}

		start := i
		for i < len(s) && s[i] != '(' && !isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '(' {
			list = append(list, TransformFunc{Args: s[start:i], raw: true})
			continue
		}

		name := s[start:i]
		depth := 0
		end := -1
		for j := i; j < len(s); j++ {
			switch s[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				end = j
				break
			}
		}
		if end < 0 {
			list = append(list, TransformFunc{Args: s[start:], raw: true})
			break
		}

		list = append(list, TransformFunc{Name: name, Args: strings.TrimSpace(s[i+1 : end])})
		i = end + 1
	}
	return list
}

func (l TransformList) String() string {
	parts := make([]string, len(l))
	for i, f := range l {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// Index returns the position of f in the list, or -1.
func (l TransformList) Index(f TransformFunc) int {
	for i := range l {
		if l[i].Name == f.Name && l[i].Args == f.Args && l[i].raw == f.raw {
			return i
		}
	}
	return -1
}

// LastIndex is Index searching from the end of the list.
func (l TransformList) LastIndex(f TransformFunc) int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Name == f.Name && l[i].Args == f.Args && l[i].raw == f.raw {
			return i
		}
	}
	return -1
}

// Translation sums every pixel translate component of the list.
func (l TransformList) Translation() Position {
	var p Position
	for _, f := range l {
		if f.raw {
			continue
		}
		args := strings.Split(f.Args, ",")
		switch f.Name {
		case "translate":
			p.X += parsePixels(args[0])
			if len(args) > 1 {
				p.Y += parsePixels(args[1])
			}
		case "translateX":
			p.X += parsePixels(args[0])
		case "translateY":
			p.Y += parsePixels(args[0])
		}
	}
	return p
}

func formatPixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func parsePixels(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0
	}
	if !strings.HasSuffix(s, "px") {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0
	}
	return v
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
