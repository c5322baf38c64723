package follow

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultFactor    = 10
	DefaultAttribute = "data-follow"
)

// Options configure an Engine. They are resolved once and never change afterwards.
type Options struct {
	// Factor is the divisor applied to the pointer distance; larger moves less.
	Factor int
	// Attribute marks the elements to track and carries per-element factor overrides.
	Attribute string
	// AutoStart runs Initiate from New.
	AutoStart bool
	// Debug enables the observer (markers and log messages).
	Debug bool
}

func DefaultOptions() Options {
	return Options{
		Factor:    DefaultFactor,
		Attribute: DefaultAttribute,
		AutoStart: true,
		Debug:     false,
	}
}

// ResolveOptions merges input over the defaults. A "default" key holding a map is
// unwrapped first. Unknown keys and values of the wrong type are ignored.
func ResolveOptions(input map[string]any) Options {
	options := DefaultOptions()
	if input == nil {
		return options
	}

	if inner, ok := input["default"].(map[string]any); ok {
		input = inner
	}

	for key, value := range input {
		if value == nil {
			continue
		}
		switch key {
		case "factor":
			if factor, ok := toInt(value); ok && factor > 0 {
				options.Factor = factor
			}
		case "attribute", "attributeName":
			if attribute, ok := value.(string); ok && strings.TrimSpace(attribute) != "" {
				options.Attribute = strings.TrimSpace(attribute)
			}
		case "initiate", "autoStart":
			if autoStart, ok := toBool(value); ok {
				options.AutoStart = autoStart
			}
		case "debug":
			if debug, ok := toBool(value); ok {
				options.Debug = debug
			}
		}
	}
	return options
}

// Map returns the options in the shape ResolveOptions accepts.
func (o Options) Map() map[string]any {
	return map[string]any{
		"factor":    o.Factor,
		"attribute": o.Attribute,
		"initiate":  o.AutoStart,
		"debug":     o.Debug,
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case string:
		return parseLeadingInt(v)
	}
	return 0, false
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace, ignoring whatever follows ("12px" is 12).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
