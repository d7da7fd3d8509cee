package durations

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// List is a parsed duration list that can be bound from flags, text and YAML.
// Bound lists are limited to DefaultMaxEntries values.
type List []time.Duration

var bindParser = Parser{MaxEntries: DefaultMaxEntries}

// Set implements pflag.Value.
func (l *List) Set(value string) error {
	parsed, err := bindParser.ParseString(value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// String implements pflag.Value. The output is for display only and is not
// accepted back by Set.
func (l *List) String() string {
	if l == nil || len(*l) == 0 {
		return ""
	}
	parts := make([]string, len(*l))
	for i, d := range *l {
		parts[i] = d.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Type implements pflag.Value.
func (l *List) Type() string {
	return "durations"
}

// Sum returns the sum of all entries. ok is false if the sum does not fit
// in a time.Duration.
func (l List) Sum() (total time.Duration, ok bool) {
	for _, d := range l {
		if d > math.MaxInt64-total {
			return math.MaxInt64, false
		}
		total += d
	}
	return total, true
}

// Total returns the sum of all entries, saturating at the largest
// time.Duration.
func (l List) Total() time.Duration {
	total, _ := l.Sum()
	return total
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *List) UnmarshalText(text []byte) error {
	return l.Set(string(text))
}

// MarshalText implements encoding.TextMarshaler and always fails.
func (l List) MarshalText() ([]byte, error) {
	_, err := Format(l)
	return nil, err
}

// UnmarshalYAML implements yaml.Unmarshaler. String scalars are parsed, null
// is rejected, and any other node falls back to a single DefaultDuration.
// Note that yaml.v3 never calls an unmarshaler for a null node during
// decoding; fields that must reject null should be *List.
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	var value any
	switch {
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		value = nil
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str":
		value = node.Value
	default:
		value = node
	}

	parsed, err := bindParser.Parse(value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*l = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler and always fails.
func (l List) MarshalYAML() (any, error) {
	_, err := Format(l)
	return nil, err
}
