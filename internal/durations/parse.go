package durations

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lucrnz/durseq/internal/messages"
)

// DefaultDuration is returned as a single-entry list when the value handed to
// Parse is not a string.
const DefaultDuration = 30 * time.Minute

var (
	// ErrNilInput is returned when Parse receives a nil value.
	ErrNilInput = errors.New("duration list: nil input")
	// ErrFormat is the sentinel wrapped by every *FormatError.
	ErrFormat = errors.New("duration list: invalid format")
	// ErrNotSupported is returned by the reverse conversion.
	ErrNotSupported = errors.New("duration list: conversion to string is not supported")
	// ErrTooManyEntries is returned when the expanded list exceeds Parser.MaxEntries.
	ErrTooManyEntries = errors.New("duration list: too many entries")
)

// DefaultMaxEntries bounds lists bound through List (flags, text, YAML).
const DefaultMaxEntries = 10000

// FormatError reports an input that does not follow the duration list grammar.
// Input is always the whole string passed to the parser, not the bad entry.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return messages.FormatError(e.Input)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// entryPattern matches one list entry, e.g. "30s", "5m*3" or "2MS*2".
// For repeated "*N" groups the regexp engine reports the last one.
// Units are listed in both ASCII cases; (?i) would also fold U+017F into "s".
var entryPattern = regexp.MustCompile(`^(\d+)(ms|mS|Ms|MS|[smhdSMHD])(?:\*(\d+))*$`)

var unitScale = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
}

// Parser converts duration lists. The zero value is ready to use.
type Parser struct {
	// MaxEntries bounds the number of values after repeats are expanded.
	// Zero means no bound.
	MaxEntries int
}

// Parse converts value into a list of durations.
//
// A nil value fails with ErrNilInput. Any value that is not a string yields
// a single DefaultDuration. Strings are split on ';' and ',' with empty
// entries dropped; every remaining entry must look like <n><unit>[*<repeat>]
// where unit is one of ms, s, m, h, d (any case).
func (p Parser) Parse(value any) ([]time.Duration, error) {
	if value == nil {
		return nil, ErrNilInput
	}
	s, ok := value.(string)
	if !ok {
		return []time.Duration{DefaultDuration}, nil
	}
	return p.ParseString(s)
}

// ParseString is Parse for callers that already hold a string.
func (p Parser) ParseString(input string) ([]time.Duration, error) {
	segments := strings.FieldsFunc(input, func(r rune) bool {
		return r == ';' || r == ','
	})

	result := make([]time.Duration, 0, len(segments))
	for _, segment := range segments {
		tok, err := parseToken(strings.TrimSpace(segment))
		if err != nil {
			return nil, &FormatError{Input: input}
		}

		if p.MaxEntries > 0 && len(result)+tok.repeat > p.MaxEntries {
			return nil, fmt.Errorf("%w: more than %d in %q", ErrTooManyEntries, p.MaxEntries, input)
		}

		value := tok.duration()
		for i := 0; i < tok.repeat; i++ {
			result = append(result, value)
		}
	}

	return result, nil
}

type token struct {
	magnitude int64
	unit      string
	repeat    int
}

func parseToken(segment string) (token, error) {
	m := entryPattern.FindStringSubmatch(segment)
	if m == nil {
		return token{}, ErrFormat
	}

	magnitude, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return token{}, err
	}

	tok := token{magnitude: magnitude, unit: strings.ToLower(m[2]), repeat: 1}
	if m[3] != "" {
		repeat, err := strconv.ParseInt(m[3], 10, 32)
		if err != nil {
			return token{}, err
		}
		tok.repeat = int(repeat)
	}

	scale, ok := unitScale[tok.unit]
	if !ok {
		// entryPattern only admits the units in unitScale.
		panic(fmt.Sprintf("durations: unit %q matched but has no scale", tok.unit))
	}
	if tok.magnitude > math.MaxInt64/int64(scale) {
		return token{}, strconv.ErrRange
	}

	return tok, nil
}

func (t token) duration() time.Duration {
	return time.Duration(t.magnitude) * unitScale[t.unit]
}

// Parse converts value with a zero Parser.
func Parse(value any) ([]time.Duration, error) {
	return Parser{}.Parse(value)
}

// ParseString converts s with a zero Parser.
func ParseString(s string) ([]time.Duration, error) {
	return Parser{}.ParseString(s)
}

// Format would render durations back into list syntax. It is not
// implemented and always returns ErrNotSupported.
func Format([]time.Duration) (string, error) {
	return "", ErrNotSupported
}
