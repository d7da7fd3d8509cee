package durations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []time.Duration
	}{
		{
			name:  "single seconds",
			input: "30s",
			want:  []time.Duration{30 * time.Second},
		},
		{
			name:  "repeat",
			input: "5m*3",
			want:  []time.Duration{5 * time.Minute, 5 * time.Minute, 5 * time.Minute},
		},
		{
			name:  "mixed delimiters keep order",
			input: "1h,30m;10s",
			want:  []time.Duration{time.Hour, 30 * time.Minute, 10 * time.Second},
		},
		{
			name:  "milliseconds and days",
			input: "2ms*2,1d",
			want:  []time.Duration{2 * time.Millisecond, 2 * time.Millisecond, 24 * time.Hour},
		},
		{
			name:  "upper case units",
			input: "2MS;3S;4M;5H;6D",
			want: []time.Duration{
				2 * time.Millisecond,
				3 * time.Second,
				4 * time.Minute,
				5 * time.Hour,
				6 * 24 * time.Hour,
			},
		},
		{
			name:  "empty segments dropped",
			input: ";;1s,,;2s;",
			want:  []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name:  "last repeat group wins",
			input: "1s*2*3",
			want:  []time.Duration{time.Second, time.Second, time.Second},
		},
		{
			name:  "zero repeat contributes nothing",
			input: "1s*0,2s",
			want:  []time.Duration{2 * time.Second},
		},
		{
			name:  "surrounding whitespace",
			input: " 1s , 2m ",
			want:  []time.Duration{time.Second, 2 * time.Minute},
		},
		{
			name:  "magnitude beyond 32 bits",
			input: "3000000000s",
			want:  []time.Duration{3000000000 * time.Second},
		},
		{
			name:  "largest day count",
			input: "106751d",
			want:  []time.Duration{106751 * 24 * time.Hour},
		},
		{
			name:  "mixed case milliseconds",
			input: "1mS,2Ms",
			want:  []time.Duration{time.Millisecond, 2 * time.Millisecond},
		},
		{
			name:  "zero magnitude",
			input: "0s",
			want:  []time.Duration{0},
		},
		{
			name:  "empty string",
			input: "",
			want:  []time.Duration{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_FormatErrors(t *testing.T) {
	inputs := []string{
		"abc",
		"5x",
		"5s*abc",
		"1s;abc",
		"s",
		"5",
		"-5s",
		"1.5s",
		"1s*",
		"1s; ;2s",
		"99999999999999999999s",
		"1s*99999999999",
		"300000d",
		"106752d",
		"5ſ",
		"5mſ",
		"5ſ*2",
		"1s;5ſ",
		"5K",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrFormat), "expected ErrFormat, got %v", err)

			var fErr *FormatError
			require.True(t, errors.As(err, &fErr))
			assert.Equal(t, input, fErr.Input)
			assert.Contains(t, err.Error(), input)
		})
	}
}

func TestParse_FormatErrorCarriesWholeInput(t *testing.T) {
	_, err := Parse("1s,2m,oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'1s,2m,oops'")
}

func TestParse_Nil(t *testing.T) {
	got, err := Parse(nil)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestParse_NonStringFallback(t *testing.T) {
	values := []any{42, 3.5, true, []byte("1s"), struct{}{}, time.Second}

	for _, v := range values {
		got, err := Parse(v)
		require.NoError(t, err)
		assert.Equal(t, []time.Duration{30 * time.Minute}, got, "value %#v", v)
	}
}

func TestParse_Idempotent(t *testing.T) {
	const input = "30s;5m*3,1h"

	first, err := Parse(input)
	require.NoError(t, err)
	second, err := Parse(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
}

func TestParser_MaxEntries(t *testing.T) {
	p := Parser{MaxEntries: 3}

	got, err := p.ParseString("1s*2,2s")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = p.ParseString("1s*2,2s*2")
	assert.ErrorIs(t, err, ErrTooManyEntries)

	_, err = p.ParseString("1s*4")
	assert.ErrorIs(t, err, ErrTooManyEntries)
}

func TestFormat_NotSupported(t *testing.T) {
	for _, in := range [][]time.Duration{nil, {}, {time.Second, time.Minute}} {
		s, err := Format(in)
		assert.Empty(t, s)
		assert.ErrorIs(t, err, ErrNotSupported)
	}
}
