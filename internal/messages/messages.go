// Package messages holds user-facing text templates.
package messages

import "fmt"

// StringDurationFormatError is the template for a duration list that cannot
// be parsed. The single verb receives the whole input.
const StringDurationFormatError = `invalid duration list '%s': expected entries like "30s", "5m*3" or "1h" separated by ';' or ','`

// FormatError renders StringDurationFormatError for input.
func FormatError(input string) string {
	return fmt.Sprintf(StringDurationFormatError, input)
}
