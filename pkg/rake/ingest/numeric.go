package ingest

import "regexp"

// numberPattern accepts integers and decimals with an optional sign and
// exponent: "42", "-3.5", ".5", "1e6".
var numberPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// IsNumeric reports whether token parses entirely as a number.
func IsNumeric(token string) bool {
	return numberPattern.MatchString(token)
}
