package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCultureInvariantFloat reads a number typed with either a dot or a comma as decimal
// separator. ok is false when s is blank.
func ParseCultureInvariantFloat(s string) (value float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number", s)
	}
	return value, true, nil
}

// Number is a float accepted from JSON either as a number or as a string such as "7,5".
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	value, ok, err := ParseCultureInvariantFloat(raw)
	if err != nil {
		return err
	}
	if ok {
		*n = Number(value)
	}
	return nil
}
