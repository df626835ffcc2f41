package scanner

import (
	"strconv"

	"github.com/go-orcus/orcus/orcuserr"
)

// ParseNumberPrefix parses an IEEE-754 double from the longest valid numeric
// prefix of buf starting at offset 0, following JSON number grammar
// (optional '-', digits, optional fraction, optional exponent). It returns
// the parsed value and the number of bytes consumed. It fails with
// invalid-number (an *orcuserr.ParseError) if buf has no valid digit
// prefix at all.
func ParseNumberPrefix(buf []byte, baseOffset int64) (float64, int, error) {
	n := len(buf)
	i := 0

	if i < n && buf[i] == '-' {
		i++
	}
	start := i
	if i < n && buf[i] == '0' {
		i++
	} else {
		for i < n && isDigit(buf[i]) {
			i++
		}
	}
	if i == start {
		return 0, 0, orcuserr.NewParseError(baseOffset, "invalid number: no digit found")
	}

	if i < n && buf[i] == '.' {
		j := i + 1
		k := j
		for k < n && isDigit(buf[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	if i < n && (buf[i] == 'e' || buf[i] == 'E') {
		j := i + 1
		if j < n && (buf[j] == '+' || buf[j] == '-') {
			j++
		}
		k := j
		for k < n && isDigit(buf[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(string(buf[:i]), 64)
	if err != nil {
		return 0, 0, orcuserr.NewParseError(baseOffset, "invalid number %q: %v", string(buf[:i]), err)
	}
	return v, i, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
