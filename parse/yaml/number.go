package yaml

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

const (
	maxInt64Digits = "9223372036854775807"
	minInt64Digits = "9223372036854775808"
)

// ScanNumber classifies text as an integer, float, arbitrary-precision
// number, or special value. None means the text is not numeric.
//
// In strict mode, used for quoted scalars, text that would become an Int
// or a Float is returned as a lossless Decimal instead; special values
// keep their usual type.
func ScanNumber(text string, strict bool) mo.Option[Node] {
	if len(text) == 0 {
		return mo.None[Node]()
	}
	if n, ok := scanSpecial(text); ok {
		return n
	}

	signed := text[0] == '+' || text[0] == '-'
	i := 0
	if signed {
		i = 1
	}
	if i == len(text) {
		return mo.None[Node]()
	}

	// only digits so far
	od := true
	// decimal point seen
	dp := false
	// exponent marker seen
	e := false
	// exponent sign seen
	pm := false
	for ; i < len(text); i++ {
		c := text[i]
		if isDigit(c) {
			continue
		}
		if c == 'n' {
			return scanDecimalMarker(text[:i], text[i+1:])
		}
		od = false
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}
		switch {
		case c == '.':
			if dp || e || pm {
				return mo.None[Node]()
			}
			dp = true
		case (c == 'e' || c == 'E') && (isDigit(next) || next == '+' || next == '-'):
			if e || pm {
				return mo.None[Node]()
			}
			e = true
		case (c == '+' || c == '-') && isDigit(next):
			if pm || !e {
				return mo.None[Node]()
			}
			pm = true
		default:
			return mo.None[Node]()
		}
	}

	if od {
		if !fitsInt64(text) || strict {
			return mo.Some[Node](NewDecimal(text))
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return mo.Some[Node](NewDecimal(text))
		}
		return mo.Some[Node](Int(v))
	}

	if !isDecimalText(text) {
		return mo.None[Node]()
	}
	if strict {
		return mo.Some[Node](NewDecimal(text))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRangeErr(err) {
		return mo.None[Node]()
	}
	return mo.Some[Node](Float(f))
}

// scanSpecial recognizes @inf@ and @nan@, with an optional sign and an
// optional n[{prec}] marker. ok is false when text does not start with a
// special value at all.
func scanSpecial(text string) (mo.Option[Node], bool) {
	sign := 0
	if text[0] == '+' || text[0] == '-' {
		sign = 1
	}
	if len(text) < sign+5 {
		return mo.None[Node](), false
	}
	word := text[sign : sign+5]
	isNaN := strings.EqualFold(word, "@nan@")
	if !isNaN && !strings.EqualFold(word, "@inf@") {
		return mo.None[Node](), false
	}
	neg := text[0] == '-'

	rest := text[sign+5:]
	if rest == "" {
		if isNaN {
			return mo.Some[Node](Float(math.NaN())), true
		}
		if neg {
			return mo.Some[Node](Float(math.Inf(-1))), true
		}
		return mo.Some[Node](Float(math.Inf(1))), true
	}
	if rest[0] != 'n' {
		return mo.None[Node](), true
	}

	digits := "inf"
	switch {
	case isNaN:
		digits = "nan"
	case neg:
		digits = "-inf"
	}
	suffix := rest[1:]
	if suffix == "" {
		return mo.Some[Node](NewDecimal(digits)), true
	}
	if suffix[0] != '{' {
		return mo.None[Node](), true
	}
	return mo.Some[Node](&Decimal{Digits: digits, Prec: parsePrec(suffix)}), true
}

// scanDecimalMarker handles the n marker: body is the text before it and
// suffix the text after it.
func scanDecimalMarker(body, suffix string) mo.Option[Node] {
	if !isDecimalText(body) {
		return mo.None[Node]()
	}
	if suffix == "" {
		return mo.Some[Node](NewDecimal(body))
	}
	if suffix[0] != '{' {
		return mo.None[Node]()
	}
	return mo.Some[Node](&Decimal{Digits: body, Prec: parsePrec(suffix)})
}

// parsePrec reads a complete {digits} suffix. Anything malformed gives
// None rather than an error.
func parsePrec(s string) mo.Option[uint] {
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return mo.None[uint]()
	}
	body := s[1 : len(s)-1]
	for i := 0; i < len(body); i++ {
		if !isDigit(body[i]) {
			return mo.None[uint]()
		}
	}
	p, err := strconv.ParseUint(body, 10, 32)
	if err != nil {
		return mo.None[uint]()
	}
	return mo.Some(uint(p))
}

// fitsInt64 compares all-digit text against the int64 limits by length,
// then lexicographically.
func fitsInt64(text string) bool {
	limit := maxInt64Digits
	digits := text
	switch text[0] {
	case '-':
		limit = minInt64Digits
		digits = text[1:]
	case '+':
		digits = text[1:]
	}
	switch {
	case len(digits) < len(limit):
		return true
	case len(digits) == len(limit):
		return digits <= limit
	default:
		return false
	}
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
