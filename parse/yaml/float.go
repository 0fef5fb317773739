package yaml

import (
	"math"
	"strconv"
	"strings"
)

// A run of at least noiseMinRun equal zeros or nines within
// noiseLookahead fraction digits is treated as binary rounding noise.
const (
	noiseMinRun    = 6
	noiseLookahead = 8
)

// FormatFloat renders f for output. Integral values keep a trailing ".0"
// so they read back as floats; other values are printed with 25
// significant digits and passed through ReduceNoise.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "@nan@"
	case math.IsInf(f, 1):
		return "@inf@"
	case math.IsInf(f, -1):
		return "-@inf@"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64) + ".0"
	}
	return ReduceNoise(strconv.FormatFloat(f, 'g', 25, 64), noiseMinRun, noiseLookahead)
}

// ReduceNoise shortens a long float rendering such as
// 0.1000000000000000055511151 to 0.1. At the first run of zeros or nines
// in the fraction it truncates (zeros) or rounds up (nines); a candidate is
// only taken when it parses back to exactly the same float64. The exponent
// suffix, if any, is kept as is.
func ReduceNoise(s string, minRun, lookahead int) string {
	want, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	mant, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, exp = s[:i], s[i:]
	}
	dp := strings.IndexByte(mant, '.')
	if dp < 0 {
		return s
	}

	for start := dp + 1; start < len(mant); start++ {
		c := mant[start]
		if c != '0' && c != '9' {
			continue
		}
		// only consider the first digit of a run
		if start > dp+1 && mant[start-1] == c {
			continue
		}
		end := min(start+lookahead, len(mant))
		same := 0
		for k := start; k < end; k++ {
			if mant[k] == c {
				same++
			}
		}
		if same < minRun {
			continue
		}
		m, e := truncateDigits(mant[:start], c == '9'), exp
		if e != "" {
			m, e = renormalize(m, e)
		}
		cand := m + e
		if v, err := strconv.ParseFloat(cand, 64); err == nil && v == want {
			return cand
		}
	}
	return s
}

// renormalize moves a carry out of the leading digit back into the
// exponent, so 10.0e-08 becomes 1.0e-07.
func renormalize(mant, exp string) (string, string) {
	sign, digits := "", mant
	if digits[0] == '-' || digits[0] == '+' {
		sign, digits = digits[:1], digits[1:]
	}
	dp := strings.IndexByte(digits, '.')
	if dp <= 1 {
		return mant, exp
	}
	e, err := strconv.Atoi(exp[1:])
	if err != nil {
		return mant, exp
	}
	e += dp - 1
	frac := strings.TrimRight(digits[1:dp]+digits[dp+1:], "0")
	if frac == "" {
		frac = "0"
	}

	esign := "+"
	if e < 0 {
		esign, e = "-", -e
	}
	ed := strconv.Itoa(e)
	if len(ed) < 2 {
		ed = "0" + ed
	}
	return sign + digits[:1] + "." + frac, exp[:1] + esign + ed
}

// truncateDigits ends a mantissa prefix, adding one unit in the last place
// when roundUp is set. The result always has a digit after the point.
func truncateDigits(prefix string, roundUp bool) string {
	b := []byte(prefix)
	if roundUp {
		i := len(b) - 1
		for ; i >= 0; i-- {
			if b[i] == '.' {
				continue
			}
			if b[i] == '-' || b[i] == '+' {
				break
			}
			if b[i] != '9' {
				b[i]++
				break
			}
			b[i] = '0'
		}
		// carry out of the leading digit
		if i < 0 || b[i] == '-' || b[i] == '+' {
			b = append(b[:i+1], append([]byte{'1'}, b[i+1:]...)...)
		}
	}
	if len(b) > 0 && b[len(b)-1] == '.' {
		b = append(b, '0')
	}
	return string(b)
}
