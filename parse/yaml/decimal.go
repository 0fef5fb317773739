package yaml

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/mo"
)

// Decimal is an arbitrary-precision number kept as its decimal text so
// that nothing is lost to binary floating point.
type Decimal struct {
	// Digits is the numeric text without the n marker and precision
	// suffix, or one of "inf", "-inf" and "nan".
	Digits string
	// Prec is the declared number of digits after the decimal point, when
	// the source carried a {prec} suffix.
	Prec mo.Option[uint]
}

func NewDecimal(digits string) *Decimal {
	return &Decimal{Digits: digits, Prec: mo.None[uint]()}
}

func NewDecimalPrec(digits string, prec uint) *Decimal {
	return &Decimal{Digits: digits, Prec: mo.Some(prec)}
}

func (*Decimal) Kind() Kind   { return Kinds.Number }
func (d *Decimal) Value() any { return d }
func (*Decimal) node()        {}

func (d *Decimal) IsNaN() bool { return d.Digits == "nan" }

func (d *Decimal) IsInf() bool { return d.Digits == "inf" || d.Digits == "-inf" }

// String renders the decimal in its serialized form, e.g. 1.25n{2}.
func (d *Decimal) String() string {
	s := d.Digits + "n"
	if d.Prec.IsPresent() {
		s += "{" + strconv.FormatUint(uint64(d.Prec.MustGet()), 10) + "}"
	}
	return s
}

// Big returns the value as a big.Float wide enough to hold every digit.
// NaN has no big.Float representation.
func (d *Decimal) Big() (*big.Float, error) {
	if d.IsNaN() {
		return nil, errors.New("NaN has no big.Float value")
	}
	prec := uint(len(d.Digits))*4 + 64
	f, _, err := big.ParseFloat(d.Digits, 10, prec, big.ToNearestEven)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number %q", d.Digits)
	}
	return f, nil
}

// Float64 returns the nearest float64; NaN and unparsable text give NaN.
func (d *Decimal) Float64() float64 {
	f, err := d.Big()
	if err != nil {
		return math.NaN()
	}
	v, _ := f.Float64()
	return v
}

// Equal reports whether both decimals hold the same value and precision.
func (d *Decimal) Equal(o *Decimal) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Prec.IsPresent() != o.Prec.IsPresent() {
		return false
	}
	if d.Prec.IsPresent() && d.Prec.MustGet() != o.Prec.MustGet() {
		return false
	}
	if d.IsNaN() || o.IsNaN() {
		return d.IsNaN() && o.IsNaN()
	}
	a, err := d.Big()
	if err != nil {
		return false
	}
	b, err := o.Big()
	if err != nil {
		return false
	}
	return a.Cmp(b) == 0
}

// Scientific renders the value as d.ddde±XX without dropping a digit.
// Trailing zeros of the mantissa are not significant and are removed.
func (d *Decimal) Scientific() string {
	switch d.Digits {
	case "inf", "-inf", "nan":
		return d.Digits
	}
	neg, mant, exp, ok := splitDecimal(d.Digits)
	if !ok {
		return d.Digits
	}
	mant = strings.TrimLeft(mant, "0")
	if mant == "" {
		return "0e+00"
	}
	exp.Add(exp, big.NewInt(int64(len(mant)-1)))
	mant = strings.TrimRight(mant, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte(mant[0])
	if len(mant) > 1 {
		b.WriteByte('.')
		b.WriteString(mant[1:])
	}
	b.WriteByte('e')
	if exp.Sign() < 0 {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	abs := new(big.Int).Abs(exp).String()
	if len(abs) < 2 {
		b.WriteByte('0')
	}
	b.WriteString(abs)
	return b.String()
}

// isDecimalText checks [sign] (digits [. digits] | . digits) [e [sign] digits].
func isDecimalText(s string) bool {
	_, _, _, ok := splitDecimal(s)
	return ok
}

// splitDecimal breaks numeric text into its sign, the concatenated
// mantissa digits and the power of ten applying to them. The exponent is
// unbounded.
func splitDecimal(s string) (neg bool, mant string, exp *big.Int, ok bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intPart := s[start:i]
	var frac string
	if i < len(s) && s[i] == '.' {
		i++
		fs := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		frac = s[fs:i]
	}
	if intPart == "" && frac == "" {
		return false, "", nil, false
	}
	exp = new(big.Int)
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		es := i
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		ds := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if ds == i {
			return false, "", nil, false
		}
		if _, valid := exp.SetString(s[es:i], 10); !valid {
			return false, "", nil, false
		}
	}
	if i != len(s) {
		return false, "", nil, false
	}
	exp.Sub(exp, big.NewInt(int64(len(frac))))
	return neg, intPart + frac, exp, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
