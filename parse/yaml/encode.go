package yaml

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Encoder renders typed values as scalar text plus the tag and style an
// emitter needs to write them unchanged.
type Encoder struct {
	canonical   bool
	foldSQLNull bool
}

func NewEncoder(opts ...Option) *Encoder {
	return newEncoder(newConfig(opts))
}

func newEncoder(c *config) *Encoder {
	return &Encoder{canonical: c.canonical, foldSQLNull: c.foldSQLNull}
}

// EncodeScalar dispatches on the type of n. Sequences and mappings are not
// scalars and give an *EmitError.
func (e *Encoder) EncodeScalar(n Node) (Scalar, error) {
	switch v := n.(type) {
	case String:
		return e.EncodeString(string(v))
	case Int:
		return e.EncodeInt(int64(v)), nil
	case Float:
		return e.EncodeFloat(float64(v)), nil
	case *Decimal:
		return e.EncodeDecimal(v), nil
	case Bool:
		return e.EncodeBool(bool(v)), nil
	case *Timestamp:
		return e.EncodeTimestamp(v), nil
	case *Duration:
		return e.EncodeDuration(v), nil
	case Binary:
		return e.EncodeBinary(v), nil
	case Null:
		return e.EncodeNull(), nil
	case SQLNull:
		return e.EncodeSQLNull(), nil
	case nil:
		return e.EncodeNull(), nil
	default:
		return Scalar{}, &EmitError{Tag: string(n.Kind()), Reason: "value is not a scalar"}
	}
}

func implicit(text, tag string, style Style) Scalar {
	return Scalar{Text: text, Tag: tag, Style: style, PlainImplicit: true, QuotedImplicit: true}
}

func explicit(text, tag string, style Style) Scalar {
	return Scalar{Text: text, Tag: tag, Style: style}
}

// EncodeString double-quotes s so it can never be read back as another
// type.
func (e *Encoder) EncodeString(s string) (Scalar, error) {
	if !utf8.ValidString(s) {
		return Scalar{}, emitErr(StrTag, "string has invalid UTF-8 encoding", []byte(s))
	}
	return implicit(s, StrTag, DoubleQuotedStyle), nil
}

func (e *Encoder) EncodeInt(i int64) Scalar {
	return implicit(strconv.FormatInt(i, 10), IntTag, AnyStyle)
}

func (e *Encoder) EncodeFloat(f float64) Scalar {
	return implicit(FormatFloat(f), FloatTag, AnyStyle)
}

// EncodeDecimal writes scientific notation, the n marker and the declared
// precision. The tag is always written.
func (e *Encoder) EncodeDecimal(d *Decimal) Scalar {
	var text string
	switch {
	case d.IsNaN():
		text = "@nan@n"
	case d.Digits == "-inf":
		text = "-@inf@n"
	case d.IsInf():
		text = "@inf@n"
	default:
		text = d.Scientific() + "n"
	}
	if d.Prec.IsPresent() {
		text += "{" + strconv.FormatUint(uint64(d.Prec.MustGet()), 10) + "}"
	}
	return explicit(text, NumberTag, AnyStyle)
}

func (e *Encoder) EncodeBool(b bool) Scalar {
	return implicit(strconv.FormatBool(b), BoolTag, AnyStyle)
}

// EncodeTimestamp writes YYYY-MM-DDTHH:MM:SS.ffffff followed by Z or the
// offset in canonical mode. Otherwise the time and zone are left out when
// both are zero, and trailing zeros of the fraction are dropped.
func (e *Encoder) EncodeTimestamp(ts *Timestamp) Scalar {
	t := ts.Time
	us := t.Nanosecond() / 1000
	_, off := t.Zone()

	var b strings.Builder
	if e.canonical {
		b.WriteString(t.Format("2006-01-02T15:04:05"))
		fmt.Fprintf(&b, ".%06d", us)
		b.WriteString(zoneSuffix(off))
		return explicit(b.String(), TimestampTag, AnyStyle)
	}

	b.WriteString(t.Format("2006-01-02"))
	midnight := t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && us == 0
	if !midnight || off != 0 {
		b.WriteString(t.Format(" 15:04:05"))
		if us != 0 {
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(fmt.Sprintf("%06d", us), "0"))
		}
		b.WriteByte(' ')
		b.WriteString(zoneSuffix(off))
	}
	return explicit(b.String(), TimestampTag, AnyStyle)
}

func zoneSuffix(off int) string {
	if off == 0 {
		return "Z"
	}
	return offsetName(off)
}

func (e *Encoder) EncodeDuration(d *Duration) Scalar {
	return implicit(formatDuration(d), DurationTag, AnyStyle)
}

// EncodeBinary writes standard base64 in double quotes with its tag.
func (e *Encoder) EncodeBinary(b []byte) Scalar {
	return explicit(base64.StdEncoding.EncodeToString(b), BinaryTag, DoubleQuotedStyle)
}

func (e *Encoder) EncodeNull() Scalar {
	return implicit("null", NullTag, AnyStyle)
}

func (e *Encoder) EncodeSQLNull() Scalar {
	if e.foldSQLNull {
		return e.EncodeNull()
	}
	return implicit("sqlnull", SQLNullTag, AnyStyle)
}
