package yaml

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func TestEncodeScalars(t *testing.T) {
	enc := NewEncoder()

	convey.Convey("implicit scalars", t, func() {
		s, err := enc.EncodeScalar(String("hello"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(s, convey.ShouldResemble, Scalar{
			Text: "hello", Tag: StrTag, Style: DoubleQuotedStyle, PlainImplicit: true, QuotedImplicit: true,
		})

		s, _ = enc.EncodeScalar(Int(-12))
		convey.So(s.Text, convey.ShouldEqual, "-12")
		convey.So(s.Tag, convey.ShouldEqual, IntTag)
		convey.So(s.Implicit(), convey.ShouldBeTrue)

		s, _ = enc.EncodeScalar(Float(1.0))
		convey.So(s.Text, convey.ShouldEqual, "1.0")
		convey.So(s.Tag, convey.ShouldEqual, FloatTag)

		s, _ = enc.EncodeScalar(Bool(true))
		convey.So(s.Text, convey.ShouldEqual, "true")

		s, _ = enc.EncodeScalar(Null{})
		convey.So(s.Text, convey.ShouldEqual, "null")
		convey.So(s.Tag, convey.ShouldEqual, NullTag)

		s, _ = enc.EncodeScalar(nil)
		convey.So(s.Tag, convey.ShouldEqual, NullTag)
	})

	convey.Convey("sql null", t, func() {
		s, _ := enc.EncodeScalar(SQLNull{})
		convey.So(s.Text, convey.ShouldEqual, "sqlnull")
		convey.So(s.Tag, convey.ShouldEqual, SQLNullTag)

		s, _ = NewEncoder(WithFoldSQLNull()).EncodeScalar(SQLNull{})
		convey.So(s.Text, convey.ShouldEqual, "null")
		convey.So(s.Tag, convey.ShouldEqual, NullTag)
	})

	convey.Convey("decimals always keep their tag", t, func() {
		s, _ := enc.EncodeScalar(NewDecimal("-123.45"))
		convey.So(s.Text, convey.ShouldEqual, "-1.2345e+02n")
		convey.So(s.Tag, convey.ShouldEqual, NumberTag)
		convey.So(s.Implicit(), convey.ShouldBeFalse)

		s, _ = enc.EncodeScalar(NewDecimalPrec("1.50", 2))
		convey.So(s.Text, convey.ShouldEqual, "1.5e+00n{2}")

		s, _ = enc.EncodeScalar(NewDecimalPrec("nan", 3))
		convey.So(s.Text, convey.ShouldEqual, "@nan@n{3}")
		s, _ = enc.EncodeScalar(NewDecimal("-inf"))
		convey.So(s.Text, convey.ShouldEqual, "-@inf@n")
		s, _ = enc.EncodeScalar(NewDecimal("inf"))
		convey.So(s.Text, convey.ShouldEqual, "@inf@n")
	})

	convey.Convey("binary is quoted base64", t, func() {
		s, _ := enc.EncodeScalar(Binary("hi!"))
		convey.So(s.Text, convey.ShouldEqual, "aGkh")
		convey.So(s.Tag, convey.ShouldEqual, BinaryTag)
		convey.So(s.Style, convey.ShouldEqual, DoubleQuotedStyle)
		convey.So(s.Implicit(), convey.ShouldBeFalse)
	})

	convey.Convey("collections are not scalars", t, func() {
		_, err := enc.EncodeScalar(&Sequence{})
		var ee *EmitError
		convey.So(errors.As(err, &ee), convey.ShouldBeTrue)
		convey.So(ee.Tag, convey.ShouldEqual, "sequence")
	})
}

func TestEncodeTimestamp(t *testing.T) {
	zc := NewZoneCache()

	convey.Convey("non-canonical forms", t, func() {
		enc := NewEncoder()
		ts := &Timestamp{Time: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}
		convey.So(enc.EncodeTimestamp(ts).Text, convey.ShouldEqual, "2020-01-02")

		ts = &Timestamp{Time: time.Date(2020, 1, 2, 0, 0, 0, 0, zc.Offset(3600))}
		convey.So(enc.EncodeTimestamp(ts).Text, convey.ShouldEqual, "2020-01-02 00:00:00 +01:00")

		ts = &Timestamp{Time: time.Date(2020, 1, 2, 3, 4, 5, 120000000, time.UTC)}
		convey.So(enc.EncodeTimestamp(ts).Text, convey.ShouldEqual, "2020-01-02 03:04:05.12 Z")

		ts = &Timestamp{Time: time.Date(2020, 1, 2, 3, 4, 5, 0, zc.Offset(-(9*3600 + 30*60)))}
		convey.So(enc.EncodeTimestamp(ts).Text, convey.ShouldEqual, "2020-01-02 03:04:05 -09:30")
	})

	convey.Convey("canonical form", t, func() {
		enc := NewEncoder(WithCanonical())
		ts := &Timestamp{Time: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)}
		convey.So(enc.EncodeTimestamp(ts).Text, convey.ShouldEqual, "2020-01-02T00:00:00.000000Z")

		ts = &Timestamp{Time: time.Date(2020, 1, 2, 3, 4, 5, 7000, zc.Offset(5*3600))}
		convey.So(enc.EncodeTimestamp(ts).Text, convey.ShouldEqual, "2020-01-02T03:04:05.000007+05:00")
	})
}

func TestEncodeErrors(t *testing.T) {
	convey.Convey("invalid utf-8 is refused with a bounded preview", t, func() {
		bad := "\xff\xfe" + strings.Repeat("a", 100)
		_, err := NewEncoder().EncodeString(bad)
		var ee *EmitError
		convey.So(errors.As(err, &ee), convey.ShouldBeTrue)
		convey.So(ee.Tag, convey.ShouldEqual, StrTag)
		convey.So(ee.Preview, convey.ShouldStartWith, "<fffe6161")
		convey.So(ee.Preview, convey.ShouldEndWith, "...>")
		convey.So(len(ee.Preview), convey.ShouldEqual, 1+2*maxErrValueLen+3+1)
		convey.So(err.Error(), convey.ShouldStartWith, "cannot emit YAML scalar for type '!!str'")
	})

	convey.Convey("text previews are cut at 40 runes", t, func() {
		convey.So(previewValue([]byte("short")), convey.ShouldEqual, "short")
		long := strings.Repeat("é", 50)
		convey.So(previewValue([]byte(long)), convey.ShouldEqual, strings.Repeat("é", 40)+"...")
		convey.So(previewValue([]byte{0xff}), convey.ShouldEqual, "<ff>")
	})
}

func TestIntRoundTrip(t *testing.T) {
	r := utcResolver()
	enc := NewEncoder()

	convey.Convey("every int64 survives encode then classify", t, func() {
		for _, v := range []int64{0, 1, -1, 42, math.MaxInt64, math.MinInt64, math.MaxInt32 + 1, -1 << 40} {
			s := enc.EncodeInt(v)
			n, err := r.Classify(Scalar{Text: s.Text, Style: PlainStyle}, false)
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, Int(v))
		}
	})
}
