package yaml

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func plain(text string) Scalar {
	return Scalar{Text: text, Style: PlainStyle, PlainImplicit: true, QuotedImplicit: true}
}

func quoted(text string, style Style) Scalar {
	return Scalar{Text: text, Style: style, PlainImplicit: true, QuotedImplicit: true}
}

func TestClassifyOrder(t *testing.T) {
	r := utcResolver()

	convey.Convey("literals", t, func() {
		cases := map[string]Node{
			"true":    Bool(true),
			"false":   Bool(false),
			"null":    Null{},
			"~":       Null{},
			"":        Null{},
			"sqlnull": SQLNull{},
			"True":    String("True"),
			"yes":     String("yes"),
			"NULL":    String("NULL"),
			"hello":   String("hello"),
			"123":     Int(123),
			"1.5":     Float(1.5),
			"0x10":    String("0x10"),
		}
		for text, want := range cases {
			n, err := r.Classify(plain(text), false)
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldResemble, want)
		}
	})

	convey.Convey("double quotes and keys always give strings", t, func() {
		for _, text := range []string{"true", "123", "2020-01-01", "P1D", "null", "2020-99-99"} {
			n, err := r.Classify(quoted(text, DoubleQuotedStyle), false)
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, String(text))

			n, err = r.Classify(plain(text), true)
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, String(text))
		}
	})

	convey.Convey("single quotes keep numbers exact", t, func() {
		n, err := r.Classify(quoted("123", SingleQuotedStyle), false)
		convey.So(err, convey.ShouldBeNil)
		d, ok := n.(*Decimal)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(d.Digits, convey.ShouldEqual, "123")

		n, err = r.Classify(quoted("true", SingleQuotedStyle), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, String("true"))

		n, err = r.Classify(quoted("2020-01-01", SingleQuotedStyle), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n.Kind(), convey.ShouldEqual, Kinds.Timestamp)

		_, err = r.Classify(quoted("2020-13-01", SingleQuotedStyle), false)
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("timestamp shape commits", t, func() {
		n, err := r.Classify(plain("2001-12-14 21:59:43.10 -5"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n.Kind(), convey.ShouldEqual, Kinds.Timestamp)

		_, err = r.Classify(plain("2020-13-40"), false)
		var pe *ParseError
		convey.So(errors.As(err, &pe), convey.ShouldBeTrue)
		convey.So(pe.Value, convey.ShouldEqual, "2020-13-40")

		n, err = r.Classify(plain("2020-1-1"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, String("2020-1-1"))
	})

	convey.Convey("duration pre-filter commits", t, func() {
		n, err := r.Classify(plain("P1DT2H"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n.Kind(), convey.ShouldEqual, Kinds.Duration)

		_, err = r.Classify(plain("P1D1D"), false)
		convey.So(err, convey.ShouldNotBeNil)

		n, err = r.Classify(plain("Pizza"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, String("Pizza"))
	})

	convey.Convey("huge exponents are floats, not strings", t, func() {
		n, err := r.Classify(plain("1e99999999999999999999"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, Float(math.Inf(1)))
	})

	convey.Convey("long digit strings become decimals", t, func() {
		for _, text := range []string{strings.Repeat("1", 20), "-" + strings.Repeat("9", 25)} {
			n, err := r.Classify(plain(text), false)
			convey.So(err, convey.ShouldBeNil)
			convey.So(n.(*Decimal).Digits, convey.ShouldEqual, text)
		}
	})

	convey.Convey("literal and folded blocks classify like plain text", t, func() {
		n, err := r.Classify(quoted("42", LiteralStyle), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, Int(42))
	})

	convey.Convey("sentinels", t, func() {
		n, err := r.Classify(plain("-@inf@"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(float64(n.(Float)), convey.ShouldEqual, math.Inf(-1))
	})
}

func TestResolvePicksDecoder(t *testing.T) {
	r := utcResolver()

	convey.Convey("tagged scalars skip classification", t, func() {
		n, err := r.Resolve(Scalar{Text: "123", Tag: StrTag, Style: PlainStyle}, false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, String("123"))

		n, err = r.Resolve(plain("123"), false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, Int(123))

		n, err = r.Resolve(Scalar{Text: "123", Tag: "!", Style: PlainStyle}, false)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, Int(123))
	})
}
