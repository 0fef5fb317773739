package yaml

import (
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestDecimalScientific(t *testing.T) {
	convey.Convey("scientific rendering keeps every digit", t, func() {
		cases := map[string]string{
			"123.45":               "1.2345e+02",
			"-123.45":              "-1.2345e+02",
			"0":                    "0e+00",
			"0.000":                "0e+00",
			"1":                    "1e+00",
			"100":                  "1e+02",
			"0.00120":              "1.2e-03",
			"1.5e10":               "1.5e+10",
			"12345678901234567890": "1.234567890123456789e+19",
			".5":                   "5e-01",
			"+7":                   "7e+00",
		}
		for in, want := range cases {
			convey.So(NewDecimal(in).Scientific(), convey.ShouldEqual, want)
		}
		convey.So(NewDecimal("-inf").Scientific(), convey.ShouldEqual, "-inf")
	})

	convey.Convey("exponents beyond int64 are kept exactly", t, func() {
		convey.So(NewDecimal("12e9223372036854775807").Scientific(), convey.ShouldEqual, "1.2e+9223372036854775808")
		convey.So(NewDecimal("-0.5e-9223372036854775808").Scientific(), convey.ShouldEqual, "-5e-9223372036854775809")
		convey.So(NewDecimal("1e99999999999999999999999").Scientific(), convey.ShouldEqual, "1e+99999999999999999999999")

		r := utcResolver()
		enc := NewEncoder()
		for _, digits := range []string{"12e9223372036854775807", "-0.5e-9223372036854775808"} {
			s := enc.EncodeDecimal(NewDecimal(digits))
			n, err := r.Decode(s.Tag, s)
			convey.So(err, convey.ShouldBeNil)
			back := n.(*Decimal)
			convey.So(back.Digits, convey.ShouldEqual, NewDecimal(digits).Scientific())
			convey.So(enc.EncodeDecimal(back).Text, convey.ShouldEqual, s.Text)
		}
	})
}

func TestDecimalString(t *testing.T) {
	convey.Convey("string form carries the marker and precision", t, func() {
		convey.So(NewDecimal("1.5").String(), convey.ShouldEqual, "1.5n")
		convey.So(NewDecimalPrec("1.50", 2).String(), convey.ShouldEqual, "1.50n{2}")
	})
}

func TestDecimalValue(t *testing.T) {
	convey.Convey("big and float64 conversions", t, func() {
		f, err := NewDecimal("12345678901234567890").Big()
		convey.So(err, convey.ShouldBeNil)
		convey.So(f.Text('f', 0), convey.ShouldEqual, "12345678901234567890")

		convey.So(NewDecimal("0.5").Float64(), convey.ShouldEqual, 0.5)
		convey.So(NewDecimal("-inf").Float64(), convey.ShouldEqual, math.Inf(-1))
		convey.So(math.IsNaN(NewDecimal("nan").Float64()), convey.ShouldBeTrue)

		_, err = NewDecimal("nan").Big()
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("equality compares value and precision", t, func() {
		convey.So(NewDecimal("1.50").Equal(NewDecimal("1.5")), convey.ShouldBeTrue)
		convey.So(NewDecimal("15e-1").Equal(NewDecimal("1.5")), convey.ShouldBeTrue)
		convey.So(NewDecimalPrec("1.5", 1).Equal(NewDecimal("1.5")), convey.ShouldBeFalse)
		convey.So(NewDecimalPrec("1.5", 1).Equal(NewDecimalPrec("1.50", 1)), convey.ShouldBeTrue)
		convey.So(NewDecimal("nan").Equal(NewDecimal("nan")), convey.ShouldBeTrue)
		convey.So(NewDecimal("1").Equal(NewDecimal("2")), convey.ShouldBeFalse)
	})
}
