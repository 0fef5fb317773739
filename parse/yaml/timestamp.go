package yaml

import (
	"strings"
	"time"
)

// Timestamp is an absolute date/time.
type Timestamp struct {
	Time time.Time
	// Floating is set when the source named no zone; Time is then the
	// parsed wall clock in the resolver's default location.
	Floating bool
}

func (*Timestamp) Kind() Kind   { return Kinds.Timestamp }
func (t *Timestamp) Value() any { return t.Time }
func (*Timestamp) node()        {}

func (t *Timestamp) Microsecond() int { return t.Time.Nanosecond() / 1000 }

// Offset is the zone offset in seconds east of UTC.
func (t *Timestamp) Offset() int {
	_, off := t.Time.Zone()
	return off
}

const (
	errInvalidDate    = "invalid date format"
	errTruncatedDate  = "invalid date format; input truncated"
	errCharsAfterTime = "invalid characters after time value"
)

// tsScanner walks timestamp text by index.
type tsScanner struct {
	s string
	i int
}

func (sc *tsScanner) done() bool { return sc.i >= len(sc.s) }

func (sc *tsScanner) peek() byte {
	if sc.i < len(sc.s) {
		return sc.s[sc.i]
	}
	return 0
}

// digits12 reads a one or two digit field.
func (sc *tsScanner) digits12() (int, bool) {
	if !isDigit(sc.peek()) {
		return 0, false
	}
	v := int(sc.s[sc.i] - '0')
	sc.i++
	if isDigit(sc.peek()) {
		v = v*10 + int(sc.s[sc.i]-'0')
		sc.i++
	}
	return v, true
}

// ParseTimestamp parses YYYY-M(M)-D(D)[(T|t| )H(H):M(M):S(S)[.frac]][ ][Z|±H(H)[:M(M)[:S(S)]]].
// Fractional seconds are cut or padded to microseconds. Without a zone the
// wall clock is taken in the resolver's default location.
func (r *Resolver) ParseTimestamp(text string) (*Timestamp, error) {
	fail := func(reason string) (*Timestamp, error) {
		return nil, parseErr("timestamp", text, reason)
	}

	if len(text) < 8 {
		return fail(errInvalidDate)
	}
	year := 0
	for k := 0; k < 4; k++ {
		if !isDigit(text[k]) {
			return fail("invalid year")
		}
		year = year*10 + int(text[k]-'0')
	}

	sc := &tsScanner{s: text, i: 4}
	if sc.peek() != '-' {
		return fail(errInvalidDate)
	}
	sc.i++
	month, ok := sc.digits12()
	if !ok || sc.peek() != '-' {
		return fail(errInvalidDate)
	}
	sc.i++
	day, ok := sc.digits12()
	if !ok {
		return fail(errInvalidDate)
	}

	f := tsFields{year: year, month: month, day: day}
	if sc.done() {
		return r.makeTimestamp(text, f, nil)
	}

	if c := sc.peek(); c != ' ' && c != 't' && c != 'T' {
		return fail("invalid date/time separator character")
	}
	sc.i++
	if f.hour, ok = sc.digits12(); !ok {
		return fail(errTruncatedDate)
	}
	if sc.done() {
		return fail(errTruncatedDate)
	}
	if sc.peek() != ':' {
		return fail("invalid hours/minutes separator character")
	}
	sc.i++
	if f.minute, ok = sc.digits12(); !ok {
		return fail(errTruncatedDate)
	}
	if sc.done() {
		return fail(errTruncatedDate)
	}
	if sc.peek() != ':' {
		return fail("invalid minutes/seconds separator character")
	}
	sc.i++
	if f.second, ok = sc.digits12(); !ok {
		return fail(errTruncatedDate)
	}
	if sc.done() {
		return r.makeTimestamp(text, f, nil)
	}

	if sc.peek() == '.' {
		sc.i++
		if !isDigit(sc.peek()) {
			return fail(errTruncatedDate)
		}
		start := sc.i
		for isDigit(sc.peek()) {
			sc.i++
		}
		f.us = micros(text[start:sc.i])
	}
	if sc.done() {
		return r.makeTimestamp(text, f, nil)
	}

	if sc.peek() == ' ' {
		sc.i++
		if sc.done() {
			return fail(errTruncatedDate)
		}
	}

	var loc *time.Location
	switch c := sc.peek(); c {
	case 'Z':
		sc.i++
		loc = time.UTC
	case '+', '-':
		sc.i++
		h, ok := sc.digits12()
		if !ok {
			return fail(errTruncatedDate)
		}
		offset := h * 3600
		if !sc.done() {
			if sc.peek() != ':' {
				return fail("invalid time zone hours/minutes separator character")
			}
			sc.i++
			m, ok := sc.digits12()
			if !ok {
				return fail(errTruncatedDate)
			}
			offset += m * 60
			if !sc.done() {
				if sc.peek() != ':' {
					return fail("invalid time zone minutes/seconds separator character")
				}
				sc.i++
				s, ok := sc.digits12()
				if !ok {
					return fail(errTruncatedDate)
				}
				offset += s
			}
		}
		if offset >= 24*3600 {
			return fail("time zone offset out of range")
		}
		if c == '-' {
			offset = -offset
		}
		loc = r.zones.Offset(offset)
	default:
		return fail(errCharsAfterTime)
	}
	if !sc.done() {
		return fail(errCharsAfterTime)
	}
	return r.makeTimestamp(text, f, loc)
}

type tsFields struct {
	year, month, day     int
	hour, minute, second int
	us                   int
}

// makeTimestamp range-checks the fields so that time.Date never
// normalizes an invalid value into a different one.
func (r *Resolver) makeTimestamp(text string, f tsFields, loc *time.Location) (*Timestamp, error) {
	var reason string
	switch {
	case f.month < 1 || f.month > 12:
		reason = "month out of range"
	case f.day < 1 || f.day > daysIn(f.year, f.month):
		reason = "day out of range"
	case f.hour > 23:
		reason = "hour out of range"
	case f.minute > 59:
		reason = "minute out of range"
	case f.second > 59:
		reason = "second out of range"
	}
	if reason != "" {
		return nil, parseErr("timestamp", text, reason)
	}

	floating := loc == nil
	if floating {
		loc = r.loc
	}
	t := time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, f.second, f.us*1000, loc)
	return &Timestamp{Time: t, Floating: floating}, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// micros turns fraction digits into microseconds, truncating beyond six
// digits and padding below.
func micros(frac string) int {
	if len(frac) > 6 {
		frac = frac[:6]
	}
	frac += strings.Repeat("0", 6-len(frac))
	us := 0
	for i := 0; i < len(frac); i++ {
		us = us*10 + int(frac[i]-'0')
	}
	return us
}

// looksLikeDate checks for a YYYY-MM-DD prefix on a scalar of at least
// ten characters.
func looksLikeDate(s string) bool {
	if len(s) < 10 {
		return false
	}
	for i := 0; i < 10; i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		default:
			if !isDigit(s[i]) {
				return false
			}
		}
	}
	return true
}
