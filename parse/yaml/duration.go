package yaml

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a relative date/time in ISO-8601 P...T... form. Components
// are kept apart since years and months have no fixed length.
type Duration struct {
	Years, Months, Days                   int64
	Hours, Minutes, Seconds, Microseconds int64
	Negative                              bool
}

func (*Duration) Kind() Kind   { return Kinds.Duration }
func (d *Duration) Value() any { return d }
func (*Duration) node()        {}

func (d *Duration) String() string { return formatDuration(d) }

func (d *Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 && d.Microseconds == 0
}

// Std converts to a time.Duration. ok is false when the duration has a
// year or month component.
func (d *Duration) Std() (time.Duration, bool) {
	if d.Years != 0 || d.Months != 0 {
		return 0, false
	}
	td := time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second +
		time.Duration(d.Microseconds)*time.Microsecond
	if d.Negative {
		td = -td
	}
	return td, true
}

// DurationFromStd splits td into hours, minutes, seconds and microseconds.
// Sub-microsecond precision is dropped.
func DurationFromStd(td time.Duration) *Duration {
	d := &Duration{}
	if td < 0 {
		d.Negative = true
		td = -td
	}
	us := int64(td / time.Microsecond)
	d.Hours = us / int64(time.Hour/time.Microsecond)
	us %= int64(time.Hour / time.Microsecond)
	d.Minutes = us / int64(time.Minute/time.Microsecond)
	us %= int64(time.Minute / time.Microsecond)
	d.Seconds = us / int64(time.Second/time.Microsecond)
	d.Microseconds = us % int64(time.Second/time.Microsecond)
	return d
}

// LooksLikeDuration is the cheap shape test run before ParseDuration on
// untagged scalars: P, an optional T, a signed integer and a designator
// valid for that part. A match commits the scalar to being a duration.
func LooksLikeDuration(text string) bool {
	if len(text) < 3 || text[0] != 'P' {
		return false
	}
	i := 1
	timePart := text[i] == 'T'
	if timePart {
		i++
	}
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	start := i
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if i == start || i == len(text) {
		return false
	}
	if timePart {
		return strings.IndexByte("HMSu", text[i]) >= 0
	}
	return strings.IndexByte("YMD", text[i]) >= 0
}

// ParseDuration parses [+|-]P[nY][nM][nD][T[nH][nM][nS][nu]]. Designators
// must appear in that order and at most once; "0D" is accepted as the
// zero duration.
func ParseDuration(text string) (*Duration, error) {
	fail := func(reason string) (*Duration, error) {
		return nil, parseErr("duration", text, reason)
	}

	d := &Duration{}
	if text == "0D" {
		return d, nil
	}

	i := 0
	if i < len(text) && (text[i] == '-' || text[i] == '+') {
		d.Negative = text[i] == '-'
		i++
	}
	if i >= len(text) || text[i] != 'P' {
		return fail("missing 'P' designator")
	}
	i++

	designators := "YMD"
	fields := []*int64{&d.Years, &d.Months, &d.Days}
	stage, count := 0, 0
	for i < len(text) {
		if text[i] == 'T' {
			if designators == "HMSu" {
				return fail("duplicate 'T' designator")
			}
			designators, stage = "HMSu", 0
			fields = []*int64{&d.Hours, &d.Minutes, &d.Seconds, &d.Microseconds}
			i++
			if i == len(text) {
				return fail("no time components after 'T'")
			}
			continue
		}

		if text[i] == '-' {
			return fail("negative duration components are not supported")
		}
		if text[i] == '+' {
			i++
		}
		start := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		if start == i {
			if i == len(text) {
				return fail("input truncated")
			}
			return fail(fmt.Sprintf("expecting digits, got '%c'", text[i]))
		}
		n, err := strconv.ParseInt(text[start:i], 10, 64)
		if err != nil {
			return fail("component out of range")
		}
		if i == len(text) {
			return fail(fmt.Sprintf("missing designator after '%s'", text[start:i]))
		}

		des := text[i]
		i++
		pos := strings.IndexByte(designators, des)
		if pos < 0 {
			return fail(fmt.Sprintf("invalid designator '%c'", des))
		}
		if pos < stage {
			return fail(fmt.Sprintf("designator '%c' out of order", des))
		}
		stage = pos + 1
		count++

		*fields[pos] = n
	}
	if count == 0 {
		return fail("no duration components")
	}
	return d, nil
}

// formatDuration renders d as P...; the zero duration is "0D".
func formatDuration(d *Duration) string {
	if d.IsZero() {
		return "0D"
	}
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	part := func(n int64, des byte) {
		if n != 0 {
			b.WriteString(strconv.FormatInt(n, 10))
			b.WriteByte(des)
		}
	}
	part(d.Years, 'Y')
	part(d.Months, 'M')
	part(d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Microseconds != 0 {
		b.WriteByte('T')
		part(d.Hours, 'H')
		part(d.Minutes, 'M')
		part(d.Seconds, 'S')
		part(d.Microseconds, 'u')
	}
	return b.String()
}
