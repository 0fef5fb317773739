package yaml

import (
	"time"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

// Resolver turns scalar tokens into typed values. It holds no per-call
// state and may be shared between goroutines.
type Resolver struct {
	loc    *time.Location
	zones  *ZoneCache
	logger *zap.Logger

	steps []classifyStep
}

// classifyStep is one rule of the untagged classifier. None passes the
// scalar on to the next rule; an error aborts classification.
type classifyStep func(s Scalar, favorString bool) (mo.Option[Node], error)

func NewResolver(opts ...Option) *Resolver {
	return newResolver(newConfig(opts))
}

func newResolver(c *config) *Resolver {
	r := &Resolver{loc: c.loc, zones: c.zones, logger: c.logger}
	r.steps = []classifyStep{
		r.quotedString,
		r.singleQuoted,
		r.boolLiteral,
		r.nullLiteral,
		r.sqlNullLiteral,
		r.timestampShape,
		r.durationShape,
		r.number,
	}
	return r
}

// Resolve types one scalar. Explicitly tagged scalars go to Decode, all
// others to Classify. favorString is set for mapping keys.
func (r *Resolver) Resolve(s Scalar, favorString bool) (Node, error) {
	if s.Tagged() {
		return r.Decode(s.Tag, s)
	}
	return r.Classify(s, favorString)
}

// Classify applies the untagged rules in order; text nothing claims is a
// String.
func (r *Resolver) Classify(s Scalar, favorString bool) (Node, error) {
	for _, step := range r.steps {
		n, err := step(s, favorString)
		if err != nil {
			return nil, err
		}
		if n.IsPresent() {
			return n.MustGet(), nil
		}
	}
	return String(s.Text), nil
}

func (r *Resolver) quotedString(s Scalar, favorString bool) (mo.Option[Node], error) {
	if favorString || s.Style == DoubleQuotedStyle {
		return mo.Some[Node](String(s.Text)), nil
	}
	return mo.None[Node](), nil
}

// singleQuoted keeps numbers exact: '123' is a Decimal, never an Int.
func (r *Resolver) singleQuoted(s Scalar, _ bool) (mo.Option[Node], error) {
	if s.Style != SingleQuotedStyle {
		return mo.None[Node](), nil
	}
	if looksLikeDate(s.Text) {
		t, err := r.ParseTimestamp(s.Text)
		if err != nil {
			return mo.None[Node](), err
		}
		return mo.Some[Node](t), nil
	}
	if n := ScanNumber(s.Text, true); n.IsPresent() {
		return n, nil
	}
	return mo.Some[Node](String(s.Text)), nil
}

func (r *Resolver) boolLiteral(s Scalar, _ bool) (mo.Option[Node], error) {
	switch s.Text {
	case "true":
		return mo.Some[Node](Bool(true)), nil
	case "false":
		return mo.Some[Node](Bool(false)), nil
	}
	return mo.None[Node](), nil
}

func (r *Resolver) nullLiteral(s Scalar, _ bool) (mo.Option[Node], error) {
	switch s.Text {
	case "null", "~", "":
		return mo.Some[Node](Null{}), nil
	}
	return mo.None[Node](), nil
}

func (r *Resolver) sqlNullLiteral(s Scalar, _ bool) (mo.Option[Node], error) {
	if s.Text == "sqlnull" {
		return mo.Some[Node](SQLNull{}), nil
	}
	return mo.None[Node](), nil
}

// timestampShape commits any YYYY-MM-DD... scalar to being a timestamp; a
// malformed one is an error, not a string.
func (r *Resolver) timestampShape(s Scalar, _ bool) (mo.Option[Node], error) {
	if !looksLikeDate(s.Text) {
		return mo.None[Node](), nil
	}
	t, err := r.ParseTimestamp(s.Text)
	if err != nil {
		return mo.None[Node](), err
	}
	return mo.Some[Node](t), nil
}

func (r *Resolver) durationShape(s Scalar, _ bool) (mo.Option[Node], error) {
	if !LooksLikeDuration(s.Text) {
		return mo.None[Node](), nil
	}
	d, err := ParseDuration(s.Text)
	if err != nil {
		return mo.None[Node](), err
	}
	return mo.Some[Node](d), nil
}

func (r *Resolver) number(s Scalar, _ bool) (mo.Option[Node], error) {
	return ScanNumber(s.Text, false), nil
}
