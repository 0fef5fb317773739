package yaml

import "strings"

// Tags understood by the dispatcher and produced by the encoder.
const (
	StrTag       = "!!str"
	IntTag       = "!!int"
	FloatTag     = "!!float"
	BoolTag      = "!!bool"
	NullTag      = "!!null"
	TimestampTag = "!!timestamp"
	BinaryTag    = "!!binary"

	// Extensions; only this codec reads them back.
	NumberTag   = "!number"
	DurationTag = "!duration"
	SQLNullTag  = "!sqlnull"
)

const longTagPrefix = "tag:yaml.org,2002:"

// ShortTag rewrites a tag:yaml.org,2002: tag into its !! form.
func ShortTag(tag string) string {
	if strings.HasPrefix(tag, longTagPrefix) {
		return "!!" + tag[len(longTagPrefix):]
	}
	return tag
}

// Style is the quoting style a scalar was written in, or should be.
type Style uint8

const (
	AnyStyle Style = iota
	PlainStyle
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

var styleNames = map[Style]string{
	AnyStyle:          "any",
	PlainStyle:        "plain",
	SingleQuotedStyle: "single",
	DoubleQuotedStyle: "double",
	LiteralStyle:      "literal",
	FoldedStyle:       "folded",
}

func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseStyle is the inverse of Style.String.
func ParseStyle(name string) (Style, bool) {
	for s, n := range styleNames {
		if n == name {
			return s, true
		}
	}
	return AnyStyle, false
}

// Scalar is one leaf token as seen by the tree walker, and one leaf token
// as produced by the encoder.
type Scalar struct {
	Text  string
	Tag   string
	Style Style

	// PlainImplicit and QuotedImplicit report whether the type is left to
	// the reader. An encoder result with both false must keep its tag.
	PlainImplicit  bool
	QuotedImplicit bool
}

// Tagged reports whether the scalar carries an explicit tag.
func (s Scalar) Tagged() bool {
	return s.Tag != "" && s.Tag != "!"
}

// Implicit reports whether the tag may be dropped on output.
func (s Scalar) Implicit() bool {
	return s.PlainImplicit || s.QuotedImplicit
}
