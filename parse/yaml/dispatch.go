package yaml

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

// =========================
// Explicit Tag Dispatch
// =========================

type decodeFunc func(r *Resolver, text string) (Node, error)

var decoders = map[string]decodeFunc{
	TimestampTag: func(r *Resolver, text string) (Node, error) {
		t, err := r.ParseTimestamp(text)
		if err != nil {
			return nil, err
		}
		return t, nil
	},
	BinaryTag: func(_ *Resolver, text string) (Node, error) { return decodeBinary(text) },
	StrTag:    func(_ *Resolver, text string) (Node, error) { return String(text), nil },
	NullTag:   func(_ *Resolver, _ string) (Node, error) { return Null{}, nil },
	BoolTag:   func(_ *Resolver, text string) (Node, error) { return decodeBool(text) },
	IntTag: func(_ *Resolver, text string) (Node, error) {
		v, err := parseIntToken(text)
		if err != nil {
			return nil, parseErr("integer", text, err.Error())
		}
		return Int(v), nil
	},
	FloatTag: func(_ *Resolver, text string) (Node, error) {
		f, err := parseFloatToken(text)
		if err != nil {
			return nil, parseErr("float", text, err.Error())
		}
		return Float(f), nil
	},
	DurationTag: func(_ *Resolver, text string) (Node, error) {
		d, err := ParseDuration(text)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
	NumberTag: func(_ *Resolver, text string) (Node, error) {
		d, err := decodeNumber(text)
		if err != nil {
			return nil, err
		}
		return d, nil
	},
	SQLNullTag: func(_ *Resolver, _ string) (Node, error) { return SQLNull{}, nil },
}

// Decode parses s.Text as the type named by tag. Long tag:yaml.org,2002:
// tags are accepted; a tag with no decoder is a *TagError.
func (r *Resolver) Decode(tag string, s Scalar) (Node, error) {
	dec, ok := decoders[ShortTag(tag)]
	if !ok {
		return nil, &TagError{Tag: tag}
	}
	r.logger.Debug("decoding tagged scalar", zap.String("tag", tag), zap.Stringer("style", s.Style))
	return dec(r, s.Text)
}

func decodeBool(text string) (Node, error) {
	switch text {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return nil, parseErr("boolean", text, "expecting 'true' or 'false'")
}

// decodeBinary reads standard base64; line breaks and other white space
// inside the text are ignored.
func decodeBinary(text string) (Node, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	b, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, parseErr("binary", previewValue([]byte(text)), "invalid base64 data")
	}
	return Binary(b), nil
}

// decodeNumber reads digits[n][{prec}] or a signed @inf@/@nan@. A
// malformed precision suffix is dropped rather than rejected.
func decodeNumber(text string) (*Decimal, error) {
	body, prec := text, mo.None[uint]()
	if i := strings.IndexByte(text, '{'); i >= 0 {
		body, prec = text[:i], parsePrec(text[i:])
	}
	body = strings.TrimSuffix(body, "n")

	unsigned := strings.TrimLeft(body, "+-")
	if len(body)-len(unsigned) <= 1 {
		switch {
		case strings.EqualFold(unsigned, "@nan@"):
			return &Decimal{Digits: "nan", Prec: prec}, nil
		case strings.EqualFold(unsigned, "@inf@"):
			digits := "inf"
			if body[0] == '-' {
				digits = "-inf"
			}
			return &Decimal{Digits: digits, Prec: prec}, nil
		}
	}
	if !isDecimalText(body) {
		return nil, parseErr("number", text, "invalid number syntax")
	}
	return &Decimal{Digits: body, Prec: prec}, nil
}

var intPrefixes = []struct {
	prefix string
	base   int
}{
	{"0x", 16},
	{"0o", 8},
	{"0b", 2},
}

// parseIntToken reads a decimal integer or one with a 0x, 0o or 0b
// prefix. Underscores between digits are ignored.
func parseIntToken(s string) (int64, error) {
	s = strings.ReplaceAll(s, "_", "")
	neg := false
	digits := s
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		neg = digits[0] == '-'
		digits = digits[1:]
	}
	for _, p := range intPrefixes {
		if !strings.HasPrefix(digits, p.prefix) {
			continue
		}
		v, err := strconv.ParseUint(digits[2:], p.base, 64)
		if err != nil {
			return 0, numErr(err)
		}
		if neg {
			if v > 1<<63 {
				return 0, numErr(strconv.ErrRange)
			}
			return -int64(v), nil
		}
		if v > math.MaxInt64 {
			return 0, numErr(strconv.ErrRange)
		}
		return int64(v), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, numErr(err)
	}
	return i, nil
}

// parseFloatToken reads a float in Go syntax, a signed @inf@ or @nan@, or
// one of the YAML spellings .inf and .nan.
func parseFloatToken(s string) (float64, error) {
	unsigned := strings.TrimLeft(s, "+-")
	if len(s)-len(unsigned) <= 1 {
		neg := strings.HasPrefix(s, "-")
		switch {
		case strings.EqualFold(unsigned, "@inf@"), strings.EqualFold(unsigned, ".inf"):
			if neg {
				return math.Inf(-1), nil
			}
			return math.Inf(+1), nil
		case strings.EqualFold(unsigned, "@nan@"), strings.EqualFold(unsigned, ".nan"):
			return math.NaN(), nil
		}
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil && !isRangeErr(err) {
		return 0, numErr(err)
	}
	return f, nil
}

// numErr reduces a strconv error to its reason.
func numErr(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
