// Package yaml resolves YAML scalars into typed values and renders typed
// values back into scalars.
//
// Scope:
//   - untagged scalar classification (bool, null, sqlnull, timestamp,
//     duration, int, float, arbitrary-precision number, string)
//   - explicit tag dispatch for the core YAML tags and the !number,
//     !duration and !sqlnull extensions
//   - canonical scalar encoding, the inverse of the two above
//   - a document walker over gopkg.in/yaml.v3 nodes
//
// Sequences, mappings, anchors and document boundaries are parsed by
// yaml.v3; this package only types the leaves.
package yaml

import (
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// =========================
// Value Definitions
// =========================

type Kind string

// Kinds lists every value kind a Node can carry.
var Kinds = struct {
	Null      Kind
	SQLNull   Kind
	Bool      Kind
	Int       Kind
	Float     Kind
	Number    Kind
	Timestamp Kind
	Duration  Kind
	Binary    Kind
	String    Kind
	Sequence  Kind
	Mapping   Kind
}{
	Null:      "null",
	SQLNull:   "sqlnull",
	Bool:      "bool",
	Int:       "int",
	Float:     "float",
	Number:    "number",
	Timestamp: "timestamp",
	Duration:  "duration",
	Binary:    "binary",
	String:    "string",
	Sequence:  "sequence",
	Mapping:   "mapping",
}

// Node is a typed YAML value. The set of implementations is closed; a type
// switch over the types below is exhaustive.
type Node interface {
	Kind() Kind
	Value() any
	node()
}

// -------- Scalars --------

type Null struct{}

func (Null) Kind() Kind { return Kinds.Null }
func (Null) Value() any { return nil }
func (Null) node()      {}

// SQLNull is the database null sentinel, kept apart from Null so that it
// survives a round trip.
type SQLNull struct{}

func (SQLNull) Kind() Kind { return Kinds.SQLNull }
func (SQLNull) Value() any { return SQLNull{} }
func (SQLNull) node()      {}

type Bool bool

func (Bool) Kind() Kind   { return Kinds.Bool }
func (b Bool) Value() any { return bool(b) }
func (Bool) node()        {}

type Int int64

func (Int) Kind() Kind   { return Kinds.Int }
func (i Int) Value() any { return int64(i) }
func (Int) node()        {}

type Float float64

func (Float) Kind() Kind   { return Kinds.Float }
func (f Float) Value() any { return float64(f) }
func (Float) node()        {}

type Binary []byte

func (Binary) Kind() Kind   { return Kinds.Binary }
func (b Binary) Value() any { return []byte(b) }
func (Binary) node()        {}

type String string

func (String) Kind() Kind   { return Kinds.String }
func (s String) Value() any { return string(s) }
func (String) node()        {}

// -------- Sequence --------

type Sequence struct {
	Elems []Node
}

func (*Sequence) Kind() Kind   { return Kinds.Sequence }
func (s *Sequence) Value() any { return s.Elems }
func (*Sequence) node()        {}

// -------- Mapping --------

type Pair struct {
	Key   string
	Value Node
}

// Mapping keeps its pairs in insertion order. Set replaces the value of an
// existing key in place.
type Mapping struct {
	Pairs []Pair

	index   map[string]int
	indexed int
}

func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

func (*Mapping) Kind() Kind   { return Kinds.Mapping }
func (m *Mapping) Value() any { return m.Pairs }
func (*Mapping) node()        {}

func (m *Mapping) Len() int { return len(m.Pairs) }

// lookup never writes, so concurrent readers are safe. A stale index, as
// on a Mapping built from a Pairs literal, falls back to a scan.
func (m *Mapping) lookup(key string) (int, bool) {
	if m.index != nil && m.indexed == len(m.Pairs) {
		i, ok := m.index[key]
		return i, ok
	}
	for i := len(m.Pairs) - 1; i >= 0; i-- {
		if m.Pairs[i].Key == key {
			return i, true
		}
	}
	return 0, false
}

func (m *Mapping) reindex() {
	m.index = make(map[string]int, len(m.Pairs))
	for i, p := range m.Pairs {
		m.index[p.Key] = i
	}
	m.indexed = len(m.Pairs)
}

func (m *Mapping) Set(key string, v Node) {
	if m.index == nil || m.indexed != len(m.Pairs) {
		m.reindex()
	}
	if i, ok := m.index[key]; ok {
		m.Pairs[i].Value = v
		return
	}
	m.Pairs = append(m.Pairs, Pair{Key: key, Value: v})
	m.index[key] = len(m.Pairs) - 1
	m.indexed = len(m.Pairs)
}

func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.lookup(key)
	if !ok {
		return nil, false
	}
	return m.Pairs[i].Value, true
}

// Keys returns the mapping keys in document order.
func (m *Mapping) Keys() []string {
	return lo.Map(m.Pairs, func(p Pair, _ int) string { return p.Key })
}

// =========================
// Safe Access Helpers
// =========================

// Get walks root by mapping key or decimal sequence index.
func Get(root Node, path ...string) (Node, bool) {
	cur := root
	for _, p := range path {
		if len(p) == 0 {
			continue
		}
		switch c := cur.(type) {
		case *Mapping:
			n, ok := c.Get(p)
			if !ok {
				return nil, false
			}
			cur = n
		case *Sequence:
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(c.Elems) {
				return nil, false
			}
			cur = c.Elems[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

func GetUntyped(root Node, path ...string) (any, bool) {
	n, ok := Get(root, path...)
	if !ok {
		return nil, false
	}
	return ToUntyped(n), true
}

// ToUntyped converts n into plain Go values. Numbers, durations and the
// SQL null sentinel keep their package types since Go has no plain
// equivalent for them.
func ToUntyped(n Node) any {
	switch v := n.(type) {
	case *Sequence:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = ToUntyped(v.Elems[i])
		}
		return out
	case *Mapping:
		m := make(map[string]any, len(v.Pairs))
		for _, p := range v.Pairs {
			m[p.Key] = ToUntyped(p.Value)
		}
		return m
	case *Timestamp:
		return v.Time
	case nil:
		return nil
	default:
		return v.Value()
	}
}

// FromUntyped converts plain Go values into a Node tree. Map keys are
// sorted so the result is deterministic.
func FromUntyped(v any) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Node:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return Int(x), nil
	case uint:
		return fromUnsigned(uint64(x)), nil
	case uint64:
		return fromUnsigned(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Binary(x), nil
	case time.Time:
		return &Timestamp{Time: x}, nil
	case time.Duration:
		return DurationFromStd(x), nil
	case []string:
		seq := &Sequence{Elems: make([]Node, 0, len(x))}
		for _, s := range x {
			seq.Elems = append(seq.Elems, String(s))
		}
		return seq, nil
	case []any:
		seq := &Sequence{Elems: make([]Node, 0, len(x))}
		for i, e := range x {
			n, err := FromUntyped(e)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			seq.Elems = append(seq.Elems, n)
		}
		return seq, nil
	case map[string]string:
		keys := lo.Keys(x)
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, String(x[k]))
		}
		return m, nil
	case map[string]any:
		keys := lo.Keys(x)
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			n, err := FromUntyped(x[k])
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			m.Set(k, n)
		}
		return m, nil
	default:
		return nil, errors.Errorf("cannot convert Go type '%T' to YAML", v)
	}
}

// uint64 values above the int64 range become lossless numbers.
func fromUnsigned(u uint64) Node {
	if u > 1<<63-1 {
		return &Decimal{Digits: strconv.FormatUint(u, 10)}
	}
	return Int(int64(u))
}

func MustString(n Node) string {
	return string(n.(String))
}

func MustInt(n Node) int64 {
	return int64(n.(Int))
}
