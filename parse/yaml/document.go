package yaml

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	yamlv3 "gopkg.in/yaml.v3"
)

// =========================
// Document Parsing
// =========================

// Parse reads exactly one YAML document from r and types every scalar in
// it. Empty input is Null; a second document is ErrMultipleDocuments.
func Parse(r io.Reader, opts ...Option) (Node, error) {
	c := newConfig(opts)
	dec := yamlv3.NewDecoder(r)

	var doc yamlv3.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			c.logger.Debug("empty YAML input")
			return Null{}, nil
		}
		return nil, errors.Wrap(err, "cannot read YAML document")
	}
	var extra yamlv3.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, ErrMultipleDocuments
	case !errors.Is(err, io.EOF):
		return nil, errors.Wrap(err, "cannot read YAML document")
	}

	w := &walker{res: newResolver(c), enc: newEncoder(c), expanding: make(map[*yamlv3.Node]bool)}
	n, err := w.node(&doc, false)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("parsed YAML document", zap.String("kind", string(n.Kind())))
	return n, nil
}

func Unmarshal(data []byte, opts ...Option) (Node, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// Alias expansion is limited by the share of nodes it produces, which
// keeps the work proportional to the input size.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

func allowedAliasRatio(walked int) float64 {
	switch {
	case walked <= aliasRatioRangeLow:
		return 0.99
	case walked >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(walked-aliasRatioRangeLow)/aliasRatioRange)
	}
}

type walker struct {
	res *Resolver
	enc *Encoder
	// aliases currently being expanded
	expanding map[*yamlv3.Node]bool

	walked     int
	aliased    int
	aliasDepth int
}

// errf prefixes err with the source line, like yaml.v3's own messages.
func errf(yn *yamlv3.Node, err error) error {
	return errors.WithMessagef(err, "yaml: line %d", yn.Line)
}

func (w *walker) node(yn *yamlv3.Node, favorString bool) (Node, error) {
	w.walked++
	if w.aliasDepth > 0 {
		w.aliased++
	}
	if w.aliased > 100 && w.walked > 1000 && float64(w.aliased)/float64(w.walked) > allowedAliasRatio(w.walked) {
		return nil, errf(yn, ErrExcessiveAliasing)
	}

	switch yn.Kind {
	case yamlv3.DocumentNode:
		if len(yn.Content) == 0 {
			return Null{}, nil
		}
		return w.node(yn.Content[0], false)

	case yamlv3.SequenceNode:
		seq := &Sequence{Elems: make([]Node, 0, len(yn.Content))}
		for _, c := range yn.Content {
			n, err := w.node(c, false)
			if err != nil {
				return nil, err
			}
			seq.Elems = append(seq.Elems, n)
		}
		return seq, nil

	case yamlv3.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(yn.Content); i += 2 {
			key, err := w.key(yn.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := w.node(yn.Content[i+1], false)
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil

	case yamlv3.ScalarNode:
		n, err := w.res.Resolve(scalarOf(yn), favorString)
		if err != nil {
			return nil, errf(yn, err)
		}
		return n, nil

	case yamlv3.AliasNode:
		if w.expanding[yn] {
			return nil, errf(yn, errors.Errorf("anchor '%s' value contains itself", yn.Value))
		}
		w.expanding[yn] = true
		w.aliasDepth++
		defer func() {
			delete(w.expanding, yn)
			w.aliasDepth--
		}()
		return w.node(yn.Alias, favorString)
	}
	return nil, errf(yn, errors.Errorf("unexpected node kind %d", yn.Kind))
}

// key resolves a mapping key. Keys are read favoring strings; a key that
// still types as something else is converted through its encoded text.
func (w *walker) key(yn *yamlv3.Node) (string, error) {
	n, err := w.node(yn, true)
	if err != nil {
		return "", err
	}
	switch v := n.(type) {
	case String:
		return string(v), nil
	case *Sequence, *Mapping:
		return "", errf(yn, errors.Errorf("invalid %s used as a mapping key", n.Kind()))
	}
	s, err := w.enc.EncodeScalar(n)
	if err != nil {
		return "", errf(yn, err)
	}
	return s.Text, nil
}

// scalarOf converts a yaml.v3 scalar node. yaml.v3 fills in a resolved tag
// for untagged nodes; only tags written in the source count here.
func scalarOf(yn *yamlv3.Node) Scalar {
	s := Scalar{Text: yn.Value, Style: PlainStyle, PlainImplicit: true, QuotedImplicit: true}
	switch {
	case yn.Style&yamlv3.DoubleQuotedStyle != 0:
		s.Style = DoubleQuotedStyle
	case yn.Style&yamlv3.SingleQuotedStyle != 0:
		s.Style = SingleQuotedStyle
	case yn.Style&yamlv3.LiteralStyle != 0:
		s.Style = LiteralStyle
	case yn.Style&yamlv3.FoldedStyle != 0:
		s.Style = FoldedStyle
	}
	if yn.Style&yamlv3.TaggedStyle != 0 {
		s.Tag = yn.Tag
		s.PlainImplicit, s.QuotedImplicit = false, false
	}
	return s
}

// =========================
// Document Emitting
// =========================

// Emit writes n as one YAML document. Collections use flow style unless
// WithBlockStyle is given.
func Emit(w io.Writer, n Node, opts ...Option) error {
	if n == nil {
		n = Null{}
	}
	c := newConfig(opts)
	b := &builder{enc: newEncoder(c), canonical: c.canonical, block: c.block}
	root, err := b.node(n)
	if err != nil {
		return err
	}

	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(c.indent)
	if err := enc.Encode(root); err != nil {
		return errors.Wrap(err, "cannot write YAML document")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "cannot write YAML document")
	}
	c.logger.Debug("emitted YAML document", zap.String("kind", string(n.Kind())),
		zap.Bool("canonical", c.canonical), zap.Bool("block", c.block))
	return nil
}

func Marshal(n Node, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Emit(&buf, n, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type builder struct {
	enc       *Encoder
	canonical bool
	block     bool
}

func (b *builder) collectionStyle() yamlv3.Style {
	if b.block {
		return 0
	}
	return yamlv3.FlowStyle
}

func (b *builder) node(n Node) (*yamlv3.Node, error) {
	switch v := n.(type) {
	case *Sequence:
		yn := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq", Style: b.collectionStyle()}
		for _, e := range v.Elems {
			c, err := b.node(e)
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, c)
		}
		return yn, nil

	case *Mapping:
		yn := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map", Style: b.collectionStyle()}
		for _, p := range v.Pairs {
			ks, err := b.enc.EncodeString(p.Key)
			if err != nil {
				return nil, err
			}
			// keys are always read back favoring strings, so no quoting is
			// forced on them
			ks.Style = AnyStyle
			c, err := b.node(p.Value)
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, b.scalar(ks), c)
		}
		return yn, nil
	}

	s, err := b.enc.EncodeScalar(n)
	if err != nil {
		return nil, err
	}
	return b.scalar(s), nil
}

func (b *builder) scalar(s Scalar) *yamlv3.Node {
	yn := &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: s.Tag, Value: s.Text}
	switch s.Style {
	case DoubleQuotedStyle:
		yn.Style = yamlv3.DoubleQuotedStyle
	case SingleQuotedStyle:
		yn.Style = yamlv3.SingleQuotedStyle
	case LiteralStyle:
		yn.Style = yamlv3.LiteralStyle
	case FoldedStyle:
		yn.Style = yamlv3.FoldedStyle
	}
	if !s.Implicit() || b.canonical {
		yn.Style |= yamlv3.TaggedStyle
	}
	return yn
}
