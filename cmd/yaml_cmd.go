package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dzjyyds666/qyaml/parse/yaml"
	"github.com/dzjyyds666/qyaml/pkg"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type ParseParams struct {
	Find  string `json:"find"`  // 查找的key, 以 . 分隔
	Input string `json:"input"` // 输入文件路径
}

type FmtParams struct {
	Input       string `json:"input"`  // 输入文件路径
	Output      string `json:"output"` // 输出文件地址
	Canonical   bool   `json:"canonical"`
	Block       bool   `json:"block"`
	Indent      int    `json:"indent"`
	FoldSQLNull bool   `json:"fold_sqlnull"`
}

type ScalarParams struct {
	Tag   string `json:"tag"`
	Style string `json:"style"`
}

var styles = []yaml.Style{
	yaml.PlainStyle,
	yaml.SingleQuotedStyle,
	yaml.DoubleQuotedStyle,
	yaml.LiteralStyle,
	yaml.FoldedStyle,
}

// =========================
// parse
// =========================

func (a *app) newParseCmd() *cobra.Command {
	params := &ParseParams{}
	c := &cobra.Command{
		Use:   "parse",
		Short: "Print every typed leaf of a YAML document",
		Long: "Print every leaf of a YAML document as path, kind and value separated by tabs. " +
			"Paths join mapping keys and sequence indexes with dots.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.parseRun(cmd, params)
		},
	}
	c.Flags().StringVarP(&params.Find, "find", "f", "", "only print the value at this path")
	c.Flags().StringVarP(&params.Input, "input", "i", "", "input file path, stdin when empty")
	return c
}

func (a *app) parseRun(cmd *cobra.Command, params *ParseParams) error {
	data, err := pkg.ReadInput(params.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	root, err := yaml.Unmarshal(data, yaml.WithLogger(a.logger))
	if err != nil {
		return err
	}

	path := ""
	if params.Find != "" {
		n, ok := yaml.Get(root, strings.Split(params.Find, ".")...)
		if !ok {
			return errors.Errorf("path '%s' not found", params.Find)
		}
		root, path = n, params.Find
	}
	return printLeaves(cmd.OutOrStdout(), yaml.NewEncoder(), path, root)
}

func joinPath(prefix, elem string) string {
	if prefix == "" {
		return elem
	}
	return prefix + "." + elem
}

func printLeaves(w io.Writer, enc *yaml.Encoder, path string, n yaml.Node) error {
	switch v := n.(type) {
	case *yaml.Sequence:
		if len(v.Elems) == 0 {
			_, err := fmt.Fprintf(w, "%s\t%s\t[]\n", path, v.Kind())
			return err
		}
		for i, e := range v.Elems {
			if err := printLeaves(w, enc, joinPath(path, strconv.Itoa(i)), e); err != nil {
				return err
			}
		}
		return nil
	case *yaml.Mapping:
		if v.Len() == 0 {
			_, err := fmt.Fprintf(w, "%s\t%s\t{}\n", path, v.Kind())
			return err
		}
		for _, p := range v.Pairs {
			if err := printLeaves(w, enc, joinPath(path, p.Key), p.Value); err != nil {
				return err
			}
		}
		return nil
	}
	s, err := enc.EncodeScalar(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", path, n.Kind(), s.Text)
	return err
}

// =========================
// fmt
// =========================

func (a *app) newFmtCmd() *cobra.Command {
	params := &FmtParams{}
	c := &cobra.Command{
		Use:   "fmt",
		Short: "Re-emit a YAML document with canonical scalars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fmtRun(cmd, params)
		},
	}
	c.Flags().StringVarP(&params.Input, "input", "i", "", "input file path, stdin when empty")
	c.Flags().StringVarP(&params.Output, "output", "o", "", "output path, stdout when empty")
	c.Flags().BoolVar(&params.Canonical, "canonical", false, "full timestamps and explicit tags on every scalar")
	c.Flags().BoolVar(&params.Block, "block", false, "block style collections")
	c.Flags().IntVar(&params.Indent, "indent", 2, "indentation width")
	c.Flags().BoolVar(&params.FoldSQLNull, "fold-sqlnull", false, "write SQL nulls as plain null")
	return c
}

func (a *app) fmtRun(cmd *cobra.Command, params *FmtParams) error {
	data, err := pkg.ReadInput(params.Input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	root, err := yaml.Unmarshal(data, yaml.WithLogger(a.logger))
	if err != nil {
		return err
	}

	opts := []yaml.Option{yaml.WithLogger(a.logger), yaml.WithIndent(params.Indent)}
	if params.Canonical {
		opts = append(opts, yaml.WithCanonical())
	}
	if params.Block {
		opts = append(opts, yaml.WithBlockStyle())
	}
	if params.FoldSQLNull {
		opts = append(opts, yaml.WithFoldSQLNull())
	}
	return pkg.WriteOutput(params.Output, cmd.OutOrStdout(), func(w io.Writer) error {
		return yaml.Emit(w, root, opts...)
	})
}

// =========================
// scalar
// =========================

func (a *app) newScalarCmd() *cobra.Command {
	params := &ScalarParams{}
	c := &cobra.Command{
		Use:   "scalar TEXT",
		Short: "Resolve one scalar and show its type and encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scalarRun(cmd, params, args[0])
		},
	}
	c.Flags().StringVarP(&params.Tag, "tag", "t", "", "explicit tag, e.g. !!int or !duration")
	c.Flags().StringVarP(&params.Style, "style", "s", "plain",
		"quoting style: "+strings.Join(lo.Map(styles, func(s yaml.Style, _ int) string { return s.String() }), ", "))
	return c
}

func (a *app) scalarRun(cmd *cobra.Command, params *ScalarParams, text string) error {
	style, ok := yaml.ParseStyle(params.Style)
	if !ok || !lo.Contains(styles, style) {
		return errors.Errorf("unknown style '%s'", params.Style)
	}
	s := yaml.Scalar{Text: text, Tag: params.Tag, Style: style}
	s.PlainImplicit = !s.Tagged()
	s.QuotedImplicit = !s.Tagged()

	n, err := yaml.NewResolver(yaml.WithLogger(a.logger)).Resolve(s, false)
	if err != nil {
		return err
	}
	out, err := yaml.NewEncoder().EncodeScalar(n)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "kind:  %s\n", n.Kind())
	fmt.Fprintf(w, "value: %v\n", yaml.ToUntyped(n))
	fmt.Fprintf(w, "tag:   %s\n", out.Tag)
	fmt.Fprintf(w, "text:  %s\n", out.Text)
	return nil
}
