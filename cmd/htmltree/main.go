// Command htmltree is a small demo around the htmltree library: it is not
// part of the library's public surface (§6 scopes that to the parse/
// serialize/guard functions), just a convenient way to exercise it from a
// terminal the way preslavrachev-gomjml's cmd/ wraps its mjml library.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markuplab/htmltree"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "htmltree",
		Short: "Parse and serialize HTML fragments",
	}
	root.AddCommand(newParseCmd(), newFormatCmd())
	return root
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse HTML and print the node tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			nodes, err := htmltree.ParseFragments(input)
			if err != nil {
				return err
			}
			for _, n := range nodes {
				dump(cmd.OutOrStdout(), n, 0)
			}
			return nil
		},
	}
}

func newFormatCmd() *cobra.Command {
	var removeComments bool
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Parse HTML then serialize it back out",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			nodes, err := htmltree.ParseFragments(input)
			if err != nil {
				return err
			}
			out := htmltree.SerializeFragments(nodes, htmltree.SerializeOptions{RemoveComments: removeComments})
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&removeComments, "remove-comments", false, "drop comments while serializing")
	return cmd
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func dump(w io.Writer, n *htmltree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case htmltree.IsTextNode(n):
		fmt.Fprintf(w, "%s#text %q\n", indent, n.Text)
	case htmltree.IsCommentNode(n):
		fmt.Fprintf(w, "%s#comment %q\n", indent, n.Text)
	case htmltree.IsCDATANode(n):
		fmt.Fprintf(w, "%s#cdata %q\n", indent, n.Text)
	case htmltree.IsElementNode(n):
		fmt.Fprintf(w, "%s<%s> (%s)\n", indent, n.TagName, n.ElemKind)
		for _, c := range n.Children {
			dump(w, c, depth+1)
		}
	}
}
