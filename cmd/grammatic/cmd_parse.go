package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/parser"
	"github.com/ava12/grammatic/tree"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		matchType string
		tabs      int
		jobs      int
		tokens    bool
	)

	cmd := &cobra.Command{
		Use:   "parse <grammar> <file>...",
		Short: "Parse files with grammar and print parse trees",
		Long:  "Parses each file with its own parser; files are parsed concurrently, output keeps file order.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("match") {
				a.cfg.MatchType = matchType
			}
			if flags.Changed("tabs") {
				a.cfg.Tabs = tabs
			}

			mt, e := parser.ParseMatchType(a.cfg.MatchType)
			if e != nil {
				return e
			}
			g, root, e := a.loadGrammar(args[0])
			if e != nil {
				return e
			}

			files := args[1:]
			outputs := make([]bytes.Buffer, len(files))
			eg, ctx := errgroup.WithContext(cmd.Context())
			if jobs > 0 {
				eg.SetLimit(jobs)
			}
			for i, name := range files {
				eg.Go(func() error {
					return parseFile(ctx, &outputs[i], g, root, name, tokens,
						parser.WithMatchType(mt),
						parser.WithTabs(a.cfg.Tabs),
					)
				})
			}

			e = eg.Wait()
			out := cmd.OutOrStdout()
			for i := range outputs {
				if _, we := out.Write(outputs[i].Bytes()); we != nil && e == nil {
					e = we
				}
			}
			return e
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&matchType, "match", "m", "first", "match type: first, last, longest, shortest, or all")
	flags.IntVar(&tabs, "tabs", 1, "tab stop width for column counting")
	flags.IntVarP(&jobs, "jobs", "j", 0, "maximum number of files parsed at once, 0 for no limit")
	flags.BoolVarP(&tokens, "tokens", "t", false, "print terminal texts instead of parse trees")
	return cmd
}

func parseFile(ctx context.Context, out io.Writer, g *grammar.Grammar, root grammar.ID, name string, tokens bool, opts ...parser.Option) error {
	p, e := parser.New(g, root, opts...)
	if e != nil {
		return e
	}

	count := 0
	e = p.ParseFile(name, func(r *parser.Result) error {
		if e := ctx.Err(); e != nil {
			return e
		}

		count++
		fmt.Fprintf(out, "%s: match #%d, %d bytes\n", name, count, r.Len)
		if len(r.All) > 0 {
			for i, sub := range r.All {
				fmt.Fprintf(out, "  variant #%d, %d bytes\n", i+1, sub.Len)
				printNodes(out, sub.Nodes, tokens)
			}
		} else {
			printNodes(out, r.Nodes, tokens)
		}
		return nil
	})
	if e != nil {
		return e
	}

	log.Infof("%s: %d matches", name, count)
	return nil
}

func printNodes(out io.Writer, nodes []*tree.Node, tokens bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}

		if tokens {
			ts := n.Tokens()
			for i, t := range ts {
				ts[i] = grammar.Quote(t)
			}
			fmt.Fprintln(out, "  "+strings.Join(ts, " "))
			continue
		}

		base := tree.NodeLevel(n)
		tree.Walk(n, tree.WalkLtr, func(c *tree.Node) (bool, bool) {
			indent := strings.Repeat("  ", tree.NodeLevel(c)-base+1)
			if c.IsTerminal() {
				fmt.Fprintf(out, "%s%s %s\n", indent, c.Name(), grammar.Quote(c.Text()))
				return false, true
			}
			fmt.Fprintf(out, "%s%s\n", indent, c.Name())
			return true, true
		})
	}
}
