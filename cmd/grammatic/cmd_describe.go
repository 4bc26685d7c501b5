package main

import (
	"github.com/spf13/cobra"

	"github.com/ava12/grammatic/describe"
)

func (a *app) describeCmd() *cobra.Command {
	var (
		wrap, indent  int
		align, expand bool
		special       string
	)

	cmd := &cobra.Command{
		Use:   "describe <grammar>",
		Short: "Print EBNF-like description of grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.cfg.Describe
			flags := cmd.Flags()
			if flags.Changed("wrap") {
				d.Wrap = wrap
			}
			if flags.Changed("indent") {
				d.Indent = indent
			}
			if flags.Changed("align") {
				d.Align = align
			}
			if flags.Changed("expand-terminals") {
				d.ExpandTerminals = expand
			}
			if flags.Changed("special") {
				d.Special = special
			}

			style, e := describe.ParseSpecialStyle(d.Special)
			if e != nil {
				return e
			}
			g, root, e := a.loadGrammar(args[0])
			if e != nil {
				return e
			}

			return describe.Fprint(cmd.OutOrStdout(), g, root,
				describe.Wrap(d.Wrap),
				describe.Indent(d.Indent),
				describe.Align(d.Align),
				describe.ExpandTerminals(d.ExpandTerminals),
				describe.Special(style),
			)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&wrap, "wrap", 80, "wrap lines at this width, 0 disables wrapping")
	flags.IntVar(&indent, "indent", describe.AutoIndent, "indentation of wrapped lines, negative for auto")
	flags.BoolVar(&align, "align", true, "align right-hand sides of rules")
	flags.BoolVar(&expand, "expand-terminals", false, "describe named terminal productions too")
	flags.StringVar(&special, "special", "desc", "special sequence style: desc, name, or details")
	return cmd
}
