package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) dumpCmd() *cobra.Command {
	var depth int
	var hash bool

	cmd := &cobra.Command{
		Use:   "dump <grammar>",
		Short: "Print grammar nodes in constructor form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, e := a.loadGrammar(args[0])
			if e != nil {
				return e
			}

			out := cmd.OutOrStdout()
			for _, name := range g.Names() {
				id, _ := g.Lookup(name)
				n := g.Node(id)
				fmt.Fprintf(out, "%s #%d %s: %s\n", name, id, n.Kind, g.DetailsDepth(id, depth))
				if hash {
					fmt.Fprintf(out, "\thash: %016x\n", g.Hash(id))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", -1, "expand nested sequences at most this many levels, negative for no limit")
	cmd.Flags().BoolVar(&hash, "hash", false, "print structural hashes of nodes")
	return cmd
}
