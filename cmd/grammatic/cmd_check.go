package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <grammar>",
		Short: "Load and verify grammar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, root, e := a.loadGrammar(args[0])
			if e != nil {
				return e
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions, start: %s\n", args[0], len(g.Names()), g.Node(root).Name)
			return nil
		},
	}
}
