/*
grammatic is a console utility working with grammars written in Go-style EBNF
(see langdef package). Usage is

	grammatic [--config <file>] [-v...] <command> <grammar file> [args]

Commands are:

	check     load and verify grammar;
	describe  print EBNF-like description of the loaded grammar;
	dump      print loaded grammar nodes;
	parse     parse files with the grammar and print parse trees.

Settings are read from optional YAML file, GRAMMATIC_* environment variables, and flags.

Exit codes are:

	1: wrong arguments, settings, or file access error;
	2: invalid grammar;
	3: input does not match grammar;
	4: internal parser error.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ava12/grammatic"
	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/internal/config"
	"github.com/ava12/grammatic/langdef"
)

var log = commonlog.GetLogger("grammatic.cmd")

type app struct {
	configPath string
	verbose    int
	logPath    string
	start      string
	cfg        *config.Config
}

func main() {
	a := &app{}
	if e := a.rootCmd().Execute(); e != nil {
		fmt.Fprintln(os.Stderr, e)
		os.Exit(exitCode(e))
	}
}

func exitCode(e error) int {
	switch grammatic.ErrorClass(e) {
	case grammatic.DefinitionErrors, grammatic.ReferenceErrors, grammatic.LoaderErrors:
		if grammatic.ErrorCode(e) != langdef.ReadError {
			return 2
		}
	case grammatic.ParseErrors:
		return 3
	case grammatic.InternalErrors:
		return 4
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	var envHelp strings.Builder
	envHelp.WriteString("Environment variables:\n")
	for _, v := range config.EnvVars {
		fmt.Fprintf(&envHelp, "  %-20s %s\n", v.Name, v.Description)
	}

	cmd := &cobra.Command{
		Use:               "grammatic",
		Short:             "Grammar tools",
		Long:              "Checks, describes, and dumps grammars written in Go-style EBNF, parses files with them.\n\n" + envHelp.String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML settings file")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logPath, "log", "", "log file path (default stderr)")
	flags.StringVar(&a.start, "start", "", "start production name (default is the first one)")

	cmd.AddCommand(a.checkCmd())
	cmd.AddCommand(a.describeCmd())
	cmd.AddCommand(a.dumpCmd())
	cmd.AddCommand(a.parseCmd())
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, e := config.Load(a.configPath)
	if e != nil {
		return e
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("log") {
		cfg.Log = a.logPath
	}
	if flags.Changed("start") {
		cfg.Start = a.start
	}
	a.cfg = cfg

	if cfg.Log == "" {
		commonlog.Configure(cfg.Verbose, nil)
	} else {
		commonlog.Configure(cfg.Verbose, &cfg.Log)
	}
	log.Debugf("settings: %+v", *cfg)
	return nil
}

func (a *app) loadGrammar(path string) (*grammar.Grammar, grammar.ID, error) {
	var opts []langdef.Option
	if a.cfg.Start != "" {
		opts = append(opts, langdef.Start(a.cfg.Start))
	}
	if a.cfg.Whitespace != "" {
		ws, e := grammar.NewWhitespace(a.cfg.Whitespace)
		if e != nil {
			return nil, grammar.NoNode, e
		}
		opts = append(opts, langdef.Whitespace(ws))
	}

	g, root, e := langdef.ParseFile(path, opts...)
	if e != nil {
		return nil, grammar.NoNode, e
	}
	log.Infof("%s: %d nodes, start: %s", path, g.Len(), g.Node(root).Name)
	return g, root, nil
}
