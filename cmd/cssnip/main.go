package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssnip/config"
	"cssnip/misc"
	"cssnip/registry"
	"cssnip/snippet"
	"cssnip/state"
)

// initializeAppContext prepares application context before command execution
// but after command line has been parsed: configuration, logging, debug
// reporting and the resolved snippet registry.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData("config/effective.yaml", data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}

	defs, err := env.Cfg.Snippets.Definitions(env.DefaultSnippets)
	if err != nil {
		return ctx, fmt.Errorf("unable to load snippet tables: %w", err)
	}
	if env.Rpt != nil {
		if data, err := config.DumpTable(defs); err == nil {
			env.Rpt.StoreData("snippets/merged.yaml", data)
		}
	}

	// bad definitions do not prevent the rest of the registry from working,
	// report them individually and continue
	env.Reg, err = registry.New(env.Log, defs)
	for _, e := range multierr.Errors(err) {
		env.Log.Warn("Ignoring bad snippet definition", zap.Error(e))
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	return
}

// Ignore urfave/cli default error handling - cli.Exit() looks non-transparent
// and unnecessary, subcommands return regular errors.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "resolves CSS snippet tables for abbreviation expansion",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "list",
				Usage:        "Lists resolved snippets in resolution order",
				OnUsageError: usageErrorHandler,
				Action:       listSnippets,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "only show snippets of `KIND` (" + snippet.KindRaw.String() + " or " + snippet.KindProperty.String() + ")"},
				},
			},
			{
				Name:         "keywords",
				Usage:        "Shows keywords reachable from a snippet, including its longhand properties",
				OnUsageError: usageErrorHandler,
				Action:       showKeywords,
				ArgsUsage:    "KEY [KEY...]",
			},
			{
				Name:         "tree",
				Usage:        "Shows shorthand to longhand property dependency forest",
				OnUsageError: usageErrorHandler,
				Action:       showTree,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func listSnippets(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	var only snippet.Kind
	filtered := len(cmd.String("kind")) > 0
	if filtered {
		var err error
		if only, err = snippet.ParseKind(cmd.String("kind")); err != nil {
			return fmt.Errorf("bad kind filter: %w", err)
		}
	}

	for _, s := range env.Reg.All() {
		if filtered && s.Kind != only {
			continue
		}
		switch s.Kind {
		case snippet.KindProperty:
			fmt.Printf("%-8s %-8s %s (%d alternatives, %d dependencies)\n", s.Key, s.Kind, s.Property, len(s.Values), len(s.Dependencies()))
		default:
			fmt.Printf("%-8s %-8s %q\n", s.Key, s.Kind, s.Value)
		}
	}
	env.Log.Debug("Listed snippets", zap.Int("count", env.Reg.Len()))
	return nil
}

func showKeywords(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no snippet keys requested")
	}

	for _, key := range cmd.Args().Slice() {
		refs, ok := env.Reg.Keywords(key)
		if !ok {
			return fmt.Errorf("unknown snippet key '%s'", key)
		}
		fmt.Printf("%s:\n", key)
		for _, ref := range refs {
			fmt.Printf("\t%s (alternative %d)\n", ref.Keyword, ref.Index)
		}
		if len(refs) == 0 {
			fmt.Printf("\t(no keywords)\n")
		}
	}
	return nil
}

func showTree(ctx context.Context, _ *cli.Command) error {

	env := state.EnvFromContext(ctx)

	// dependency graphs built by nesting are acyclic, but malformed input is
	// tolerated elsewhere so keep printing cycle-safe too
	seen := make(map[*snippet.Snippet]struct{})
	var dump func(s *snippet.Snippet, depth int)
	dump = func(s *snippet.Snippet, depth int) {
		for range depth {
			fmt.Print("\t")
		}
		fmt.Printf("%s (%s)\n", s.Property, s.Key)
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		for _, dep := range s.Dependencies() {
			dump(dep, depth+1)
		}
	}
	for _, root := range env.Reg.Roots() {
		dump(root, 0)
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
