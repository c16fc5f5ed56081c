// Package main is the entry point for the actkit command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/internal/app"
	"github.com/dshills/actkit/toolkit"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("actkit", flag.ContinueOnError)
	global.SetOutput(stderr)

	var (
		opts        app.Options
		showVersion bool
	)
	global.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	global.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	global.StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	global.BoolVar(&showVersion, "version", false, "Show version information")
	global.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	global.Usage = func() { usage(global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "actkit %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(global)
		return 2
	}

	var err error
	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "check":
		err = runCheck(opts, cmdArgs, stdout, stderr)
	case "inspect":
		err = runInspect(opts, cmdArgs, stdout, stderr)
	case "preview":
		err = runPreview(opts, cmdArgs, stderr)
	case "types":
		err = runTypes(opts, cmdArgs, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmd)
		usage(global)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "actkit - declarative widget layouts\n\n")
	fmt.Fprintf(out, "Usage: actkit [options] <command> [arguments]\n\n")
	fmt.Fprintf(out, "Commands:\n")
	fmt.Fprintf(out, "  check [-script file] layout      Build a layout and report errors\n")
	fmt.Fprintf(out, "  inspect [-script file] layout    Print the built widget tree as JSON\n")
	fmt.Fprintf(out, "  preview [-script file] [-watch] layout\n")
	fmt.Fprintf(out, "                                   Show a layout in the terminal\n")
	fmt.Fprintf(out, "  types [type]                     List widget types or the actions of one\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
}

// layoutFlags parses the flags shared by the layout commands.
func layoutFlags(name string, opts *app.Options, args []string, stderr io.Writer, extra func(*flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Script, "script", "", "Lua file providing callbacks")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Usage: actkit %s [options] layout\n", name)
		fs.PrintDefaults()
		return errUsage
	}
	opts.Layout = fs.Arg(0)
	return nil
}

func load(opts app.Options) (*app.Application, error) {
	a, err := app.New(opts)
	if err != nil {
		return nil, err
	}
	if _, err := a.Load(); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

func runCheck(opts app.Options, args []string, stdout, stderr io.Writer) error {
	if err := layoutFlags("check", &opts, args, stderr, nil); err != nil {
		return err
	}
	a, err := load(opts)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	fmt.Fprintf(stdout, "%s: ok, %d widgets, %d dispatches\n",
		opts.Layout, a.Tree().Len(), len(a.Audit().Records()))
	if snap, ok := a.Metrics(); ok {
		fmt.Fprintf(stdout, "dispatch time: total %s, average %s\n", snap.TotalDuration, snap.AverageDuration)
	}
	return nil
}

func runInspect(opts app.Options, args []string, stdout, stderr io.Writer) error {
	if err := layoutFlags("inspect", &opts, args, stderr, nil); err != nil {
		return err
	}
	a, err := load(opts)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	out, err := a.Describe()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func runPreview(opts app.Options, args []string, stderr io.Writer) error {
	var watchFiles bool
	err := layoutFlags("preview", &opts, args, stderr, func(fs *flag.FlagSet) {
		fs.BoolVar(&watchFiles, "watch", false, "Rebuild when the layout or script changes")
	})
	if err != nil {
		return err
	}
	a, err := load(opts)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Preview(ctx, screen, watchFiles)
}

func runTypes(opts app.Options, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := app.New(opts)
	if err != nil {
		return err
	}
	defer a.Shutdown()
	table := a.Engine().Table()

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if fs.NArg() == 0 {
		fmt.Fprintln(tw, "TYPE\tPARENT\tHANDLERS")
		for _, t := range table.Types() {
			plan, _ := table.Plan(t)
			fmt.Fprintf(tw, "%s\t%s\t%d\n", t.Name(), parentName(t), len(plan))
		}
		for _, c := range table.Capabilities() {
			fmt.Fprintf(tw, "%s\t(capability)\t1\n", c.Name())
		}
		return nil
	}

	t, ok := toolkit.Lookup(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown type %q", fs.Arg(0))
	}
	if _, ok := table.Plan(t); !ok {
		return fmt.Errorf("type %s has no handlers", t.Name())
	}
	fmt.Fprintln(tw, "ACTION\tKIND\tHANDLER\tMETHOD")
	for _, info := range table.Actions(t) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Kind, info.Handler.Name(), method(info))
	}
	return nil
}

func parentName(t *toolkit.Type) string {
	if p := t.Parent(); p != nil {
		return p.Name()
	}
	return "-"
}

func method(info dispatcher.ActionInfo) string {
	if info.Method == "" {
		return "-"
	}
	return info.Method
}
