package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Fepozopo/snapedit/pkg/cli"
	"github.com/Fepozopo/snapedit/pkg/config"
	"github.com/Fepozopo/snapedit/pkg/editor"
	"github.com/Fepozopo/snapedit/pkg/history"
	"github.com/Fepozopo/snapedit/pkg/logging"
	"github.com/Fepozopo/snapedit/pkg/store"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("snapedit", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	showVersion := fs.Bool("version", false, "print version and exit")
	noPreview := fs.Bool("no-preview", false, "disable terminal image preview")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: snapedit [flags] [image]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println(cli.VersionString())
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	log, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	session := editor.NewSession(store.New(cfg.StoreOptions()), history.New(cfg.History.MaxDepth), log)
	log.WithField("session", session.ID()).Debug("session started")

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	var previewer *cli.Previewer
	if cfg.Preview.Enabled && !*noPreview && isatty.IsTerminal(os.Stdout.Fd()) {
		previewer = cli.NewPreviewer(os.Stdout, cfg.Preview.Backend, log)
	}
	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr, session, previewer, log)
	app.UseFzf = interactive && cli.FzfAvailable()

	if fs.NArg() > 0 {
		path := fs.Arg(0)
		if err := session.Open(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", path, err)
			return 1
		}
		app.Refresh()
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}
