package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

const _usage = `usage: treepaint -theme THEME [options] FILE

Renders FILE as a syntax-highlighted HTML page on stdout.

Options:
  -theme path   theme description (TOML); required.
                Themes named by 'inherits' keys resolve against
                sibling .toml files of this path.
  -out path     write the page to path instead of stdout.
  -lang name    language to highlight; guessed from FILE if omitted.
  -version      report the version and exit.

Every flag may also be set with a TREEPAINT_* environment variable,
e.g. TREEPAINT_THEME.
`

// params holds all arguments for treepaint.
type params struct {
	version bool

	Theme string
	Out   string
	Lang  string

	File string
}

// cliParser parses the command line arguments for treepaint.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	fset := flag.NewFlagSet("treepaint", flag.ContinueOnError)
	fset.SetOutput(cmd.Stderr)
	fset.Usage = func() {
		fmt.Fprint(cmd.Stderr, _usage)
	}

	var p params
	fset.StringVar(&p.Theme, "theme", "", "")
	fset.StringVar(&p.Out, "out", "", "")
	fset.StringVar(&p.Lang, "lang", "", "")
	fset.BoolVar(&p.version, "version", false, "")

	return &p, fset
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, fset := cmd.newFlagSet()
	if err := ff.Parse(fset, args, ff.WithEnvVarPrefix("TREEPAINT")); err != nil {
		return nil, err
	}

	if p.version {
		fmt.Fprintln(cmd.Stdout, "treepaint", _version)
		return nil, errHelp
	}

	args = fset.Args()
	switch {
	case len(args) == 0:
		fmt.Fprintln(cmd.Stderr, "Please provide a source file.")
		fset.Usage()
		return nil, errInvalidArguments
	case len(args) > 1:
		fmt.Fprintf(cmd.Stderr, "Too many arguments: %q.\n", args)
		fset.Usage()
		return nil, errInvalidArguments
	}
	p.File = args[0]

	if p.Theme == "" {
		fmt.Fprintln(cmd.Stderr, "Please provide a theme with -theme.")
		fset.Usage()
		return nil, errInvalidArguments
	}

	return p, nil
}
