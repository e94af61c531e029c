// treepaint renders source code into syntax-highlighted HTML,
// styled by a TOML theme description.
//
//	treepaint -theme theme.toml [-out page.html] [-lang go] FILE
//
// The output is a standalone page:
// the theme's stylesheet in a <style> block,
// and one table row per source line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/lex"
	"go.abhg.dev/treepaint/internal/render"
	"go.abhg.dev/treepaint/internal/theme"
)

var _version = "0.1.0-dev"

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("treepaint: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	themeData, err := os.ReadFile(opts.Theme)
	if err != nil {
		return errtrace.Wrap(err)
	}

	// Themes named by inherits keys resolve
	// against sibling files of the given theme.
	themeDir := filepath.Dir(opts.Theme)
	loader := theme.Loader{
		Open: func(name string) ([]byte, error) {
			return errtrace.Wrap2(os.ReadFile(filepath.Join(themeDir, name+".toml")))
		},
	}

	th, err := loader.Load(themeData)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("load theme %v: %w", opts.Theme, err))
	}

	lexer, err := cmd.lexer(opts)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(opts.File)
	if err != nil {
		return errtrace.Wrap(err)
	}

	caps, err := lexer.Captures(src)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("lex %v: %w", opts.File, err))
	}

	lines, err := (&render.Renderer{Theme: th}).Render(src, caps)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("render %v: %w", opts.File, err))
	}

	out := cmd.Stdout
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return errtrace.Wrap(err)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		out = f
	}

	return writePage(out, th, filepath.Base(opts.File), lines)
}

func (cmd *mainCmd) lexer(opts *params) (lex.Lexer, error) {
	if opts.Lang != "" {
		l, ok := lex.Get(opts.Lang)
		if !ok {
			return nil, errtrace.Wrap(fmt.Errorf("unknown language %q", opts.Lang))
		}
		return l, nil
	}

	l, ok := lex.Match(opts.File)
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("cannot determine language of %v; use -lang", opts.File))
	}
	return l, nil
}
