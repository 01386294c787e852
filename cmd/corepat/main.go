// Package main is the entrypoint of corepat, a line search tool built on the
// corepat pattern engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/coregx/corepat"
	"github.com/coregx/corepat/simd"
)

// Exit statuses, as grep reports them.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// now is replaced in tests.
var now = time.Now

type options struct {
	anchored    bool
	utf8        bool
	onlyMatch   bool
	groups      bool
	canonical   bool
	interactive bool
	stats       bool
	noPrefilter bool
	timeFormat  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("corepat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.anchored, "a", false, "match at the start of each line only")
	fs.BoolVar(&opts.utf8, "u", false, "compile the pattern in UTF-8 mode")
	fs.BoolVar(&opts.onlyMatch, "o", false, "print only the matched part of each line")
	fs.BoolVar(&opts.groups, "g", false, "print the group tree of each match")
	fs.BoolVar(&opts.canonical, "c", false, "print the canonical pattern and exit")
	fs.BoolVar(&opts.interactive, "i", false, "read subjects interactively")
	fs.BoolVar(&opts.stats, "s", false, "print search statistics to stderr")
	fs.BoolVar(&opts.noPrefilter, "P", false, "disable the literal prefilter")
	fs.StringVar(&opts.timeFormat, "T", "", "prefix output lines with a strftime `format` timestamp")
	fs.Usage = func() {
		fmt.Fprint(stderr, "Usage: corepat [options] pattern [file...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	var stamp *strftime.Strftime
	if opts.timeFormat != "" {
		var err error
		if stamp, err = strftime.New(opts.timeFormat); err != nil {
			fmt.Fprintf(stderr, "invalid time format '%v': %v\n", opts.timeFormat, err)
			return exitError
		}
	}

	rest := fs.Args()
	if opts.interactive {
		pattern := ""
		if len(rest) > 0 {
			pattern = rest[0]
		}
		rl, err := newLineReader(stdin, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return exitError
		}
		defer func() { _ = rl.Close() }()
		return repl(rl, pattern, opts, stdout, stderr)
	}

	if len(rest) == 0 {
		fs.Usage()
		return exitError
	}
	p, err := compile(rest[0], opts)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitError
	}
	if opts.canonical {
		fmt.Fprintln(stdout, p.String())
		return exitMatch
	}

	s := &searcher{
		p:      p,
		opts:   opts,
		stamp:  stamp,
		stdout: stdout,
	}
	status := s.searchAll(rest[1:], stdin, stderr)
	if opts.stats {
		st := p.Stats()
		fmt.Fprintf(stderr, "strategy=%s finds=%d matches=%d attempts=%d candidates=%d misses=%d vector=%v\n",
			p.Strategy(), st.Finds, st.Matches, st.Attempts, st.PrefilterCandidates, st.PrefilterMisses,
			simd.HasVector())
	}
	return status
}

func compile(pattern string, opts options) (*corepat.Pattern, error) {
	config := corepat.DefaultConfig()
	config.UTF8 = opts.utf8
	config.EnablePrefilter = !opts.noPrefilter
	return corepat.CompileWithConfig(pattern, config)
}
