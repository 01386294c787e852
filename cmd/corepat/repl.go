package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/coregx/corepat"
)

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

func newLineReader(stdin io.Reader, stderr io.Writer) (lineReader, error) {
	return readline.NewEx(&readline.Config{
		Prompt: "> ",
		Stdin:  io.NopCloser(stdin),
		Stderr: stderr,
	})
}

// repl treats every line read as a subject for the current pattern.
// ":p <pattern>" replaces the pattern and ":q" quits. The status is
// exitMatch if any subject matched.
func repl(rl lineReader, pattern string, opts options, stdout, stderr io.Writer) int {
	var p *corepat.Pattern
	if pattern != "" {
		var err error
		if p, err = compile(pattern, opts); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return exitError
		}
	}
	fmt.Fprint(stderr, "Enter subjects to match, :p <pattern> to change the pattern, :q to quit.\n")

	found := false
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintln(stderr, err)
			return exitError
		}

		switch {
		case line == ":q":
			return status(found)
		case strings.HasPrefix(line, ":p "):
			next, err := compile(strings.TrimSpace(line[3:]), opts)
			if err != nil {
				fmt.Fprintln(stderr, err)
				continue
			}
			p = next
			fmt.Fprintln(stdout, p.String())
			continue
		}

		if p == nil {
			fmt.Fprintln(stderr, "no pattern; use :p <pattern>")
			continue
		}
		var ok bool
		if opts.anchored {
			ok = p.MatchString(line, 0)
		} else {
			ok = p.FindString(line, 0)
		}
		if !ok {
			fmt.Fprintln(stdout, "no match")
			continue
		}
		found = true
		fmt.Fprintf(stdout, "[%d,%d) %s\n", p.Start(), p.End(), p.ResultString(", "))
	}
	return status(found)
}
