package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lestrrat-go/strftime"

	"github.com/coregx/corepat"
)

type searcher struct {
	p      *corepat.Pattern
	opts   options
	stamp  *strftime.Strftime
	stdout io.Writer
}

// searchAll searches each named file, or stdin when there are none. A file
// that cannot be read is reported and makes the status exitError unless a
// later file matches.
func (s *searcher) searchAll(files []string, stdin io.Reader, stderr io.Writer) int {
	if len(files) == 0 {
		found, err := s.search("", stdin)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return exitError
		}
		return status(found)
	}

	found, failed := false, false
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			failed = true
			continue
		}
		label := ""
		if len(files) > 1 {
			label = name
		}
		ok, err := s.search(label, f)
		_ = f.Close()
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			failed = true
		}
		found = found || ok
	}
	if !found && failed {
		return exitError
	}
	return status(found)
}

func status(found bool) int {
	if found {
		return exitMatch
	}
	return exitNoMatch
}

// search prints the matching lines of r, prefixed with label if it is not
// empty.
func (s *searcher) search(label string, r io.Reader) (bool, error) {
	found := false
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		var ok bool
		if s.opts.anchored {
			ok = s.p.Match(line, 0)
		} else {
			ok = s.p.Find(line, 0)
		}
		if !ok {
			continue
		}
		found = true
		s.print(label, line)
	}
	return found, sc.Err()
}

func (s *searcher) print(label string, line []byte) {
	if s.stamp != nil {
		fmt.Fprint(s.stdout, s.stamp.FormatString(now()), " ")
	}
	if label != "" {
		fmt.Fprint(s.stdout, label, ":")
	}
	switch {
	case s.opts.groups:
		fmt.Fprintln(s.stdout, s.p.ResultString(", "))
	case s.opts.onlyMatch:
		fmt.Fprintf(s.stdout, "%s\n", s.p.Bytes())
	default:
		fmt.Fprintf(s.stdout, "%s\n", line)
	}
}
