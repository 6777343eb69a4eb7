package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	installMarker = "Installed: "
	eraseMarker   = "Erased: "
)

// EventKind is the operation a log line records.
type EventKind int

const (
	Ignore EventKind = iota
	Install
	Erase
)

func (k EventKind) String() string {
	switch k {
	case Install:
		return "install"
	case Erase:
		return "erase"
	}
	return "ignore"
}

// Event is the classification of a single log line.
type Event struct {
	Kind EventKind
	Name string // empty for Ignore
}

func (e Event) String() string {
	if e.Kind == Ignore {
		return "ignore"
	}
	return e.Kind.String() + " " + e.Name
}

// Classify decides what a yum log line records.
// The install form is checked first and wins even if the line also contains the erase marker.
//
// Install: "Installed: " then an optional "<digits>:" epoch then the package name,
// which is the shortest non-empty text followed by a dash and a digit.
// The epoch is only dropped if a name can be found after it.
//
// Erase: "Erased: " then the rest of the line, taken verbatim.
func Classify(line string) Event {
	if i := strings.Index(line, installMarker); i >= 0 {
		rest := line[i+len(installMarker):]
		if tail, ok := cutEpoch(rest); ok {
			if name, ok := nameBeforeVersion(tail); ok {
				return Event{Install, name}
			}
		}
		if name, ok := nameBeforeVersion(rest); ok {
			return Event{Install, name}
		}
	}
	if i := strings.Index(line, eraseMarker); i >= 0 {
		if name := line[i+len(eraseMarker):]; name != "" {
			return Event{Erase, name}
		}
	}
	return Event{}
}

// cutEpoch strips a leading "<digits>:" from s.
func cutEpoch(s string) (string, bool) {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == 0 || n == len(s) || s[n] != ':' {
		return s, false
	}
	return s[n+1:], true
}

// nameBeforeVersion returns the text before the first "-<digit>" that is not at the start of s.
func nameBeforeVersion(s string) (string, bool) {
	for i := 1; i+1 < len(s); i++ {
		if s[i] == '-' && isDigit(s[i+1]) {
			return s[:i], true
		}
	}
	return "", false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// Events classifies r line by line and calls fn for each non-ignored event in log order.
// Lines of any length are accepted; the "\n" or "\r\n" terminator is not part of the line.
func Events(r io.Reader, fn func(Event)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if ev := Classify(line); ev.Kind != Ignore {
				fn(ev)
			}
		}
		if err != nil {
			return nil
		}
	}
}

// Apply folds one event into the set.
// Installing a present name and erasing an absent one are both no-ops.
func (s PackageSet) Apply(ev Event, log Logger) {
	switch ev.Kind {
	case Install:
		log.Debug("found installed package", "package", ev.Name)
		s.Add(ev.Name)
	case Erase:
		log.Debug("found erased package", "package", ev.Name)
		if s.Has(ev.Name) {
			log.Debug("excluding package", "package", ev.Name)
			s.Remove(ev.Name)
		}
	}
}

// Replay computes the packages that remain installed after the operations in r.
// A nil log discards the diagnostics.
func Replay(r io.Reader, log Logger) (PackageSet, error) {
	if log == nil {
		log = nopLogger{}
	}
	set := PackageSet{}
	if err := Events(r, func(ev Event) { set.Apply(ev, log) }); err != nil {
		return nil, err
	}
	return set, nil
}

// WriteResult writes one package name per line.
// The names are sorted to keep the output reproducible.
func WriteResult(w io.Writer, set PackageSet) error {
	bw := bufio.NewWriter(w)
	for _, name := range set.Sorted() {
		if _, err := fmt.Fprintln(bw, name); err != nil {
			return err
		}
	}
	return bw.Flush()
}
