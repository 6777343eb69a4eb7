package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/ypsu/efftesting"
)

func TestClassify(t *testing.T) {
	et := efftesting.New(t)
	c := func(line string) string { return Classify(line).String() }
	et.Expect("plain", c("Installed: simple-1.2.3-1"), "install simple")
	et.Expect("epoch and hyphens", c("Installed: 2:my-pkg-name-3.4-2"), "install my-pkg-name")
	et.Expect("timestamped", c("Jun 12 10:02:11 Installed: kernel-2.6.29.4-167.fc11.x86_64"), "install kernel")
	et.Expect("long epoch", c("Installed: 12:tzdata-java-2009i-1.fc11.noarch"), "install tzdata-java")
	et.Expect("shortest name wins", c("Installed: foo-1-bar-2-3"), "install foo")
	et.Expect("dash without digit", c("Installed: python-setuptools-0.6c9-4"), "install python-setuptools")
	et.Expect("no version", c("Installed: nothing-without-version"), "ignore")
	et.Expect("leading dash digit", c("Installed: -1-2"), "install -1")
	et.Expect("epoch without name", c("Installed: 2:-3"), "install 2:")
	et.Expect("epoch only", c("Installed: 1:"), "ignore")
	et.Expect("empty install", c("Installed: "), "ignore")
	et.Expect("erase", c("Erased: foo"), "erase foo")
	et.Expect("erase verbatim", c("Jun 13 Erased: foo-1.0-1.x86_64"), "erase foo-1.0-1.x86_64")
	et.Expect("erase keeps spaces", c("Erased:  foo "), "erase  foo ")
	et.Expect("empty erase", c("Erased: "), "ignore")
	et.Expect("install wins", c("Installed: a-1 Erased: b"), "install a")
	et.Expect("erase after failed install", c("Installed: x Erased: b"), "erase b")
	et.Expect("updated", c("Updated: glibc-2.10.1-2.x86_64"), "ignore")
	et.Expect("no separator", c("Installed:foo-1.0"), "ignore")
	et.Expect("empty", c(""), "ignore")
}

func replay(t *testing.T, log string) PackageSet {
	t.Helper()
	set, err := Replay(strings.NewReader(log), nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	return set
}

func newSet(names ...string) PackageSet {
	s := PackageSet{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func TestReplay(t *testing.T) {
	for _, tc := range []struct {
		name string
		log  string
		want PackageSet
	}{
		{"empty", "", newSet()},
		{"idempotent install", "Installed: x-1\nInstalled: x-1\n", newSet("x")},
		{"erase absent", "Installed: x-1\nErased: y\n", newSet("x")},
		{"install erase", "Installed: n-1\nErased: n\n", newSet()},
		{"install erase install", "Installed: n-1\nErased: n\nInstalled: n-2\n", newSet("n")},
		{"double erase", "Installed: n-1\nErased: n\nErased: n\n", newSet()},
		{"order", "Installed: foo-1.0-1\nErased: foo\n", newSet()},
		{"reverse order", "Erased: foo\nInstalled: foo-1.0-1\n", newSet("foo")},
		{"noise only", "hello\nUpdated: a-1\n\n  \n", newSet()},
		{"end to end", "Installed: foo-1.0-1\nInstalled: bar-2.0-1\nErased: foo\nInstalled: 1:baz-0.9-3\n", newSet("bar", "baz")},
		{"no final newline", "Installed: a-1\nInstalled: b-1", newSet("a", "b")},
		{"crlf", "Installed: a-1\r\nInstalled: b-1\r\nErased: a\r\n", newSet("b")},
		{"erase with version does not match", "Installed: a-1.0-1\nErased: a-1.0-1\n", newSet("a")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, replay(t, tc.log)); diff != "" {
				t.Errorf("replay mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplayLongLine(t *testing.T) {
	name := strings.Repeat("x", 1<<20)
	set := replay(t, "Installed: "+name+"-1\n")
	if !set.Has(name) || set.Len() != 1 {
		t.Errorf("long package name not recorded, got %d entries", set.Len())
	}
}

func TestReplayReadError(t *testing.T) {
	r := iotest.TimeoutReader(strings.NewReader("Installed: a-1\n"))
	if _, err := Replay(iotest.OneByteReader(r), nil); !errors.Is(err, iotest.ErrTimeout) {
		t.Errorf("Replay error = %v, want %v", err, iotest.ErrTimeout)
	}
}

type recordingLogger struct{ lines []string }

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.lines = append(l.lines, "debug "+msg+" "+args[1].(string))
}

func (l *recordingLogger) Info(msg string, args ...any) { l.lines = append(l.lines, "info "+msg) }

func TestReplayLogging(t *testing.T) {
	et := efftesting.New(t)
	log := &recordingLogger{}
	if _, err := Replay(strings.NewReader("Installed: a-1\nErased: b\nErased: a\n"), log); err != nil {
		t.Fatal(err)
	}
	et.Expect("", strings.Join(log.lines, "; "), "debug found installed package a; debug found erased package b; debug found erased package a; debug excluding package a")
}

func TestEvents(t *testing.T) {
	et := efftesting.New(t)
	var evs []string
	err := Events(strings.NewReader("noise\nInstalled: 3:a-b-1\nErased: a-b\n"), func(ev Event) { evs = append(evs, ev.String()) })
	if err != nil {
		t.Fatal(err)
	}
	et.Expect("", strings.Join(evs, "; "), "install a-b; erase a-b")
}

func TestWriteResult(t *testing.T) {
	et := efftesting.New(t)
	buf := &bytes.Buffer{}
	if err := WriteResult(buf, newSet("bar", "baz", "abc")); err != nil {
		t.Fatal(err)
	}
	et.Expect("", buf.String(), "abc\nbar\nbaz\n")

	buf.Reset()
	if err := WriteResult(buf, newSet()); err != nil {
		t.Fatal(err)
	}
	et.Expect("empty", buf.String(), "")
}

func TestPackageSet(t *testing.T) {
	s := newSet("a")
	if s.Remove("b") {
		t.Errorf("Remove(b) = true on a set without b")
	}
	if !s.Remove("a") || s.Has("a") || s.Len() != 0 {
		t.Errorf("Remove(a) did not remove a: %v", s)
	}
}
