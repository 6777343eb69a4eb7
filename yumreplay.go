package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "/"
	}
	return wd
}

var wd = getwd()

// abspath makes a path into an absolute path.
// The leading / is removed so that it can be used with fs.FS.
func abspath(p string) string {
	if strings.HasPrefix(p, "/") {
		return filepath.Clean(p)[1:]
	}
	return filepath.Join(wd, p)[1:]
}

const usage = `Usage: yumreplay [flags] LOGFILE

Summarizes the packages that are still installed after replaying the given yum log.
The result is written one package per line.

Flags:
`

// Yumreplay implements the tool's main functionality.
// Results and usage go to w, diagnostics to logw.
// The log file is read from rootfs which must be rooted at /.
// environ overrides the process environment if not nil.
func Yumreplay(w, logw io.Writer, rootfs fs.FS, environ map[string]string, args []string) error {
	// Define and parse flags.
	argmode := false
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			argmode = true
		}
		if argmode && strings.HasPrefix(arg, "-") {
			return fmt.Errorf("flags must come before args and must have the -flag=value form")
		}
	}
	cfg, err := loadConfig(environ)
	if err != nil {
		return err
	}
	var (
		flagset        = flag.NewFlagSet("yumreplay", flag.ContinueOnError)
		flagOutput     string
		flagDebug      = flagset.Bool("debug", cfg.Debug, "Log every package operation found in the log.")
		flagDumpEvents = flagset.Bool("dump_events", false, "Debug option: if true then dump the classified log operations instead of the result.")
	)
	flagset.StringVar(&flagOutput, "o", cfg.Output, "Shorthand for -output.")
	flagset.StringVar(&flagOutput, "output", cfg.Output, "The result file, - for stdout.")
	flagset.SetOutput(w)
	flagset.Usage = func() {
		fmt.Fprint(w, usage)
		flagset.PrintDefaults()
	}
	if err := flagset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	switch flagset.NArg() {
	case 0:
		return fmt.Errorf("program takes exactly one yum log file; none specified")
	case 1:
	default:
		return fmt.Errorf("program takes exactly one yum log file; %q ignored", flagset.Args()[1:])
	}
	logfile := flagset.Arg(0)
	log := newLogger(logw, *flagDebug)

	f, err := rootfs.Open(abspath(logfile))
	if err != nil {
		return fmt.Errorf("open log: %v", err)
	}
	defer f.Close()

	if *flagDumpEvents {
		err := Events(f, func(ev Event) { fmt.Fprintln(w, ev) })
		if err != nil {
			return fmt.Errorf("read log %s: %v", logfile, err)
		}
		return nil
	}

	log.Info("parsing input file", "path", logfile)
	set, err := Replay(f, log)
	if err != nil {
		return fmt.Errorf("read log %s: %v", logfile, err)
	}
	log.Info("finished reading input file", "path", logfile, "output", flagOutput, "packages", set.Len())

	if flagOutput == "-" {
		if err := WriteResult(w, set); err != nil {
			return fmt.Errorf("write result: %v", err)
		}
	} else if err := writeResultFile(flagOutput, set); err != nil {
		return err
	}
	log.Info("done")
	return nil
}
