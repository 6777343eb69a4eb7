//go:build test

// Run this effdump like this:
//
//	go run -tags=test github.com/ypsu/yumreplay -force

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ypsu/effdump"
	"github.com/ypsu/textar"
)

func dump(ctx context.Context) error {
	d := effdump.New("yumreplay")
	d.RegisterFlags(flag.CommandLine)
	flagFS := flag.String("fs", "", "Override testdata to this textar filesystem.")
	flag.Parse()

	var rootfs fs.FS
	var testfile string
	environ := map[string]string{"YUMREPLAY_OUTPUT": "-"}
	add := func(name string, args ...string) {
		w, logw := &bytes.Buffer{}, &bytes.Buffer{}
		err := Yumreplay(w, logw, rootfs, environ, args)
		result := make([]textar.File, 3)
		result[0] = textar.File{"yumreplay " + strings.Join(args, " "), w.Bytes()}
		result[1] = textar.File{"stderr", logw.Bytes()}
		if err == nil {
			result[2].Name = "result: success"
		} else {
			result[2].Name = "result: fail"
			result[2].Data = []byte(err.Error() + "\n")
		}
		d.Add(testfile+"/"+name, textar.Format(result))
	}

	wd = "/home/user"
	var testfiles []string
	if *flagFS == "" {
		testfiles, _ = filepath.Glob("testdata/*.textar")
	} else {
		testfiles = strings.Split(*flagFS, ",")
	}
	for _, filename := range testfiles {
		data, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		testfile = strings.TrimSuffix(filepath.Base(filename), ".textar")
		rootfs = textar.FS(textar.Parse(data))
		add("help", "-help")
		add("badflag", "-blah")
		add("badflagorder", "yum.log", "-debug")
		add("noargs")
		add("twoargs", "yum.log", "other.log")
		add("missing", "nonexistent.log")
		add("result", "yum.log")
		add("events", "-dump_events", "yum.log")
		add("debug", "-debug", "/home/user/yum.log")

		if testfile == "fedora" {
			add("varlog", "/var/log/yum.log")
			add("varlogrel", "../../var/log/yum.log")
		}
	}

	d.Run(ctx)
	return nil
}

func main() {
	if err := dump(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.", err)
		os.Exit(1)
	}
}
