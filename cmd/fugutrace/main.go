// SPDX-License-Identifier: Unlicense OR MIT

// Command fugutrace runs a frame script against the recording GL backend
// and prints every GL call the gpu package issues.
//
// Usage:
//
//	fugutrace [flags] script.toml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/fugu-gfx/fugu/gl/gltrace"
	"github.com/fugu-gfx/fugu/gpu"
)

var (
	showLayout  = flag.Bool("layout", false, "print the computed vertex layout of every pipeline")
	watch       = flag.Bool("watch", false, "run the script again whenever it or its shader files change")
	verbose     = flag.Bool("v", false, "log gpu package diagnostics")
	quiet       = flag.Bool("quiet", false, "do not print GL calls")
	checkErrors = flag.Bool("check", true, "check for GL errors after creating resources")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "fugutrace: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	path := flag.Arg(0)
	if path == "" {
		return errors.New("specify a script")
	}
	logger := newLogger(*verbose)
	gpu.SetLogger(slog.New(logger))
	if !*watch {
		return runFile(path, os.Stdout)
	}
	return watchFile(logger, path, os.Stdout)
}

func newLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "fugutrace",
	})
	l.SetLevel(log.WarnLevel)
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

func runFile(path string, out io.Writer) error {
	s, err := loadScript(path)
	if err != nil {
		return err
	}
	rec := gltrace.New()
	if !*quiet {
		rec.Out = out
	}
	var layout io.Writer
	if *showLayout {
		layout = out
	}
	return run(s, rec, layout, gpu.WithErrorChecks(*checkErrors), gpu.WithLabel(filepath.Base(path)))
}

// watchFile runs the script, then runs it again on every change to the
// script or the shader files it reads, until interrupted.
func watchFile(logger *log.Logger, path string, out io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Watch directories; editors often replace files rather than write
	// them in place.
	watched := make(map[string]bool)
	files := make(map[string]bool)
	rerun := func() {
		if err := runFile(path, out); err != nil {
			logger.Error("run failed", "err", err)
		}
		s, err := loadScript(path)
		if err != nil {
			return
		}
		for _, f := range append(s.files(), path) {
			f = filepath.Clean(f)
			files[f] = true
			dir := filepath.Dir(f)
			if watched[dir] {
				continue
			}
			if err := w.Add(dir); err != nil {
				logger.Warn("watch failed", "dir", dir, "err", err)
				continue
			}
			watched[dir] = true
		}
	}
	files[filepath.Clean(path)] = true
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	watched[filepath.Dir(filepath.Clean(path))] = true
	rerun()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			logger.Info("changed", "file", ev.Name)
			rerun()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "err", err)
		case <-sig:
			return nil
		}
	}
}

const mainUsage = `The fugutrace command runs a frame script and prints the GL calls it makes.

Usage:

	fugutrace [flags] <script.toml>

A script declares shaders, buffers, images and pipelines, followed by the
frames that draw with them. See cmd/fugutrace/testdata for examples.

Flags:

`
