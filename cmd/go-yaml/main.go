// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The go-yaml command shows how the library sees a YAML stream at every
// stage of the pipeline: tokens, events, node trees, re-emitted YAML and
// the loaded values as JSON.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/yaml/go-yaml"
)

// version is the current version of the go-yaml CLI tool.
const version = "1.2.0"

// modes lists the output mode flags in help order.
var modes = []struct {
	long, short, usage string
}{
	{"token", "t", "Token output"},
	{"TOKEN", "T", "Token with line info"},
	{"event", "e", "Event output"},
	{"EVENT", "E", "Event with line info"},
	{"node", "n", "Node tree output"},
	{"NODE", "N", "Node tree with tags and styles"},
	{"yaml", "y", "Re-emitted YAML output"},
	{"json", "j", "JSON compact output"},
	{"JSON", "J", "JSON pretty output"},
	{"diff", "d", "Diff of the input against the re-emitted YAML"},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("go-yaml", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHelp(stdout) }

	selected := make(map[string]*bool, len(modes))
	for _, m := range modes {
		selected[m.long] = fs.BoolP(m.long, m.short, false, m.usage)
	}
	configFile := fs.StringP("config", "C", "", "Load options from YAML config file")
	optionFlags := fs.StringArrayP("option", "o", nil, "Set option (name=value, name, no-name)")
	forceColor := fs.Bool("color", false, "Colour the output")
	noColor := fs.Bool("no-color", false, "Never colour the output")
	verbose := fs.BoolP("verbose", "v", false, "Log debug information to stderr")
	showVersion := fs.Bool("version", false, "Print the version")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "go-yaml: %v\n", err)
		return 1
	}
	if *showVersion {
		fmt.Fprintf(stdout, "go-yaml version %s\n", version)
		return 0
	}

	logger := newLogger(stderr, *verbose)

	opts, err := buildOptions(*configFile, *optionFlags)
	if errors.Is(err, errOptionHelp) {
		printAvailableOptions(stdout)
		return 0
	}
	if err != nil {
		return fail(stderr, logger, err)
	}
	opts = append(opts, yaml.WithLogger(logger))

	var mode string
	for _, m := range modes {
		if !*selected[m.long] {
			continue
		}
		if mode != "" {
			return fail(stderr, logger, errors.Errorf("--%s and --%s cannot be combined", mode, m.long))
		}
		mode = m.long
	}
	if mode == "" {
		if f, ok := stdin.(*os.File); ok && isTerminal(f) && len(fs.Args()) == 0 {
			printHelp(stdout)
			return 0
		}
		return fail(stderr, logger, errors.New("no output mode given, see --help"))
	}

	in, source, err := readInput(fs.Args(), stdin)
	if err != nil {
		return fail(stderr, logger, err)
	}
	level.Debug(logger).Log("msg", "read input", "source", source, "size", humanize.Bytes(uint64(len(in))))

	colored := isTerminal(stdout)
	if *forceColor {
		colored = true
	}
	if *noColor {
		colored = false
	}

	if err := runMode(mode, in, stdout, opts, newPalette(colored)); err != nil {
		return fail(stderr, logger, errors.Wrap(err, mode))
	}
	level.Debug(logger).Log("msg", "done", "mode", mode)
	return 0
}

func runMode(mode string, in []byte, w io.Writer, opts []yaml.Option, p *palette) error {
	switch mode {
	case "token", "TOKEN":
		tokens, err := yaml.Scan(in)
		if err != nil {
			return err
		}
		return writeTokens(w, tokens, mode == "TOKEN", p)
	case "event", "EVENT":
		events, err := yaml.Parse(in)
		if err != nil {
			return err
		}
		return writeEvents(w, events, mode == "EVENT", p)
	case "node", "NODE":
		trees, err := yaml.ComposeAll(in)
		if err != nil {
			return err
		}
		return writeTrees(w, trees, mode == "NODE", p)
	case "yaml":
		out, err := reEmit(in, opts)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "json", "JSON":
		return writeJSON(w, in, mode == "JSON", opts)
	case "diff":
		return writeDiff(w, in, opts, p)
	}
	return errors.Errorf("unknown mode %q", mode)
}

// readInput reads the file named by args, or stdin when there is none or
// it is "-".
func readInput(args []string, stdin io.Reader) ([]byte, string, error) {
	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		in, err := io.ReadAll(stdin)
		return in, "stdin", errors.Wrap(err, "read stdin")
	case len(args) == 1:
		in, err := os.ReadFile(args[0])
		return in, args[0], errors.Wrapf(err, "read %s", args[0])
	}
	return nil, "", errors.Errorf("only one file argument supported, got %d", len(args))
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}

// fail reports err and returns the failure exit code.
func fail(stderr io.Writer, logger log.Logger, err error) int {
	level.Debug(logger).Log("msg", "failed", "cause", errors.Cause(err))
	fmt.Fprintf(stderr, "go-yaml: %v\n", err)
	return 1
}

// printHelp displays the help information for the program
func printHelp(w io.Writer) {
	fmt.Fprintf(w, `go-yaml version %s

The 'go-yaml' tool shows how the github.com/yaml/go-yaml library handles
YAML at every stage: scanning, parsing, composing, emitting and loading. It
is a tool for testing and debugging the library.

It reads YAML input text from stdin or a file and writes results to stdout.

Usage:
  go-yaml [options] [file]

Output Mode Options (exactly one):
  -t, --token      Token output
  -T, --TOKEN      Token with line info

  -e, --event      Event output
  -E, --EVENT      Event with line info

  -n, --node       Node tree output
  -N, --NODE       Node tree with tags and styles

  -y, --yaml       Re-emitted YAML output
  -d, --diff       Diff of the input against the re-emitted YAML

  -j, --json       JSON compact output
  -J, --JSON       JSON pretty output

Formatting Options:
  -o, --option OPT Set option (use '-o help' to see all options)
                   Multiple: -o opt1,opt2 or -o opt1 -o opt2
                   Booleans: name (true) or no-name (false)

Configuration:
  -C, --config     Load options from YAML config file

Other Options:
      --color      Colour the output even when it is not a terminal
      --no-color   Never colour the output
  -v, --verbose    Log debug information to stderr
      --version    Print the version
  -h, --help       Show this help information

`, version)
}
