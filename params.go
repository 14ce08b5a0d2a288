package main

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/acat-interview/interview-contract-tests/framework"

	"github.com/alessio/shellescape"
)

const defaultMaxParallel = 1

type commandParams struct {
	serviceURL  string
	configFile  string
	envFile     string
	filters     framework.RegexFilters
	maxParallel int
	debug       bool
	debugAll    bool
	noColor     bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the interview service (overrides config and environment)")
	fs.StringVar(&c.configFile, "config", "", "YAML file with base URL, endpoint paths, timeouts and fixtures")
	fs.StringVar(&c.envFile, "env-file", "", "dotenv file to load before reading INTERVIEW_* variables (default .env if present)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.IntVar(&c.maxParallel, "parallel", defaultMaxParallel, "how many independent tests may run at the same time")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	if c.maxParallel < 1 {
		fmt.Fprintln(errOut, "-parallel must be at least 1")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand returns a command line that runs only the given tests, with the same
// service settings as this run.
func (c *commandParams) rerunCommand(program string, ids []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	if c.serviceURL != "" {
		b.add("-url", c.serviceURL)
	}
	if c.configFile != "" {
		b.add("-config", c.configFile)
	}
	if c.envFile != "" {
		b.add("-env-file", c.envFile)
	}
	for _, id := range ids {
		b.add("-run", exactPattern(id))
	}
	b.add("-debug")
	return b.String()
}

func exactPattern(id framework.TestID) string {
	parts := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		parts = append(parts, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(parts, "/")
}
