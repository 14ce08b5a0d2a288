package main

import (
	"fmt"
	"os"

	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/framework"
	"github.com/acat-interview/interview-contract-tests/interviewtests"

	"github.com/fatih/color"
)

func main() {
	var params commandParams
	if !params.Read(os.Args, os.Stderr) {
		os.Exit(2)
	}
	if params.noColor {
		color.NoColor = true
	}
	out := color.Output

	cfg, err := config.Load(config.LoadOptions{
		FilePath: params.configFile,
		EnvFile:  params.envFile,
		BaseURL:  params.serviceURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.StdLogger(out)
	}

	harness, err := interviewtests.NewTestHarness(cfg, mainDebugLogger, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test service error: %s\n", err)
		os.Exit(1)
	}
	defer harness.Close()

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := interviewtests.RunTestSuite(harness, framework.RunOptions{
		Filter:      params.filters.AsFilter,
		TestLogger:  testLogger,
		MaxParallel: params.maxParallel,
	})

	fmt.Fprintln(out)
	printResults(out, results)
	if !results.OK() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To rerun the failed tests:")
		fmt.Fprintf(out, "  %s\n", params.rerunCommand(os.Args[0], failedLeaves(results)))
		harness.Close()
		os.Exit(1)
	}
}
