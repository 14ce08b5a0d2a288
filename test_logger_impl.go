package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/acat-interview/interview-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
	passedColor  = color.New(color.FgGreen)
)

// ConsoleTestLogger prints test progress. With parallel tests, lines from different
// tests can interleave, but the lines of a single event stay together.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	lock                 sync.Mutex
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	if len(id.Path) == 0 {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	fmt.Fprintf(c.Out, "  [%s]\n", id)
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "    %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if failed {
		failedColor.Fprintf(c.Out, "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if reason == "" {
		skippedColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}

func printResults(out io.Writer, results framework.Results) {
	ran, failed, skipped := results.Count()
	if results.OK() {
		passedColor.Fprintf(out, "All tests passed")
		fmt.Fprintf(out, " (%d run, %d skipped)\n", ran, skipped)
		return
	}
	failedColor.Fprintf(out, "FAILED: %d of %d tests", failed, ran)
	fmt.Fprintf(out, " (%d skipped)\n", skipped)
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
	}
}

// failedLeaves returns the failed tests that have no failed subtests. Rerunning those
// also reruns the tests that contain them.
func failedLeaves(results framework.Results) []framework.TestID {
	var ret []framework.TestID
	for _, f := range results.Failures {
		if len(f.TestID.Path) == 0 {
			continue
		}
		leaf := true
		for _, other := range results.Failures {
			if len(other.TestID.Path) > len(f.TestID.Path) && isPrefix(f.TestID.Path, other.TestID.Path) {
				leaf = false
				break
			}
		}
		if leaf {
			ret = append(ret, f.TestID)
		}
	}
	return ret
}

func isPrefix(prefix, path []string) bool {
	for i, p := range prefix {
		if path[i] != p {
			return false
		}
	}
	return true
}
