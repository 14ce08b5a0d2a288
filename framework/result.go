package framework

import (
	"strings"
)

// Results is the outcome of a whole test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Count returns the number of tests that ran, failed and were skipped. Tests that only
// group subtests are counted like any other.
func (r Results) Count() (ran, failed, skipped int) {
	for _, t := range r.Tests {
		if t.Skipped {
			skipped++
		} else {
			ran++
		}
	}
	return ran, len(r.Failures), skipped
}

// TestID identifies a test by the names of its ancestors and itself.
type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest. The receiver is not modified.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	return TestID{Path: append(append(path, t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
