package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests the way "go test -run/-skip" does: a pattern is split on
// slashes and each element is matched against the test name at the same depth.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.anyMatchPrefix(id)) &&
		!r.MustNotMatch.anyMatchFull(id)
}

type RegexList struct {
	sources  []string
	patterns [][]*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, s := range r.sources {
		ss = append(ss, `"`+s+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	var elements []*regexp.Regexp
	for _, part := range strings.Split(value, "/") {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		elements = append(elements, rx)
	}
	r.sources = append(r.sources, value)
	r.patterns = append(r.patterns, elements)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// anyMatchPrefix is true if the test could be, or could contain, a match: every element
// present on both sides matches. A parent of a selected test must run for it to run.
func (r RegexList) anyMatchPrefix(id TestID) bool {
	for _, elements := range r.patterns {
		if matchElements(elements, id.Path) {
			return true
		}
	}
	return false
}

// anyMatchFull is true if the test, or one of its ancestors, matches every element.
func (r RegexList) anyMatchFull(id TestID) bool {
	for _, elements := range r.patterns {
		if len(id.Path) >= len(elements) && matchElements(elements, id.Path) {
			return true
		}
	}
	return false
}

func matchElements(elements []*regexp.Regexp, path []string) bool {
	for i, rx := range elements {
		if i >= len(path) {
			break
		}
		if !rx.MatchString(path[i]) {
			return false
		}
	}
	return true
}

// PrintFilterDescription tells the user which tests the filters will leave out.
func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.MustMatch.IsDefined() && !filters.MustNotMatch.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}
