package interviewtests

import (
	"context"

	"github.com/acat-interview/interview-contract-tests/client"
	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the interview service suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that
// is outside of the Go test runner. Those features come from the framework package.
//
// Every T has its own view of the client whose requests are logged to the test's debug
// output. Sessions created through a T are closed when the test ends.
type T struct {
	context *framework.Context
	harness *TestHarness
	client  *client.Client
}

func newTestScope(context *framework.Context, harness *TestHarness) *T {
	return &T{
		context: context,
		harness: harness,
		client:  harness.client.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods
// in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest and waits for it to finish.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness))
	})
}

// RunParallel starts a subtest that may run at the same time as its siblings. Only use it
// for tests that change no state on the service that another test could observe.
func (t *T) RunParallel(name string, action func(*T)) {
	t.context.RunParallel(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness))
	})
}

// Defer schedules a function to run when the test ends, whether or not it passed.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// Debug logs some debug output for the test. The output will be passed to the test logger
// at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip ends the test without failing it.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Ctx is the context for requests made by the test.
func (t *T) Ctx() context.Context {
	return context.Background()
}

func (t *T) Client() *client.Client {
	return t.client
}

func (t *T) Config() *config.Config {
	return t.harness.cfg
}

// Fixtures returns the seeded data the tests refer to.
func (t *T) Fixtures() config.Fixtures {
	return t.harness.cfg.Fixtures()
}

// RequireResponse takes the results of an action and fails the test immediately if the
// request could not be made at all.
func (t *T) RequireResponse(resp *client.Response, err error) *client.Response {
	require.NoError(t, err, "request failed")
	return resp
}
