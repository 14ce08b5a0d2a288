package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
	slots      chan struct{}
	lock       sync.Mutex
}

// Context is the framework-level state of a running test. Like *testing.T, it accumulates
// failures and can be ended early with FailNow or Skip.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	deferred    []func()
	children    sync.WaitGroup
	releaseSlot func()
	lock        sync.Mutex
}

// RunOptions configures a test run.
type RunOptions struct {
	// Filter decides which tests run. Nil runs everything.
	Filter Filter
	// TestLogger receives test lifecycle notifications. Nil discards them.
	TestLogger TestLogger
	// MaxParallel caps how many subtests started with RunParallel execute at once.
	// Values below 1 mean 1.
	MaxParallel int
}

// Run executes action as the root of a test tree and returns the results once every
// test, including parallel ones, has finished.
func Run(opts RunOptions, action func(*Context)) Results {
	testLogger := opts.TestLogger
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	maxParallel := opts.MaxParallel
	if maxParallel < 1 {
		maxParallel = 1
	}
	env := &environment{
		filter:     opts.Filter,
		testLogger: testLogger,
		slots:      make(chan struct{}, maxParallel),
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		r := recover()
		if c.releaseSlot != nil {
			c.releaseSlot()
		}
		c.children.Wait()
		c.runDeferred()
		if r != nil && !c.skipped {
			c.setFailed()
			var addError error
			if _, ok := r.(*Context); ok {
				if c.errorCount() == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.addError(addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.env.record(c)
	}()

	action(c)
}

func (c *Context) runDeferred() {
	c.lock.Lock()
	deferred := c.deferred
	c.deferred = nil
	c.lock.Unlock()
	for i := len(deferred) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					err := fmt.Errorf("panic in deferred cleanup: %+v", r)
					c.setFailed()
					c.addError(err)
					c.env.testLogger.TestError(c.id, err)
				}
			}()
			deferred[i]()
		}()
	}
}

func (e *environment) record(c *Context) {
	c.lock.Lock()
	result := TestResult{TestID: c.id, Errors: append([]error(nil), c.errors...), Skipped: c.skipped}
	failed := c.failed
	c.lock.Unlock()

	e.lock.Lock()
	e.results.Tests = append(e.results.Tests, result)
	if failed {
		e.results.Failures = append(e.results.Failures, result)
	}
	e.lock.Unlock()
}

func (c *Context) setFailed() {
	c.lock.Lock()
	c.failed = true
	c.lock.Unlock()
}

func (c *Context) errorCount() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.errors)
}

func (c *Context) addError(err error) {
	c.lock.Lock()
	c.errors = append(c.errors, err)
	c.lock.Unlock()
}

// ID returns the identifier of this test.
func (c *Context) ID() TestID {
	return c.id
}

// Failed reports whether the test has failed so far.
func (c *Context) Failed() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.failed
}

// Run runs a subtest and waits for it to finish.
func (c *Context) Run(name string, action func(*Context)) {
	c1 := c.newChild(name)
	if c1 == nil {
		return
	}
	c1.runAndReport(action)
}

// RunParallel starts a subtest in its own goroutine and returns immediately. The parent
// test does not finish until all of its parallel subtests have. At most
// RunOptions.MaxParallel of them execute at the same time across the whole run.
//
// A parallel subtest gives up its slot once its own body returns, so it can start
// parallel subtests of its own without deadlocking. It must not depend on state changed
// by its siblings.
func (c *Context) RunParallel(name string, action func(*Context)) {
	c1 := c.newChild(name)
	if c1 == nil {
		return
	}
	var release sync.Once
	c1.releaseSlot = func() { release.Do(func() { <-c.env.slots }) }
	c.children.Add(1)
	go func() {
		defer c.children.Done()
		c.env.slots <- struct{}{}
		defer c1.releaseSlot()
		c1.runAndReport(action)
	}()
}

func (c *Context) newChild(name string) *Context {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return nil
	}
	return &Context{
		id:  id,
		env: c.env,
	}
}

func (c *Context) runAndReport(action func(*Context)) {
	c.run(action)
	if c.skipped {
		c.env.testLogger.TestSkipped(c.id, c.skipReason)
	} else {
		c.env.testLogger.TestFinished(c.id, c.Failed(), c.debugLogger.Output())
	}
}

// Errorf records a failure without ending the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	c.setFailed()
	c.addError(err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow ends the test immediately. It must be called from the goroutine running the test.
func (c *Context) FailNow() {
	c.setFailed()
	panic(c)
}

// Skip ends the test immediately without failing it.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is Skip with an explanation for the test logger.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer registers a function to run when the test ends, whether it passed, failed or was
// skipped. Deferred functions run in reverse order of registration, after any parallel
// subtests have finished.
func (c *Context) Defer(fn func()) {
	c.lock.Lock()
	c.deferred = append(c.deferred, fn)
	c.lock.Unlock()
}

// Debug adds a line to the test's debug output.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the test's debug output.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
