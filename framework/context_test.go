package framework

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	skipped  map[string]string
	finished map[string]bool
	lock     sync.Mutex
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{skipped: map[string]string{}, finished: map[string]bool{}}
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.lock.Lock()
	r.started = append(r.started, id.String())
	r.lock.Unlock()
}

func (r *recordingTestLogger) TestError(TestID, error) {}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	r.lock.Lock()
	r.finished[id.String()] = failed
	r.lock.Unlock()
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.lock.Lock()
	r.skipped[id.String()] = reason
	r.lock.Unlock()
}

func failureIDs(results Results) []string {
	var ids []string
	for _, f := range results.Failures {
		ids = append(ids, f.TestID.String())
	}
	return ids
}

func TestPassingTests(t *testing.T) {
	results := Run(RunOptions{}, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) {
			c.Run("c", func(c *Context) {})
		})
	})

	assert.True(t, results.OK())
	ran, failed, skipped := results.Count()
	assert.Equal(t, 4, ran)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 0, skipped)
}

func TestErrorfFailsTestButContinues(t *testing.T) {
	reachedEnd := false
	results := Run(RunOptions{}, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("bad", func(c *Context) {
				c.Errorf("wrong value %d", 3)
				reachedEnd = true
			})
		})
	})

	assert.True(t, reachedEnd)
	assert.False(t, results.OK())
	assert.Equal(t, []string{"group/bad"}, failureIDs(results))
	assert.Equal(t, "wrong value 3", results.Failures[0].Errors[0].Error())
}

func TestFailNowEndsOnlyThatTest(t *testing.T) {
	var ran []string
	results := Run(RunOptions{}, func(c *Context) {
		c.Run("first", func(c *Context) {
			c.Errorf("broken")
			c.FailNow()
			ran = append(ran, "after FailNow")
		})
		c.Run("second", func(c *Context) {
			ran = append(ran, "second")
		})
	})

	assert.Equal(t, []string{"second"}, ran)
	assert.Equal(t, []string{"first"}, failureIDs(results))
}

func TestFailNowWithoutMessageAddsOne(t *testing.T) {
	results := Run(RunOptions{}, func(c *Context) {
		c.Run("silent", func(c *Context) { c.FailNow() })
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "no failure message")
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(RunOptions{}, func(c *Context) {
		c.Run("panics", func(c *Context) { panic(errors.New("boom")) })
		c.Run("next", func(c *Context) {})
	})

	assert.Equal(t, []string{"panics"}, failureIDs(results))
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestSkip(t *testing.T) {
	logger := newRecordingTestLogger()
	results := Run(RunOptions{TestLogger: logger}, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not supported")
			c.Errorf("unreachable")
		})
	})

	assert.True(t, results.OK())
	_, _, skipped := results.Count()
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "not supported", logger.skipped["skipped"])
}

func TestFilterExcludesTestsAndTheirChildren(t *testing.T) {
	logger := newRecordingTestLogger()
	ranChild := false
	filter := func(id TestID) bool { return id.String() != "excluded" }

	results := Run(RunOptions{Filter: filter, TestLogger: logger}, func(c *Context) {
		c.Run("excluded", func(c *Context) {
			c.Run("child", func(c *Context) { ranChild = true })
		})
		c.Run("included", func(c *Context) {})
	})

	assert.False(t, ranChild)
	assert.Equal(t, "excluded by filter parameters", logger.skipped["excluded"])
	_, excludedFinished := logger.finished["excluded"]
	assert.False(t, excludedFinished)
	assert.Equal(t, false, logger.finished["included"])
	assert.True(t, results.OK())
}

func TestDeferredFunctionsRunInReverseOrderEvenAfterFailure(t *testing.T) {
	var order []int
	Run(RunOptions{}, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { order = append(order, 1) })
			c.Defer(func() { order = append(order, 2) })
			c.FailNow()
		})
	})

	assert.Equal(t, []int{2, 1}, order)
}

func TestPanicInDeferredFunctionFailsTest(t *testing.T) {
	results := Run(RunOptions{}, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Defer(func() { panic("cleanup broke") })
		})
	})

	assert.Equal(t, []string{"test"}, failureIDs(results))
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "cleanup broke")
}

func TestParentWaitsForParallelSubtestsBeforeDeferredFunctions(t *testing.T) {
	var finished int32
	var seenInDefer int32
	Run(RunOptions{MaxParallel: 4}, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Defer(func() { seenInDefer = atomic.LoadInt32(&finished) })
			for _, name := range []string{"a", "b", "c"} {
				c.RunParallel(name, func(c *Context) {
					time.Sleep(10 * time.Millisecond)
					atomic.AddInt32(&finished, 1)
				})
			}
		})
	})

	assert.Equal(t, int32(3), seenInDefer)
}

func TestParallelSubtestsAreBounded(t *testing.T) {
	const maxParallel = 2
	var running, peak int32
	results := Run(RunOptions{MaxParallel: maxParallel}, func(c *Context) {
		for i := 0; i < 8; i++ {
			c.RunParallel("t", func(c *Context) {
				n := atomic.AddInt32(&running, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&running, -1)
			})
		}
	})

	assert.True(t, results.OK())
	assert.LessOrEqual(t, peak, int32(maxParallel))
	assert.Len(t, results.Tests, 9)
}

func TestFailureInParallelSubtestIsRecorded(t *testing.T) {
	results := Run(RunOptions{MaxParallel: 3}, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.RunParallel("ok", func(c *Context) {})
			c.RunParallel("bad", func(c *Context) {
				c.Errorf("failed")
				c.FailNow()
			})
		})
	})

	assert.Equal(t, []string{"group/bad"}, failureIDs(results))
}

func TestNestedParallelSubtestsDoNotDeadlock(t *testing.T) {
	done := make(chan Results)
	go func() {
		done <- Run(RunOptions{MaxParallel: 1}, func(c *Context) {
			c.RunParallel("outer", func(c *Context) {
				c.RunParallel("inner", func(c *Context) {})
			})
		})
	}()

	select {
	case results := <-done:
		assert.True(t, results.OK())
		assert.Len(t, results.Tests, 3)
	case <-time.After(5 * time.Second):
		t.Fatal("test run did not finish")
	}
}

func TestDebugOutputIsPassedToTestLogger(t *testing.T) {
	var captured CapturedOutput
	logger := &capturedOutputLogger{onFinished: func(out CapturedOutput) { captured = out }}

	Run(RunOptions{TestLogger: logger}, func(c *Context) {
		c.Run("test", func(c *Context) {
			c.Debug("value is %d", 5)
			c.DebugLogger().Printf("second")
		})
	})

	require.Len(t, captured, 2)
	assert.Equal(t, "value is 5", captured[0].Message)
	assert.Equal(t, "second", captured[1].Message)
}

type capturedOutputLogger struct {
	nullTestLogger
	onFinished func(CapturedOutput)
}

func (c *capturedOutputLogger) TestFinished(_ TestID, _ bool, out CapturedOutput) {
	c.onFinished(out)
}
