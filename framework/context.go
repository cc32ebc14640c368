package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the test scope that every case and every suite runs in. It is similar to Go's
// *testing.T: it implements the TestingT interfaces of the testify assert and require packages,
// and it can run nested scopes with Run.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	childFailed bool
	skipped     bool
	skipReason  string
	errors      []error
	children    int
	group       bool
}

// Run creates the root context, calls action with it, and returns the accumulated results.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				c.record()
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.record()
	}()

	action(c)
}

func (c *Context) record() {
	if len(c.id.Path) == 0 {
		return
	}
	result := TestResult{
		TestID:     c.id,
		Errors:     c.errors,
		Skipped:    c.skipped,
		SkipReason: c.skipReason,
		Group:      c.group || c.children > 0,
	}
	c.env.results.Tests = append(c.env.results.Tests, result)
	switch {
	case c.skipped:
		c.env.results.Skips = append(c.env.results.Skips, result)
	case c.failed:
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Outcome reports the state of this scope so far. A scope fails if it or any of its
// subtests failed.
func (c *Context) Outcome() Outcome {
	switch {
	case c.skipped:
		return Skipped
	case c.failed || c.childFailed:
		return Failed
	default:
		return Passed
	}
}

// Run runs a subtest and returns its outcome. Subtests run synchronously, in the order
// that Run is called.
func (c *Context) Run(name string, action func(*Context)) Outcome {
	return c.runChild(name, false, action)
}

// RunGroup is like Run, but the filter is not applied to the group itself, only to the
// tests inside it, and its result is recorded as a group even if it runs no tests.
func (c *Context) RunGroup(name string, action func(*Context)) Outcome {
	return c.runChild(name, true, action)
}

func (c *Context) runChild(name string, group bool, action func(*Context)) Outcome {
	id := c.id.Plus(name)
	c.children++

	c.env.testLogger.TestStarted(id)
	if !group && c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return Skipped
	}
	c1 := &Context{
		id:    id,
		env:   c.env,
		group: group,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed || c1.childFailed, c1.debugLogger.Output())
	}
	outcome := c1.Outcome()
	if outcome == Failed {
		c.childFailed = true
	}
	return outcome
}

// SkipChild records a subtest as skipped without running it.
func (c *Context) SkipChild(name, reason string) {
	c.Run(name, func(c1 *Context) { c1.SkipWithReason(reason) })
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// testify formats its failure messages for a terminal that already shows file and line
// information; ours doesn't, so the leading blank line and tab indentation are dropped.
func reformatError(err error) error {
	s := strings.TrimLeft(err.Error(), "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "\t")
	}
	return errors.New(strings.Join(lines, "\n"))
}
