package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	kind   string
	id     string
	detail string
}

type recordingTestLogger struct {
	events []recordedEvent
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, recordedEvent{"started", id.String(), ""})
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, recordedEvent{"error", id.String(), err.Error()})
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	detail := "ok"
	if failed {
		detail = "failed"
	}
	r.events = append(r.events, recordedEvent{"finished", id.String(), detail})
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, recordedEvent{"skipped", id.String(), reason})
}

func TestSubtestsRunInDeclarationOrder(t *testing.T) {
	var order []string
	results := Run(nil, nil, func(c *Context) {
		for _, name := range []string{"a", "b", "c"} {
			name := name
			c.Run(name, func(c *Context) { order = append(order, name) })
		}
	})
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 3)
}

func TestErrorfMarksTestAndParentFailed(t *testing.T) {
	var parentOutcome Outcome
	results := Run(nil, nil, func(c *Context) {
		parentOutcome = c.Run("suite", func(c *Context) {
			c.Run("case", func(c *Context) {
				c.Errorf("expected %d, got %d", 1, 2)
			})
		})
	})
	assert.Equal(t, Failed, parentOutcome)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "suite/case", results.Failures[0].TestID.String())
	assert.Equal(t, []error{errors.New("expected 1, got 2")}, results.Failures[0].Errors)
	assert.False(t, results.OK())
}

func TestFailNowStopsTheTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("case", func(c *Context) {
			require.Fail(c, "broken")
			reached = true
		})
	})
	assert.False(t, reached)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1)
}

func TestPanicIsRecordedAsFailure(t *testing.T) {
	outcome := Passed
	results := Run(nil, nil, func(c *Context) {
		outcome = c.Run("case", func(c *Context) { panic("boom") })
	})
	assert.Equal(t, Failed, outcome)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestSkipWithReason(t *testing.T) {
	logger := &recordingTestLogger{}
	var outcome Outcome
	results := Run(nil, logger, func(c *Context) {
		outcome = c.Run("case", func(c *Context) { c.SkipWithReason("not today") })
	})
	assert.Equal(t, Skipped, outcome)
	assert.True(t, results.OK())
	require.Len(t, results.Skips, 1)
	assert.Equal(t, "not today", results.Skips[0].SkipReason)
	assert.Contains(t, logger.events, recordedEvent{"skipped", "case", "not today"})
}

func TestFilterExcludesTests(t *testing.T) {
	var ran []string
	filter := func(id TestID) bool { return id.String() != "suite/b" }
	Run(filter, nil, func(c *Context) {
		c.RunGroup("suite", func(c *Context) {
			c.Run("a", func(*Context) { ran = append(ran, "a") })
			c.Run("b", func(*Context) { ran = append(ran, "b") })
		})
	})
	assert.Equal(t, []string{"a"}, ran)
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var captured CapturedOutput
	logger := &capturingTestLogger{onFinished: func(out CapturedOutput) { captured = out }}
	Run(nil, logger, func(c *Context) {
		c.Run("case", func(c *Context) { c.Debug("hello %s", "world") })
	})
	require.Len(t, captured, 1)
	assert.Equal(t, "hello world", captured[0].Message)
}

type capturingTestLogger struct {
	nullTestLogger
	onFinished func(CapturedOutput)
}

func (l *capturingTestLogger) TestFinished(_ TestID, _ bool, out CapturedOutput) {
	l.onFinished(out)
}

func TestReformatErrorDropsTestifyIndentation(t *testing.T) {
	err := reformatError(errors.New("\n\tError Trace:\n\tError: oops"))
	assert.Equal(t, "Error Trace:\nError: oops", err.Error())
}
