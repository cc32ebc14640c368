package framework

import (
	"fmt"
	"io"
)

// TestLogger receives progress events as cases run. Events for a case always arrive in the
// order TestStarted, any number of TestError, then TestFinished; a skipped case gets only
// TestSkipped.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

// Summary counts the recorded cases by outcome. Groups are counted separately, and only when
// they were skipped, since the cases inside a skipped group never ran.
type Summary struct {
	Passed        int
	Failed        int
	Skipped       int
	SkippedGroups int
}

func (r Results) Summary() Summary {
	var s Summary
	for _, t := range r.Tests {
		if t.Group {
			if t.Skipped {
				s.SkippedGroups++
			}
			continue
		}
		switch t.Outcome() {
		case Passed:
			s.Passed++
		case Failed:
			s.Failed++
		case Skipped:
			s.Skipped++
		}
	}
	return s
}

func (s Summary) String() string {
	ret := fmt.Sprintf("%d passed, %d failed, %d skipped", s.Passed, s.Failed, s.Skipped)
	switch {
	case s.SkippedGroups == 1:
		ret += ", 1 suite skipped"
	case s.SkippedGroups > 1:
		ret += fmt.Sprintf(", %d suites skipped", s.SkippedGroups)
	}
	return ret
}

// PrintFailures lists every failed case along with its errors.
func PrintFailures(out io.Writer, results Results) {
	if len(results.Failures) == 0 {
		return
	}
	fmt.Fprintln(out, "Failed tests:")
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
		for _, e := range f.Errors {
			fmt.Fprintf(out, "    %s\n", e)
		}
	}
}
