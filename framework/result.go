package framework

import (
	"fmt"
	"strings"
)

// Outcome is the final state of a test or a group of tests.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skips    []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	// Group is true for a scope started with RunGroup, such as a suite, or one that ran
	// subtests of its own.
	Group bool
}

func (t TestResult) Outcome() Outcome {
	switch {
	case t.Skipped:
		return Skipped
	case len(t.Errors) != 0:
		return Failed
	default:
		return Passed
	}
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// FailedIDs returns the IDs of every test that recorded its own failure, in execution order.
func (r Results) FailedIDs() []TestID {
	ret := make([]TestID, 0, len(r.Failures))
	for _, f := range r.Failures {
		ret = append(ret, f.TestID)
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}
