package posapi

import (
	"time"

	"github.com/kasir-api/pos-contract-tests/checks"
	"github.com/kasir-api/pos-contract-tests/client"
	"github.com/kasir-api/pos-contract-tests/fixtures"
	"github.com/kasir-api/pos-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

type environment struct {
	client         *client.Client
	fixtures       *fixtures.Generator
	latencyCeiling time.Duration
}

// T represents a test or subtest in the POS API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging that are
// convenient for our use case. Those features are provided by our lower-level framework
// package.
//
// To make test assertions, use the checks package or the assert and require packages, passing
// the *T as if it were a *testing.T. The request methods fail the test immediately on a
// transport error, since there is no response to check.
type T struct {
	context *framework.Context
	env     *environment
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{context: context, env: env}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// SkipWithReason stops the test and records it as skipped.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) framework.Outcome {
	return t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Fixtures returns the payload generator for this run.
func (t *T) Fixtures() *fixtures.Generator {
	return t.env.fixtures
}

// Envelope returns the expected response shape for this run's latency ceiling.
func (t *T) Envelope(status int, keys ...string) checks.Envelope {
	return checks.Envelope{Status: status, Keys: keys, LatencyCeiling: t.env.latencyCeiling}
}

func (t *T) client() *client.Client {
	return t.env.client.WithLogger(t.context.DebugLogger())
}

func (t *T) Post(path string, payload interface{}, opts ...client.RequestOption) *client.Response {
	resp, err := t.client().Post(path, payload, opts...)
	require.NoError(t, err, "POST %s", path)
	return resp
}

func (t *T) Get(path string, opts ...client.RequestOption) *client.Response {
	resp, err := t.client().Get(path, opts...)
	require.NoError(t, err, "GET %s", path)
	return resp
}

func (t *T) Put(path string, payload interface{}, opts ...client.RequestOption) *client.Response {
	resp, err := t.client().Put(path, payload, opts...)
	require.NoError(t, err, "PUT %s", path)
	return resp
}

func (t *T) Delete(path string, opts ...client.RequestOption) *client.Response {
	resp, err := t.client().Delete(path, opts...)
	require.NoError(t, err, "DELETE %s", path)
	return resp
}

// Capture extracts a non-empty string from the response, failing the test immediately if it
// is not there.
func (t *T) Capture(resp *client.Response, expression string) string {
	value, err := resp.SearchString(expression)
	require.NoError(t, err, "could not capture %s", expression)
	t.Debug("Captured %s = %s", expression, value)
	return value
}
