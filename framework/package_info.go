// Package framework contains the test harness infrastructure that is not specific to the
// point-of-sale API: test contexts, results, filters, and ordering of dependent suites.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to be associated with a test identifier and to accumulate success/failure
// results and debug output.
//
// 2. Tests are grouped into suites. A suite may declare that it depends on other suites; the
// harness runs suites in an order consistent with those declarations, one at a time. Failing
// tests do not stop later suites; a suite is skipped only if a dependency was skipped or was
// aborted at the suite level.
//
// 3. Suites exchange data (such as credentials captured from an earlier response) only through
// an explicit state value that each suite receives from its predecessors and returns to its
// successors.
//
// The domain-specific code that knows what is being tested provides the suites, the state type,
// and a domain-specific test API on top of the test context.
package framework
