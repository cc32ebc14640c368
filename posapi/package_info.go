// Package posapi contains the point-of-sale API contract tests themselves and their
// supporting API.
//
// Test harness infrastructure that is not specific to this API, such as test contexts and
// ordering of dependent suites, is in the lower-level framework package. The checks package
// holds the assertions, and the client package talks HTTP.
package posapi
