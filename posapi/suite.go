package posapi

import (
	"time"

	"github.com/kasir-api/pos-contract-tests/client"
	"github.com/kasir-api/pos-contract-tests/fixtures"
	"github.com/kasir-api/pos-contract-tests/framework"
)

const (
	SuiteAuthorization = "authorization"
	SuiteCategories    = "categories"
	SuiteProducts      = "products"
)

// SuiteParams is what the suite needs from the command line and configuration.
type SuiteParams struct {
	Client   *client.Client
	Fixtures *fixtures.Generator
	// LatencyCeiling defaults to checks.DefaultLatencyCeiling.
	LatencyCeiling time.Duration
}

// Suites declares the suites and what each depends on. Every suite after authorization needs
// an access token, and products need a category to belong to.
func Suites(params SuiteParams) []framework.Suite[RunState] {
	env := &environment{
		client:         params.Client,
		fixtures:       params.Fixtures,
		latencyCeiling: params.LatencyCeiling,
	}
	adapt := func(action func(*T, RunState) RunState) func(*framework.Context, RunState) RunState {
		return func(c *framework.Context, state RunState) RunState {
			return action(newTestScope(c, env), state)
		}
	}
	return []framework.Suite[RunState]{
		{Name: SuiteAuthorization, Action: adapt(DoAuthorizationTests)},
		{Name: SuiteCategories, DependsOn: []string{SuiteAuthorization}, Action: adapt(DoCategoryTests)},
		{Name: SuiteProducts, DependsOn: []string{SuiteAuthorization, SuiteCategories}, Action: adapt(DoProductTests)},
	}
}

// RunTestSuite runs every suite against the API and returns the results along with the state
// captured along the way.
func RunTestSuite(
	params SuiteParams,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, RunState, error) {
	var final RunState
	var err error
	results := framework.Run(filter, testLogger, func(c *framework.Context) {
		final, err = framework.RunSuites(c, RunState{}, Suites(params))
	})
	return results, final, err
}
