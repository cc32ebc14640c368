package posapi

import (
	"testing"

	"github.com/kasir-api/pos-contract-tests/fixtures"
	"github.com/kasir-api/pos-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStateWithMethodsReturnCopies(t *testing.T) {
	var empty RunState
	s := empty.WithRegistration(fixtures.Registration{Email: "a@x.com", Password: "p"}).
		WithAccessToken("tok").
		WithCategoryID("c").
		WithProductID("p")
	assert.Equal(t, RunState{}, empty)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, "c", s.CategoryID)
	assert.Equal(t, "p", s.ProductID)
	assert.Equal(t, fixtures.Credentials{Email: "a@x.com", Password: "p"}, s.Registration.Credentials())
}

func TestRequireGuardsSkipWhenUnset(t *testing.T) {
	var reached bool
	results := framework.Run(nil, nil, func(c *framework.Context) {
		tt := newTestScope(c, &environment{})
		tt.Run("needs token", func(t *T) {
			RunState{}.requireAccessToken(t)
			reached = true
		})
		tt.Run("has token", func(t *T) {
			assert.Equal(t, "tok", RunState{AccessToken: "tok"}.requireAccessToken(t))
		})
	})
	assert.False(t, reached)
	assert.True(t, results.OK())
	require.Len(t, results.Skips, 1)
	assert.Equal(t, "dependency unmet: access token was not captured", results.Skips[0].SkipReason)
}
