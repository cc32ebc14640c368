package posapi

import (
	"net/http"

	"github.com/kasir-api/pos-contract-tests/checks"
	"github.com/kasir-api/pos-contract-tests/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoCategoryTests(t *T, state RunState) RunState {
	t.Run("should create a new category", func(t *T) {
		token := state.requireAccessToken(t)
		payload := t.Fixtures().Category()
		t.Debug("Category payload: %+v", payload)

		resp := t.Post("/categories", payload, client.WithBearerToken(token))
		data := t.Envelope(http.StatusCreated, "status", "message", "data").CheckData(t, resp)
		checks.ExactKeys(t, data, "data", "categoryId", "name")
		checks.FieldKind(t, data, "data", "name", checks.String)
		id := checks.RequireFieldKind(t, data, "data", "categoryId", checks.String)
		if checks.UUIDShape(t, id, "categoryId") {
			state = state.WithCategoryID(t.Capture(resp, "data.categoryId"))
		}
	})

	t.Run("should get all categories", func(t *T) {
		token := state.requireAccessToken(t)

		resp := t.Get("/categories", client.WithBearerToken(token))
		data := t.Envelope(http.StatusOK, "status", "data").CheckData(t, resp)
		categories := checks.RequireFieldKind(t, data, "data", "categories", checks.Array)
		meta := checks.RequireFieldKind(t, data, "data", "meta", checks.Object)
		page, _ := checks.PaginationMeta(t, meta)
		assert.LessOrEqual(t, categories.Count(), page.Total, "data.categories must not hold more items than data.meta.total")

		checks.EachItem(t, categories, "data.categories", func(t require.TestingT, item ldvalue.Value) {
			checks.FieldKind(t, item, "", "name", checks.String)
			checks.FieldKind(t, item, "", "description", checks.NullableString)
			if id, ok := checks.FieldKind(t, item, "", "id", checks.String); ok {
				checks.UUIDShape(t, id, "id")
			}
		})
	})

	return state
}
