package posapi

import (
	"net/http"
	"net/url"

	"github.com/kasir-api/pos-contract-tests/checks"
	"github.com/kasir-api/pos-contract-tests/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func productPath(id string) string {
	return "/products/" + url.PathEscape(id)
}

func DoProductTests(t *T, state RunState) RunState {
	t.Run("should create a new product", func(t *T) {
		token := state.requireAccessToken(t)
		categoryID := state.requireCategoryID(t)
		payload := t.Fixtures().Product(categoryID)
		t.Debug("Product payload: %+v", payload)

		resp := t.Post("/products", payload, client.WithBearerToken(token))
		data := t.Envelope(http.StatusCreated, "status", "message", "data").CheckData(t, resp)
		checks.ExactKeys(t, data, "data", "productId", "name")
		checks.FieldKind(t, data, "data", "name", checks.String)
		id := checks.RequireFieldKind(t, data, "data", "productId", checks.String)
		if checks.UUIDShape(t, id, "productId") {
			state = state.WithProductID(t.Capture(resp, "data.productId"))
		}
	})

	t.Run("should get all products", func(t *T) {
		token := state.requireAccessToken(t)

		resp := t.Get("/products", client.WithBearerToken(token))
		data := t.Envelope(http.StatusOK, "status", "data").CheckData(t, resp)
		products := checks.RequireFieldKind(t, data, "data", "products", checks.Array)
		meta := checks.RequireFieldKind(t, data, "data", "meta", checks.Object)
		page, _ := checks.PaginationMeta(t, meta)
		assert.LessOrEqual(t, products.Count(), page.Total, "data.products must not hold more items than data.meta.total")

		checks.EachItem(t, products, "data.products", func(t require.TestingT, item ldvalue.Value) {
			checks.FieldKind(t, item, "", "code", checks.String)
			checks.FieldKind(t, item, "", "description", checks.NullableString)
			for _, key := range []string{"price", "cost", "stock", "sale", "purchase"} {
				checks.FieldKind(t, item, "", key, checks.Number)
			}
			checks.FieldKind(t, item, "", "category_name", checks.String)
			if id, ok := checks.FieldKind(t, item, "", "id", checks.String); ok {
				checks.UUIDShape(t, id, "id")
			}
		})
	})

	t.Run("should update a product", func(t *T) {
		token := state.requireAccessToken(t)
		categoryID := state.requireCategoryID(t)
		productID := state.requireProductID(t)
		payload := t.Fixtures().Product(categoryID)
		t.Debug("Product update payload: %+v", payload)

		resp := t.Put(productPath(productID), payload, client.WithBearerToken(token))
		data := t.Envelope(http.StatusOK, "status", "message", "data").CheckData(t, resp)
		if name, ok := checks.FieldKind(t, data, "data", "name", checks.String); ok {
			assert.Equal(t, payload.Name, name.StringValue(), "data.name must be the updated name")
		}
	})

	t.Run("should delete a product", func(t *T) {
		token := state.requireAccessToken(t)
		productID := state.requireProductID(t)

		resp := t.Delete(productPath(productID), client.WithBearerToken(token))
		envelope := t.Envelope(http.StatusOK, "status", "message")
		envelope.SkipContentType = true
		envelope.Check(t, resp)
	})

	return state
}
