package posapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kasir-api/pos-contract-tests/checks"
	"github.com/kasir-api/pos-contract-tests/client"
	"github.com/kasir-api/pos-contract-tests/fixtures"
	"github.com/kasir-api/pos-contract-tests/mockpos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// The checks are used here with a plain *testing.T against fixed payloads, following one
// account from registration to deleting its product.
func TestLiteralEndToEndScenario(t *testing.T) {
	server := httptest.NewServer(mockpos.New())
	defer server.Close()
	c := client.New(server.URL)
	created := checks.Envelope{Status: http.StatusCreated, Keys: []string{"status", "message", "data"}}

	registration := fixtures.Registration{Name: "Test", Email: "test+001@example.com", Password: "Secret123"}
	resp, err := c.Post("/registration", registration)
	require.NoError(t, err)
	data := created.CheckData(t, resp)
	expected := ldvalue.ObjectBuild().Set("name", ldvalue.String("Test")).
		Set("email", ldvalue.String("test+001@example.com")).Build()
	assert.True(t, expected.Equal(data), "data was %s", data.JSONString())

	resp, err = c.Post("/authentications", registration.Credentials())
	require.NoError(t, err)
	data = created.CheckData(t, resp)
	token, ok := checks.NonEmptyString(t, data, "data", "accessToken")
	require.True(t, ok)

	resp, err = c.Post("/categories", fixtures.Category{Name: "Snacks", Description: "chips"}, client.WithBearerToken(token))
	require.NoError(t, err)
	data = created.CheckData(t, resp)
	categoryID := checks.RequireFieldKind(t, data, "data", "categoryId", checks.String)
	require.True(t, checks.UUIDShape(t, categoryID, "categoryId"))

	product := fixtures.New(1).Product(categoryID.StringValue())
	resp, err = c.Post("/products", product, client.WithBearerToken(token))
	require.NoError(t, err)
	data = created.CheckData(t, resp)
	productID := checks.RequireFieldKind(t, data, "data", "productId", checks.String)
	require.True(t, checks.UUIDShape(t, productID, "productId"))

	resp, err = c.Delete(productPath(productID.StringValue()), client.WithBearerToken(token))
	require.NoError(t, err)
	body := checks.Envelope{Status: http.StatusOK, Keys: []string{"status", "message"}}.Check(t, resp)
	checks.FieldKind(t, body, "", "message", checks.String)
}

func TestCreatedIdentifiersAreUnique(t *testing.T) {
	results, first := runAgainst(t, mockpos.New(), 0, nil)
	require.True(t, results.OK())
	_, second := runAgainst(t, mockpos.New(), 0, nil)
	assert.NotEqual(t, first.CategoryID, second.CategoryID)
	assert.NotEqual(t, first.ProductID, second.ProductID)
}

func TestUpdateRoundTripReturnsNewName(t *testing.T) {
	server := httptest.NewServer(mockpos.New())
	defer server.Close()
	c := client.New(server.URL)
	g := fixtures.New(3)

	registration := g.Registration()
	_, err := c.Post("/registration", registration)
	require.NoError(t, err)
	resp, err := c.Post("/authentications", registration.Credentials())
	require.NoError(t, err)
	token, err := resp.SearchString("data.accessToken")
	require.NoError(t, err)
	auth := client.WithBearerToken(token)

	resp, err = c.Post("/categories", g.Category(), auth)
	require.NoError(t, err)
	categoryID, err := resp.SearchString("data.categoryId")
	require.NoError(t, err)

	original := g.Product(categoryID)
	resp, err = c.Post("/products", original, auth)
	require.NoError(t, err)
	productID, err := resp.SearchString("data.productId")
	require.NoError(t, err)

	updated := g.Product(categoryID)
	updated.Name = original.Name + " v2"
	resp, err = c.Put(productPath(productID), updated, auth)
	require.NoError(t, err)
	name, err := resp.SearchString("data.name")
	require.NoError(t, err)
	assert.Equal(t, updated.Name, name)
	assert.NotEqual(t, original.Name, name)
}
