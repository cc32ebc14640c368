package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kasir-api/pos-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type payload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func jsonHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json; charset=utf-8")
	return h
}

func TestPostSendsJSONPayloadAndHeaders(t *testing.T) {
	body := []byte(`{"status":"success","message":"ok","data":{"name":"Alex"}}`)
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(201, jsonHeaders(), body))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(server.URL + "/")
		resp, err := c.Post("/registration", payload{Name: "Alex", Email: "a@x.com"}, WithBearerToken("tok"))
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/registration", r.Request.URL.Path)
		assert.Equal(t, "application/json", r.Request.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Request.Header.Get("Authorization"))
		assert.JSONEq(t, `{"name":"Alex","email":"a@x.com"}`, string(r.Body))

		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, "application/json; charset=utf-8", resp.ContentType())
		assert.Equal(t, ldvalue.String("Alex"), resp.JSON.GetByKey("data").GetByKey("name"))
		assert.Greater(t, int64(resp.Elapsed), int64(0))
	})
}

func TestRequestsWithoutPayloadHaveNoBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(server.URL)
		for _, do := range []func() (*Response, error){
			func() (*Response, error) { return c.Get("/categories") },
			func() (*Response, error) { return c.Delete("/products/1") },
		} {
			_, err := do()
			require.NoError(t, err)
			r := <-requestsCh
			assert.Empty(t, r.Body)
			assert.Empty(t, r.Request.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Request.Header.Get("Accept"))
		}
	})
}

func TestPutUsesPutMethod(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		_, err := New(server.URL).Put("/products/abc", map[string]string{"name": "x"}, WithHeader("X-Trace", "1"))
		require.NoError(t, err)
		r := <-requestsCh
		assert.Equal(t, "PUT", r.Request.Method)
		assert.Equal(t, "/products/abc", r.Request.URL.Path)
		assert.Equal(t, "1", r.Request.Header.Get("X-Trace"))
	})
}

func TestNonJSONBodyParsesAsNull(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(502, nil, []byte("<html>bad gateway</html>"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := New(server.URL).Get("/categories")
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
		assert.True(t, resp.JSON.IsNull())
		assert.Equal(t, "<html>bad gateway</html>", string(resp.Body))
	})
}

func TestElapsedIncludesServerDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(200)
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := New(server.URL).Get("/products")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, int64(resp.Elapsed), int64(delay))
	})
}

func TestTransportErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	resp, err := New(url).Get("/categories")
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestTimeoutIsApplied(t *testing.T) {
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		defer close(release)
		_, err := New(server.URL, WithTimeout(20*time.Millisecond)).Get("/slow")
		assert.Error(t, err)
	})
}

func TestWithLoggerWritesRequestAndResponse(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(200, jsonHeaders(), []byte(`{"status":"success"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		base := New(server.URL)
		_, err := base.WithLogger(&logger).Post("/authentications", map[string]string{"email": "a@x.com"})
		require.NoError(t, err)

		out := logger.Output()
		require.Len(t, out, 2)
		assert.Contains(t, out[0].Message, `POST `+server.URL+`/authentications {"email":"a@x.com"}`)
		assert.Contains(t, out[1].Message, `Response 200`)
		assert.Equal(t, server.URL, base.BaseURL())
	})
}

func TestSearchString(t *testing.T) {
	resp := newResponse(201, nil, []byte(`{"data":{"accessToken":"abc","refreshToken":"","user":{"id":1}}}`), 0)

	token, err := resp.SearchString("data.accessToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = resp.SearchString("data.refreshToken")
	assert.Error(t, err)
	_, err = resp.SearchString("data.missing")
	assert.Error(t, err)
	_, err = resp.SearchString("data.user")
	assert.Error(t, err)
	_, err = resp.SearchString("data.[")
	assert.Error(t, err)

	_, err = newResponse(500, nil, []byte("oops"), 0).Search("data")
	assert.Error(t, err)
}
