package posapi

import (
	"net/http"

	"github.com/kasir-api/pos-contract-tests/checks"

	"github.com/golang-jwt/jwt/v5"
)

func DoAuthorizationTests(t *T, state RunState) RunState {
	t.Run("should create a new account from registration", func(t *T) {
		payload := t.Fixtures().Registration()
		t.Debug("Registration payload: %+v", payload)

		resp := t.Post("/registration", payload)
		if resp.StatusCode == http.StatusCreated {
			state = state.WithRegistration(payload)
		}
		data := t.Envelope(http.StatusCreated, "status", "message", "data").CheckData(t, resp)
		checks.Echoes(t, payload.AsMap(), data, "password")
		checks.ExactKeys(t, data, "data", "name", "email")
		checks.FieldKind(t, data, "data", "name", checks.String)
		checks.FieldKind(t, data, "data", "email", checks.String)
	})

	t.Run("can login with registered account", func(t *T) {
		credentials := state.requireRegistration(t).Credentials()

		resp := t.Post("/authentications", credentials)
		data := t.Envelope(http.StatusCreated, "status", "message", "data").CheckData(t, resp)
		checks.FieldKind(t, data, "data", "user", checks.Object)
		checks.NonEmptyString(t, data, "data", "refreshToken")
		token := t.Capture(resp, "data.accessToken")
		debugTokenClaims(t, token)
		state = state.WithAccessToken(token)
	})

	t.Run("can login again with the same credentials", func(t *T) {
		credentials := state.requireRegistration(t).Credentials()
		state.requireAccessToken(t)

		resp := t.Post("/authentications", credentials)
		data := t.Envelope(http.StatusCreated, "status", "message", "data").CheckData(t, resp)
		checks.NonEmptyString(t, data, "data", "accessToken")
		checks.NonEmptyString(t, data, "data", "refreshToken")
	})

	return state
}

// The API's tokens are opaque to the contract, but when they happen to be JWTs their claims
// are useful when debugging a failed run.
func debugTokenClaims(t *T, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Debug("Access token is not a JWT: %s", err)
		return
	}
	t.Debug("Access token claims: %v", claims)
}
