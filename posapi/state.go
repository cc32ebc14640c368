package posapi

import (
	"fmt"

	"github.com/kasir-api/pos-contract-tests/fixtures"
)

// RunState is the data that tests capture and later tests depend on: the registered account,
// its access token, and the ids of the entities created along the way.
//
// It is a value type. Suites receive it from the suites that ran before them and return an
// updated copy; nothing else shares it. Execution is serial, so it needs no locking.
type RunState struct {
	Registration fixtures.Registration
	AccessToken  string
	CategoryID   string
	ProductID    string
}

func (s RunState) WithRegistration(r fixtures.Registration) RunState {
	s.Registration = r
	return s
}

func (s RunState) WithAccessToken(token string) RunState {
	s.AccessToken = token
	return s
}

func (s RunState) WithCategoryID(id string) RunState {
	s.CategoryID = id
	return s
}

func (s RunState) WithProductID(id string) RunState {
	s.ProductID = id
	return s
}

func unmet(field string) string {
	return fmt.Sprintf("dependency unmet: %s was not captured", field)
}

// The require methods skip the current test if an earlier test did not capture what it needs.

func (s RunState) requireRegistration(t *T) fixtures.Registration {
	if s.Registration.Email == "" || s.Registration.Password == "" {
		t.SkipWithReason(unmet("registration payload"))
	}
	return s.Registration
}

func (s RunState) requireAccessToken(t *T) string {
	if s.AccessToken == "" {
		t.SkipWithReason(unmet("access token"))
	}
	return s.AccessToken
}

func (s RunState) requireCategoryID(t *T) string {
	if s.CategoryID == "" {
		t.SkipWithReason(unmet("category id"))
	}
	return s.CategoryID
}

func (s RunState) requireProductID(t *T) string {
	if s.ProductID == "" {
		t.SkipWithReason(unmet("product id"))
	}
	return s.ProductID
}
