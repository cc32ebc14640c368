package checks

import (
	"time"

	"github.com/kasir-api/pos-contract-tests/client"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Envelope describes the expected outer shape of a response.
type Envelope struct {
	Status int
	// Keys are the exact top-level property names, such as status, message, and data.
	Keys []string
	// LatencyCeiling defaults to DefaultLatencyCeiling.
	LatencyCeiling time.Duration
	// SkipContentType turns off the Content-Type check, for endpoints whose contract doesn't
	// promise a JSON content type.
	SkipContentType bool
}

// Check applies the checks every response shares and returns the parsed body. It is fatal if
// the body is not a JSON object.
//
// Beyond the exact status code, latency, and key set, it checks that status is "success",
// that message (if expected) is a string, and that data (if expected) is an object.
func (e Envelope) Check(t require.TestingT, resp *client.Response) ldvalue.Value {
	helper(t)
	body := e.check(t, resp)
	if e.expects("data") {
		FieldKind(t, body, "", "data", Object)
	}
	return body
}

// CheckData is Check followed by Data: it returns the "data" object, failing the test
// immediately if there isn't one. A data property of the wrong kind is reported once.
func (e Envelope) CheckData(t require.TestingT, resp *client.Response) ldvalue.Value {
	helper(t)
	return Data(t, e.check(t, resp))
}

func (e Envelope) expects(key string) bool {
	for _, k := range e.Keys {
		if k == key {
			return true
		}
	}
	return false
}

func (e Envelope) check(t require.TestingT, resp *client.Response) ldvalue.Value {
	ceiling := e.LatencyCeiling
	if ceiling == 0 {
		ceiling = DefaultLatencyCeiling
	}
	StatusCode(t, resp, e.Status)
	RespondedWithin(t, resp, ceiling)
	if !e.SkipContentType {
		JSONContentType(t, resp)
	}
	body := Body(t, resp)
	ExactKeys(t, body, "", e.Keys...)
	SuccessStatus(t, body)
	if e.expects("message") {
		FieldKind(t, body, "", "message", String)
	}
	return body
}

// Data returns the "data" object of a body, failing the test immediately if it is not an
// object.
func Data(t require.TestingT, body ldvalue.Value) ldvalue.Value {
	helper(t)
	return RequireFieldKind(t, body, "", "data", Object)
}
