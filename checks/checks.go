// Package checks contains the assertions that the contract tests apply to API responses.
//
// Every function takes a require.TestingT, so it can be used both from the suite's own test
// scope and from a regular *testing.T. Functions that return bool report whether the check
// passed; they record a failure but let the test continue. Functions documented as fatal
// stop the test with FailNow, because nothing after them could be meaningfully checked.
package checks

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/kasir-api/pos-contract-tests/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultLatencyCeiling is the response time every request must stay under.
const DefaultLatencyCeiling = 5000 * time.Millisecond

// StatusSuccess is the value of the "status" property in every successful response.
const StatusSuccess = "success"

const (
	uuidLength     = 36
	uuidHyphens    = 4
	statusProperty = "status"
)

var jsonMediaTypePattern = regexp.MustCompile(`json`)

// Kind is the JSON type a property is expected to have.
type Kind int

const (
	String Kind = iota
	Number
	Object
	Array
	// NullableString accepts a string or null.
	NullableString
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Object:
		return "object"
	case Array:
		return "array"
	case NullableString:
		return "string or null"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) matches(v ldvalue.Value) bool {
	switch k {
	case String:
		return v.Type() == ldvalue.StringType
	case Number:
		return v.Type() == ldvalue.NumberType
	case Object:
		return v.Type() == ldvalue.ObjectType
	case Array:
		return v.Type() == ldvalue.ArrayType
	case NullableString:
		return v.Type() == ldvalue.StringType || v.IsNull()
	default:
		return false
	}
}

func helper(t require.TestingT) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
}

// StatusCode checks for an exact HTTP status.
func StatusCode(t require.TestingT, resp *client.Response, want int) bool {
	helper(t)
	return assert.Equal(t, want, resp.StatusCode, "Status code must be equal to %d; body: %s", want, string(resp.Body))
}

// RespondedWithin checks that the elapsed time is strictly below the ceiling.
func RespondedWithin(t require.TestingT, resp *client.Response, ceiling time.Duration) bool {
	helper(t)
	if resp.Elapsed < ceiling {
		return true
	}
	return assert.Fail(t, "response was too slow",
		"Response time must be below %dms, was %dms", ceiling.Milliseconds(), resp.Elapsed.Milliseconds())
}

// JSONContentType checks that the Content-Type header names a JSON media type.
func JSONContentType(t require.TestingT, resp *client.Response) bool {
	helper(t)
	return assert.Regexp(t, jsonMediaTypePattern, resp.ContentType(), "Content-Type must be JSON")
}

// Body requires the response body to be a JSON object and returns it. It is fatal.
func Body(t require.TestingT, resp *client.Response) ldvalue.Value {
	helper(t)
	if resp.JSON.Type() != ldvalue.ObjectType {
		require.Fail(t, "response body must be a JSON object", "body was: %s", string(resp.Body))
	}
	return resp.JSON
}

// ExactKeys checks that an object has exactly the given property names, in any order.
func ExactKeys(t require.TestingT, v ldvalue.Value, path string, keys ...string) bool {
	helper(t)
	if v.Type() != ldvalue.ObjectType {
		return assert.Fail(t, "expected an object", "%s must be an object, was %s", describePath(path), v.JSONString())
	}
	actual := v.Keys()
	expected := append([]string(nil), keys...)
	sort.Strings(actual)
	sort.Strings(expected)
	return assert.Equal(t, expected, actual, "%s must have exactly the keys %s", describePath(path), strings.Join(expected, ", "))
}

// Property returns a property of an object, or a null value if v is not an object.
func Property(v ldvalue.Value, key string) ldvalue.Value {
	if v.Type() != ldvalue.ObjectType {
		return ldvalue.Null()
	}
	return v.GetByKey(key)
}

// FieldKind checks the JSON type of one property of an object and returns the property.
func FieldKind(t require.TestingT, obj ldvalue.Value, path, key string, kind Kind) (ldvalue.Value, bool) {
	helper(t)
	v := Property(obj, key)
	if kind.matches(v) {
		return v, true
	}
	return v, assert.Fail(t, "wrong property type",
		"%s must be a %s, was %s", joinPath(path, key), kind, v.JSONString())
}

// RequireFieldKind is like FieldKind, but fatal.
func RequireFieldKind(t require.TestingT, obj ldvalue.Value, path, key string, kind Kind) ldvalue.Value {
	helper(t)
	v, ok := FieldKind(t, obj, path, key, kind)
	if !ok {
		t.FailNow()
	}
	return v
}

// NonEmptyString checks that a property is a string with at least one character.
func NonEmptyString(t require.TestingT, obj ldvalue.Value, path, key string) (string, bool) {
	helper(t)
	v, ok := FieldKind(t, obj, path, key, String)
	if !ok {
		return "", false
	}
	return v.StringValue(), assert.NotEmpty(t, v.StringValue(), "%s must not be empty", joinPath(path, key))
}

// SuccessStatus checks that the "status" property is the string "success".
func SuccessStatus(t require.TestingT, body ldvalue.Value) bool {
	helper(t)
	if _, ok := FieldKind(t, body, "", statusProperty, String); !ok {
		return false
	}
	return assert.Equal(t, StatusSuccess, Property(body, statusProperty).StringValue(), `Status must be "success"`)
}

// IsUUIDShaped reports whether s has the length and hyphen count of a UUID. The version and
// variant are not inspected.
func IsUUIDShaped(s string) bool {
	return len(s) == uuidLength && strings.Count(s, "-") == uuidHyphens
}

// UUIDShape checks that v is a string shaped like a UUID.
func UUIDShape(t require.TestingT, v ldvalue.Value, label string) bool {
	helper(t)
	if v.Type() != ldvalue.StringType {
		return assert.Fail(t, "expected a UUID string", "%s must be a string, was %s", label, v.JSONString())
	}
	s := v.StringValue()
	ok := assert.Len(t, s, uuidLength, "%s must have %d characters", label, uuidLength)
	return assert.Equal(t, uuidHyphens, strings.Count(s, "-"), "%s must contain %d hyphens: %q", label, uuidHyphens, s) && ok
}

// Echoes checks that every request field, except the secret ones, appears with the same
// value in data.
func Echoes(t require.TestingT, payload map[string]string, data ldvalue.Value, secretKeys ...string) bool {
	helper(t)
	secret := make(map[string]bool, len(secretKeys))
	for _, k := range secretKeys {
		secret[k] = true
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if !secret[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	ok := true
	for _, k := range keys {
		actual := Property(data, k)
		if !assert.Equal(t, ldvalue.String(payload[k]), actual, "Mismatch for key: %s with value: %s", k, payload[k]) {
			ok = false
		}
	}
	return ok
}

// Pagination is the "meta" object of a list response.
type Pagination struct {
	TotalPage int
	Total     int
	Page      int
}

// PaginationMeta checks that meta has exactly the totalPage, total, and page properties, all
// non-negative integers.
func PaginationMeta(t require.TestingT, meta ldvalue.Value) (Pagination, bool) {
	helper(t)
	ok := ExactKeys(t, meta, "data.meta", "totalPage", "total", "page")
	var p Pagination
	for _, f := range []struct {
		key  string
		dest *int
	}{
		{"totalPage", &p.TotalPage},
		{"total", &p.Total},
		{"page", &p.Page},
	} {
		v, isNumber := FieldKind(t, meta, "data.meta", f.key, Number)
		if !isNumber {
			ok = false
			continue
		}
		if !assert.True(t, v.IsInt(), "data.meta.%s must be an integer, was %s", f.key, v.JSONString()) {
			ok = false
		}
		if !assert.GreaterOrEqual(t, v.Float64Value(), float64(0), "data.meta.%s must be at least 0", f.key) {
			ok = false
		}
		*f.dest = v.IntValue()
	}
	return p, ok
}

// EachItem calls check for every element of an array. Failures reported by check are
// prefixed with the element's position.
func EachItem(t require.TestingT, arr ldvalue.Value, label string, check func(t require.TestingT, item ldvalue.Value)) {
	helper(t)
	if arr.Type() != ldvalue.ArrayType {
		assert.Fail(t, "expected an array", "%s must be an array, was %s", label, arr.JSONString())
		return
	}
	for i := 0; i < arr.Count(); i++ {
		check(itemScope{t: t, prefix: fmt.Sprintf("%s[%d]: ", label, i)}, arr.GetByIndex(i))
	}
}

type itemScope struct {
	t      require.TestingT
	prefix string
}

func (s itemScope) Errorf(format string, args ...interface{}) {
	s.t.Errorf(s.prefix+format, args...)
}

func (s itemScope) FailNow() {
	s.t.FailNow()
}

func describePath(path string) string {
	if path == "" {
		return "response body"
	}
	return path
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
