// Package failure maps the typed errors raised across graphmcp onto the
// structured form handed back to callers.
package failure

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/qraqula/graphmcp/internal/graphql"
)

const (
	KindCanceled = "Canceled"
	KindInternal = "Internal"
)

// Kinder is implemented by every error type that names its own kind.
type Kinder interface {
	Kind() string
}

// Kind returns the kind of the first error in err's chain that declares one.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindInternal
}

// Payload is the structured error returned to callers.
type Payload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// Describe builds the Payload for err.
func Describe(err error) Payload {
	p := Payload{Kind: Kind(err), Message: err.Error()}
	var httpErr *graphql.HTTPError
	if errors.As(err, &httpErr) {
		p.Status = httpErr.StatusCode
	}
	return p
}

// JSON renders the Payload for err as a JSON object.
func JSON(err error) string {
	b, _ := json.Marshal(Describe(err))
	return string(b)
}
