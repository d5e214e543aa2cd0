package graphql

import (
	"encoding/json"
	"strings"
	"time"
)

type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []Error         `json:"errors,omitempty"`
}

type Error struct {
	Message string `json:"message"`
}

// Result is a completed gateway exchange. Body holds the bytes exactly as
// received; Response is only populated when Body decodes as a GraphQL response.
type Result struct {
	Body       []byte
	Response   Response
	StatusCode int
	Duration   time.Duration
	Size       int
}

func (r Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the response's GraphQL errors as a *ResponseError, or nil.
func (r Response) Err() error {
	if !r.HasErrors() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return &ResponseError{Messages: msgs}
}

// ResponseError carries the "errors" array of an otherwise successful response.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return "graphql errors: " + strings.Join(e.Messages, "; ")
}

func (e *ResponseError) Kind() string { return "UpstreamGraphQLError" }
