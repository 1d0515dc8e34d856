// Package gateway implements the registry's request-routing core: a
// pattern-matching route table, a middleware chain with an error
// boundary, and the handlers it dispatches to. The surrounding HTTP
// host only adapts raw requests into this package and renders what
// comes back out.
package gateway

import "context"

// Request is the normalized view of an inbound HTTP request that
// handlers operate on. Params holds path captures merged in by dispatch.
type Request struct {
	Method string
	Path   string
	Body   []byte
	Params map[string]string
}

// Response is the handler result rendered to the client as JSON.
type Response struct {
	Status int
	Body   any
}

// Handler processes a request and returns a response or a failure. A
// returned error crosses no further than the error middleware.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Middleware wraps a handler to provide cross-cutting behavior.
type Middleware func(Handler) Handler
