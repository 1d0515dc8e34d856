package gateway

import (
	"context"
	"strings"
)

const (
	routeNotFoundMessage    = "Route not found"
	methodNotAllowedMessage = "Method not allowed"
	internalErrorMessage    = "Internal server error"
)

// RouteMiddleware is the innermost middleware: it strips the path
// prefix, resolves the route, injects captured parameters into the
// request, and invokes the registered handler. An unmatched path is
// delegated to the wrapped handler, which in a composed chain is the
// base not-found handler; a matched path without the request's method
// fails with 405.
func RouteMiddleware(table *RouteTable, pathPrefix string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			path := strings.TrimPrefix(req.Path, pathPrefix)

			pattern, params, ok := matchRoute(table.patterns, path)
			if !ok {
				return next(ctx, req)
			}

			handler, ok := table.lookup(pattern, req.Method)
			if !ok {
				return nil, MethodNotAllowed(methodNotAllowedMessage)
			}

			// Captures win over any pre-existing parameter of the
			// same name.
			if req.Params == nil {
				req.Params = make(map[string]string, len(params))
			}
			for name, value := range params {
				req.Params[name] = value
			}

			return handler(ctx, req)
		}
	}
}
