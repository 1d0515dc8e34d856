package gateway

import "strings"

// RouteTable associates path patterns with per-method handlers. Patterns
// are matched in registration order, so more specific patterns must be
// registered before overlapping capture patterns.
type RouteTable struct {
	patterns []string
	handlers map[string]map[string]Handler
}

// NewRouteTable returns an empty route table.
func NewRouteTable() *RouteTable {
	return &RouteTable{handlers: make(map[string]map[string]Handler)}
}

// Register maps a method/pattern pair to a handler. Registering the
// same pair twice replaces the previous handler.
func (t *RouteTable) Register(method, pattern string, handler Handler) {
	methods, ok := t.handlers[pattern]
	if !ok {
		methods = make(map[string]Handler)
		t.handlers[pattern] = methods
		t.patterns = append(t.patterns, pattern)
	}
	methods[method] = handler
}

// lookup returns the handler registered for the pattern and method.
func (t *RouteTable) lookup(pattern, method string) (Handler, bool) {
	handler, ok := t.handlers[pattern][method]
	return handler, ok
}

// matchRoute finds the first pattern matching the path and the values
// bound by its captures. A pattern segment starting with ':' captures
// exactly one non-empty path segment; every other segment must be
// byte-equal. Segment counts must agree, so a trailing slash on one
// side fails the match. No prefix or wildcard matching.
func matchRoute(patterns []string, path string) (string, map[string]string, bool) {
	pathParts := strings.Split(path, "/")

	for _, pattern := range patterns {
		patternParts := strings.Split(pattern, "/")
		if len(patternParts) != len(pathParts) {
			continue
		}

		matched := true
		for index, part := range patternParts {
			if strings.HasPrefix(part, ":") {
				if pathParts[index] == "" {
					matched = false
					break
				}
				continue
			}
			if part != pathParts[index] {
				matched = false
				break
			}
		}

		if matched {
			return pattern, extractPathParams(patternParts, pathParts), true
		}
	}
	return "", nil, false
}

// extractPathParams binds capture names to their path segment values.
func extractPathParams(patternParts, pathParts []string) map[string]string {
	params := make(map[string]string)
	for index, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			params[strings.TrimPrefix(part, ":")] = pathParts[index]
		}
	}
	return params
}
