package gateway

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func dispatchHandler(table *RouteTable, prefix string) Handler {
	return Compose(RouteMiddleware(table, prefix))
}

func TestDispatchFailsNotFoundForUnknownPath(t *testing.T) {
	table := NewRouteTable()
	table.Register(http.MethodGet, "/gifts", func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{Status: http.StatusOK}, nil
	})

	_, err := dispatchHandler(table, "/api")(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/api/unknown",
	})

	var gatewayErr *Error
	if !errors.As(err, &gatewayErr) || gatewayErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %v", err)
	}
	if gatewayErr.Message != "Route not found" {
		t.Fatalf("unexpected message: %s", gatewayErr.Message)
	}
}

func TestDispatchFailsMethodNotAllowedForKnownPath(t *testing.T) {
	table := NewRouteTable()
	table.Register(http.MethodGet, "/gifts", func(ctx context.Context, req *Request) (*Response, error) {
		return &Response{Status: http.StatusOK}, nil
	})

	_, err := dispatchHandler(table, "/api")(context.Background(), &Request{
		Method: http.MethodDelete,
		Path:   "/api/gifts",
	})

	var gatewayErr *Error
	if !errors.As(err, &gatewayErr) || gatewayErr.Status != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for known path with wrong method, got %v", err)
	}
	if gatewayErr.Message != "Method not allowed" {
		t.Fatalf("unexpected message: %s", gatewayErr.Message)
	}
}

func TestDispatchStripsPathPrefix(t *testing.T) {
	invoked := false
	table := NewRouteTable()
	table.Register(http.MethodGet, "/gifts", func(ctx context.Context, req *Request) (*Response, error) {
		invoked = true
		return &Response{Status: http.StatusOK}, nil
	})

	response, err := dispatchHandler(table, "/api")(context.Background(), &Request{
		Method: http.MethodGet,
		Path:   "/api/gifts",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !invoked || response.Status != http.StatusOK {
		t.Fatalf("expected the handler to run")
	}
}

func TestDispatchMergesCapturedParams(t *testing.T) {
	var seen map[string]string
	table := NewRouteTable()
	table.Register(http.MethodGet, "/gifts/:id", func(ctx context.Context, req *Request) (*Response, error) {
		seen = req.Params
		return &Response{Status: http.StatusOK}, nil
	})

	request := &Request{
		Method: http.MethodGet,
		Path:   "/api/gifts/g-42",
		Params: map[string]string{"id": "stale", "locale": "pt-BR"},
	}
	if _, err := dispatchHandler(table, "/api")(context.Background(), request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Captures overwrite same-named params; unrelated params survive.
	if seen["id"] != "g-42" {
		t.Fatalf("expected capture to overwrite existing param, got %#v", seen)
	}
	if seen["locale"] != "pt-BR" {
		t.Fatalf("expected unrelated param to survive, got %#v", seen)
	}
}

func TestDispatchReturnsHandlerResultDirectly(t *testing.T) {
	expected := &Response{Status: http.StatusCreated, Body: "created"}
	table := NewRouteTable()
	table.Register(http.MethodPost, "/gifts/create", func(ctx context.Context, req *Request) (*Response, error) {
		return expected, nil
	})

	response, err := dispatchHandler(table, "/api")(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/api/gifts/create",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response != expected {
		t.Fatalf("expected the handler response untouched")
	}
}
