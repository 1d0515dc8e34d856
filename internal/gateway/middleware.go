package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Compose folds the middlewares from last to first around a base
// handler that unconditionally fails with NotFound, so middlewares
// execute in registration order on the way in. The first middleware is
// the outermost and observes failures from everything inside it.
func Compose(middlewares ...Middleware) Handler {
	handler := Handler(func(ctx context.Context, req *Request) (*Response, error) {
		return nil, NotFound(routeNotFoundMessage)
	})
	for index := len(middlewares) - 1; index >= 0; index-- {
		handler = middlewares[index](handler)
	}
	return handler
}

// errorBody is the envelope every failure is rendered as.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ErrorMiddleware is the outermost boundary: it converts any failure
// from the wrapped handler into a JSON error response, logging the
// failure first. No error propagates past it.
func ErrorMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			response, err := next(ctx, req)
			if err == nil {
				return response, nil
			}

			status := 500
			message := internalErrorMessage
			var fields map[string]string
			var gatewayErr *Error
			if errors.As(err, &gatewayErr) {
				status = gatewayErr.Status
				message = gatewayErr.Message
				fields = gatewayErr.Fields
			}

			logger.Error("request failed",
				zap.String("method", req.Method),
				zap.String("path", req.Path),
				zap.Int("status", status),
				zap.Error(err),
			)

			return &Response{
				Status: status,
				Body:   errorBody{Error: message, Fields: fields},
			}, nil
		}
	}
}
