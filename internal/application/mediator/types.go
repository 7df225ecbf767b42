package mediator

import "context"

// Request is any game command or query sent through the mediator
type Request interface{}

// Response is whatever the matching handler returns
type Response interface{}

// RequestHandler serves exactly one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware runs around every dispatched request; logging and command metrics hook in here
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)
