package client

import "context"

// Client is the transport contract the identity and storage services are
// written against. HTTPClient is the production implementation.
type Client interface {
	Do(ctx context.Context, req Request) (*Response, error)
	Version(ctx context.Context) (string, error)
}
