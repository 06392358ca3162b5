// Package paypal adapts the external payment processor's order API.
// The gateway is selected once at startup: Client when credentials are
// configured, Disabled otherwise.
package paypal

import (
	"context"

	"github.com/adventuresync/server/internal/domain"
)

// Order is the subset of the processor's order representation the API
// passes through to the client.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Gateway is the processor capability surface. Implementations are Client
// (live credentials) and Disabled (graceful degrade).
type Gateway interface {
	// ClientToken returns a browser-side setup token.
	ClientToken(ctx context.Context) (string, error)
	// CreateOrder opens an order for the given amount.
	CreateOrder(ctx context.Context, amount, currency, intent string) (*Order, error)
	// CaptureOrder captures a previously created order.
	CaptureOrder(ctx context.Context, orderID string) (*Order, error)
}

// Disabled is the gateway used when processor credentials are absent.
// Every method deterministically reports the subsystem as unavailable so
// the rest of the system keeps functioning.
type Disabled struct{}

func (Disabled) ClientToken(ctx context.Context) (string, error) {
	return "", domain.ErrUnavailable
}

func (Disabled) CreateOrder(ctx context.Context, amount, currency, intent string) (*Order, error) {
	return nil, domain.ErrUnavailable
}

func (Disabled) CaptureOrder(ctx context.Context, orderID string) (*Order, error) {
	return nil, domain.ErrUnavailable
}
