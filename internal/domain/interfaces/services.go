package interfaces

import (
	"context"
	"net/url"

	domaintypes "walletlink/internal/domain/types"
)

// Navigator hands an outbound deep link to the host environment. It must not
// block waiting for the wallet: resolution happens when the redirect comes
// back.
type Navigator interface {
	Navigate(ctx context.Context, link domaintypes.Link) error
}

// Location is the host's current address, the equivalent of the browser
// address bar.
type Location interface {
	Current(ctx context.Context) (*url.URL, error)
	// Replace swaps the current address without a navigation or reload.
	Replace(ctx context.Context, u *url.URL) error
}

// ResponseHandler consumes a redirect-back URL from the wallet.
type ResponseHandler interface {
	HandleResponse(ctx context.Context, u *url.URL) (domaintypes.Transition, error)
}

// Expirer resolves flows whose bounded wait has elapsed.
type Expirer interface {
	Expire(ctx context.Context) (domaintypes.Transition, bool, error)
}
