package session

import "walletlink/internal/domain"

var (
	// ErrNotConnected is returned by operations that need a live session.
	ErrNotConnected = domain.NewError(domain.KindPrecondition, "wallet is not connected")

	// ErrAlreadyConnected is returned by Connect while a session is live.
	ErrAlreadyConnected = domain.NewError(domain.KindPrecondition, "wallet is already connected")

	// ErrBusy is returned while another wallet request is still in flight.
	ErrBusy = domain.NewError(domain.KindPrecondition, "a wallet request is already in flight")

	// ErrStale is returned for responses that do not match the pending request.
	ErrStale = domain.NewError(domain.KindStale, "response does not match the pending request")

	// ErrTimeout resolves flows the wallet never answered.
	ErrTimeout = domain.NewError(domain.KindTimeout, "no response from wallet")

	// ErrNoSession is returned for connect responses that carry no usable session.
	ErrNoSession = domain.NewError(domain.KindMalformed, "connect response carries no session")
)
