package types

import (
	"errors"
	"fmt"
)

// Kind categorises protocol failures so callers can decide how to surface
// them.
type Kind uint8

const (
	KindInternal Kind = iota
	// KindWalletError: the wallet explicitly reported a failure.
	KindWalletError
	// KindDecryptionFailed: authentication failed, or no shared secret was held.
	KindDecryptionFailed
	// KindMalformed: the response lacked the parameters its shape requires.
	KindMalformed
	// KindTimeout: no response arrived within the bounded wait.
	KindTimeout
	// KindStale: the response does not match the pending correlation record.
	KindStale
	// KindPrecondition: the operation is not valid in the current state.
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindWalletError:
		return "wallet_error"
	case KindDecryptionFailed:
		return "decryption_failed"
	case KindMalformed:
		return "malformed"
	case KindTimeout:
		return "timeout"
	case KindStale:
		return "stale"
	case KindPrecondition:
		return "precondition"
	default:
		return "internal"
	}
}

// Error is the typed failure produced by the protocol core.
type Error struct {
	Kind    Kind
	Code    int    // wallet error code, KindWalletError only
	RawCode string // wallet error code as sent when it is not an integer
	Message string // wallet message or internal description
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.Kind == KindWalletError {
		if e.RawCode != "" {
			msg = fmt.Sprintf("wallet error %s: %s", e.RawCode, e.Message)
		} else {
			msg = fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
		}
	}
	if e.Cause == nil {
		return msg
	}
	return msg + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches a target of the same kind whose message is empty or equal, so
// sentinels match themselves and &Error{Kind: k} matches any error of kind k.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// NewError returns an error of kind with msg.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WrapError returns an error of kind with msg wrapping cause.
func WrapError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// NewWalletError returns a KindWalletError carrying the wallet's code and message.
func NewWalletError(code int, msg string) *Error {
	return &Error{Kind: KindWalletError, Code: code, Message: msg}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// UserMessage renders err for display. Wallet errors are shown verbatim;
// cryptographic and protocol details are never exposed.
func UserMessage(action Action, err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindWalletError:
			return e.Message
		case KindTimeout:
			return "No response from wallet, please retry."
		case KindPrecondition:
			return e.Message
		}
	}
	if action == ActionSignAndSendTransaction {
		return "Transaction failed, please retry."
	}
	return "Connection failed, please retry."
}
