package deeplink

import (
	"encoding/json"
	"net/url"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

// KeyState is the codec state a response is parsed against. Keypair is the
// pending connect keypair, Shared the secret of the live session. Either may
// be nil.
type KeyState struct {
	Keypair *domain.Keypair
	Shared  *domain.SharedSecret
}

// OutcomeKind is the result of parsing one inbound URL.
type OutcomeKind int

const (
	OutcomeMalformed OutcomeKind = iota
	OutcomeSuccess
	OutcomeWalletError
	OutcomeDecryptionFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeWalletError:
		return "wallet_error"
	case OutcomeDecryptionFailed:
		return "decryption_failed"
	default:
		return "malformed"
	}
}

// Outcome is the parsed result of a response URL.
type Outcome struct {
	Kind     OutcomeKind
	Response Response

	// Payload is the decrypted JSON of an encrypted success.
	Payload json.RawMessage
	// Raw is the value of an unencrypted success parameter.
	Raw string

	// PeerKey and Installed are set when the response carried the wallet's
	// encryption key and a shared secret was derived from it. The caller
	// decides whether to install the secret.
	PeerKey   *domain.X25519Public
	Installed *domain.SharedSecret

	// Err is the typed failure for every kind except OutcomeSuccess.
	Err error
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Kind == OutcomeSuccess }

// Decode unmarshals the decrypted payload into out.
func (o Outcome) Decode(out any) error {
	if len(o.Payload) == 0 {
		return domain.NewError(domain.KindMalformed, "response carries no encrypted payload")
	}
	if err := json.Unmarshal(o.Payload, out); err != nil {
		return domain.WrapError(domain.KindMalformed, "decode response payload", err)
	}
	return nil
}

var errMissingParams = domain.NewError(domain.KindMalformed, "response is missing required parameters")

// Parse classifies u and resolves it against keys. It never mutates keys and
// returns equal outcomes for equal inputs.
func Parse(u *url.URL, keys KeyState) Outcome {
	return ParseResponse(Classify(u), keys)
}

// ParseResponse resolves an already classified response against keys.
func ParseResponse(r Response, keys KeyState) Outcome {
	out := Outcome{Response: r}
	switch r.Kind {
	case KindError:
		out.Kind = OutcomeWalletError
		werr := domain.NewWalletError(r.ErrorCode, r.ErrorMessage)
		werr.RawCode = r.ErrorCodeRaw
		out.Err = werr
	case KindEncrypted:
		decrypt(&out, r, keys)
	case KindRaw:
		out.Kind = OutcomeSuccess
		out.Raw = r.RawValue
	default:
		out.Kind = OutcomeMalformed
		out.Err = errMissingParams
	}
	return out
}

func decrypt(out *Outcome, r Response, keys KeyState) {
	fail := func(err error) {
		out.Kind = OutcomeDecryptionFailed
		out.Payload = nil
		out.PeerKey = nil
		out.Installed = nil
		if !domain.IsKind(err, domain.KindDecryptionFailed) {
			err = domain.WrapError(domain.KindDecryptionFailed, crypto.ErrDecryptionFailed.Message, err)
		}
		out.Err = err
	}

	nonce, err := crypto.DecodeNonce(r.Nonce)
	if err != nil {
		fail(err)
		return
	}
	ct, err := crypto.DecodeBase58(r.Data)
	if err != nil {
		fail(err)
		return
	}

	secret := keys.Shared
	if r.PeerKey != "" && keys.Keypair != nil {
		peer, err := crypto.DecodeKey32(r.PeerKey)
		if err != nil {
			fail(err)
			return
		}
		derived, err := crypto.DeriveSharedSecret(keys.Keypair.Private, peer)
		if err != nil {
			fail(err)
			return
		}
		out.PeerKey = &peer
		out.Installed = &derived
		secret = &derived
	}

	pt, err := crypto.DecryptRaw(ct, nonce, secret)
	if err != nil {
		fail(err)
		return
	}
	out.Kind = OutcomeSuccess
	out.Payload = json.RawMessage(pt)
}
