package deeplink

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"walletlink/internal/domain"
)

// Kind is the shape of an inbound response.
type Kind int

const (
	// KindMalformed: no recognisable response parameters.
	KindMalformed Kind = iota
	// KindError: the wallet reported errorCode/errorMessage.
	KindError
	// KindEncrypted: data and nonce, optionally with the wallet's key.
	KindEncrypted
	// KindRaw: an unencrypted signature or public_key.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindEncrypted:
		return "encrypted"
	case KindRaw:
		return "raw"
	default:
		return "malformed"
	}
}

// Response is the tagged classification of an inbound redirect URL.
type Response struct {
	Kind          Kind
	Action        domain.Action // from the callback path; empty when unknown
	CorrelationID domain.CorrelationID

	// KindError. ErrorCodeRaw holds a non-numeric errorCode verbatim, with
	// ErrorCode left at 0.
	ErrorCode    int
	ErrorCodeRaw string
	ErrorMessage string

	// KindEncrypted
	PeerKey string // optional Base58 wallet encryption key
	Data    string
	Nonce   string

	// KindRaw
	RawParam string
	RawValue string
}

// Classify inspects u once and tags its shape. The precedence is error,
// encrypted, raw, malformed.
func Classify(u *url.URL) Response {
	if u == nil {
		return Response{}
	}
	p := params(u)
	r := Response{CorrelationID: domain.CorrelationID(p.Get(ParamCorrelationID))}
	if a, ok := ActionFromPath(u.Path); ok {
		r.Action = a
	}

	if code := p.Get(ParamErrorCode); code != "" {
		r.Kind = KindError
		if n, err := strconv.Atoi(code); err == nil {
			r.ErrorCode = n
		} else {
			r.ErrorCodeRaw = code
		}
		r.ErrorMessage = p.Get(ParamErrorMessage)
		if r.ErrorMessage == "" {
			r.ErrorMessage = "wallet returned error " + code
		}
		return r
	}

	data, nonce := p.Get(ParamData), p.Get(ParamNonce)
	if data != "" && nonce != "" {
		r.Kind = KindEncrypted
		r.Data = data
		r.Nonce = nonce
		r.PeerKey = p.Get(ParamPhantomEncryptionPublicKey)
		return r
	}

	for _, name := range []string{ParamSignature, ParamPublicKey} {
		if v := p.Get(name); v != "" {
			r.Kind = KindRaw
			r.RawParam = name
			r.RawValue = v
			return r
		}
	}

	r.Kind = KindMalformed
	return r
}

// IsResponse reports whether u carries any response parameter, including a
// bare correlation id. A plain page load returns false.
func IsResponse(u *url.URL) bool {
	if u == nil {
		return false
	}
	p := params(u)
	for _, name := range responseParams {
		if p.Has(name) {
			return true
		}
	}
	return false
}

// Scrub returns a copy of u with every response parameter removed from both
// the query and the fragment.
func Scrub(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	out := *u
	q := u.Query()
	for _, name := range responseParams {
		q.Del(name)
	}
	out.RawQuery = q.Encode()

	if strings.Contains(u.Fragment, "=") {
		f, err := url.ParseQuery(u.Fragment)
		if err == nil {
			for _, name := range responseParams {
				f.Del(name)
			}
			out.Fragment = f.Encode()
			out.RawFragment = ""
		}
	}
	return &out
}

// Key identifies a response for de-duplication: the correlation id when
// present, otherwise a digest of the path and the response parameters.
func Key(u *url.URL) string {
	if u == nil {
		return ""
	}
	p := params(u)
	if id := p.Get(ParamCorrelationID); id != "" {
		return "cid:" + id
	}
	names := append([]string(nil), responseParams...)
	sort.Strings(names)
	h := sha256.New()
	h.Write([]byte(u.Path))
	for _, name := range names {
		h.Write([]byte{0})
		h.Write([]byte(name))
		h.Write([]byte{'='})
		h.Write([]byte(p.Get(name)))
	}
	return "sha:" + hex.EncodeToString(h.Sum(nil)[:16])
}

// params merges query and fragment parameters. Fragment values fill in only
// keys absent from the query, so hash-based fallback flows parse the same way.
func params(u *url.URL) url.Values {
	q := u.Query()
	if !strings.Contains(u.Fragment, "=") {
		return q
	}
	f, err := url.ParseQuery(strings.TrimPrefix(u.Fragment, "?"))
	if err != nil {
		return q
	}
	for k, vs := range f {
		if !q.Has(k) {
			q[k] = vs
		}
	}
	return q
}
