package deeplink

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"walletlink/internal/domain"
)

// DefaultRedirectPrefix is the path under the app URL that hosts the wallet
// callbacks.
const DefaultRedirectPrefix = "/wallet"

// Redirects produces the absolute redirect targets the wallet invokes. Each
// action has its own stable path (<prefix>/onConnect, ...) so an inbound
// response can be classified without extra state; the correlation id rides
// along as a query parameter.
type Redirects struct {
	base   *url.URL
	prefix string
}

// NewRedirects returns redirect targets rooted at appURL + prefix.
func NewRedirects(appURL, prefix string) (*Redirects, error) {
	base, err := absoluteURL(appURL)
	if err != nil {
		return nil, fmt.Errorf("redirect base: %w", err)
	}
	if prefix == "" {
		prefix = DefaultRedirectPrefix
	}
	prefix = "/" + strings.Trim(prefix, "/")
	return &Redirects{base: base, prefix: prefix}, nil
}

// Path returns the callback path for action, e.g. "/wallet/onConnect".
func (r *Redirects) Path(action domain.Action) string {
	return path.Join(strings.TrimRight(r.base.Path, "/"), r.prefix, action.Callback())
}

// Prefix returns the callback path prefix, e.g. "/wallet".
func (r *Redirects) Prefix() string {
	return path.Join(strings.TrimRight(r.base.Path, "/"), r.prefix)
}

// For returns the absolute redirect URL for action and correlation id.
func (r *Redirects) For(action domain.Action, id domain.CorrelationID) string {
	u := *r.base
	u.Path = r.Path(action)
	u.RawPath = ""
	u.Fragment = ""
	q := url.Values{}
	if id != "" {
		q.Set(ParamCorrelationID, id.String())
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ActionFromPath infers the action from a callback path's last segment.
func ActionFromPath(p string) (domain.Action, bool) {
	return domain.ActionFromCallback(path.Base(p))
}
