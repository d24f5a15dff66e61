package walletsim

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"walletlink/internal/protocol/deeplink"
)

// Client plays the phone: it opens a deep link against a simulator and
// returns where the wallet sends the user back to, without following it.
type Client struct {
	HTTP *http.Client
}

// NewClient returns a Client using hc, or http.DefaultClient when nil.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{HTTP: hc}
}

// Open requests link and returns the redirect-back URL. Fallback links that
// wrap the wallet link are unwrapped first.
func (c *Client) Open(ctx context.Context, link string) (*url.URL, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, errors.Wrap(err, "parse link")
	}
	if inner, ok := deeplink.Unwrap(u); ok {
		link = inner
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	hc := *c.HTTP
	hc.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 3 {
		return nil, fmt.Errorf("wallet get %s: %s", req.URL.Path, resp.Status)
	}
	back, err := resp.Location()
	if err != nil {
		return nil, errors.Wrap(err, "wallet redirect")
	}
	return back, nil
}
