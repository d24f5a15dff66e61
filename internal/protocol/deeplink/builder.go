package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

// Config describes the wallet endpoints and the dapp's own identity.
type Config struct {
	// Scheme is the wallet's custom URL scheme, e.g. "phantom".
	Scheme string
	// UniversalBase is the universal link base, e.g. "https://phantom.app/ul".
	UniversalBase string
	// AppURL is the dapp origin shown by the wallet.
	AppURL string
	// Style is the preferred link form where the platform allows it.
	Style    LinkStyle
	Platform Platform
	// FallbackPath is the dapp endpoint that re-issues a link from the
	// calling tab, e.g. "/open". Empty disables the fallback.
	FallbackPath string
}

// EncryptedPayload is a codec-sealed request body. Builders accept only this
// type for authenticated actions so plaintext never reaches a URL.
type EncryptedPayload struct {
	Nonce      domain.Nonce
	Ciphertext []byte
}

// Seal encrypts payload under secret for inclusion in an action URL.
func Seal(payload any, secret *domain.SharedSecret) (EncryptedPayload, error) {
	nonce, ct, err := crypto.Encrypt(payload, secret)
	if err != nil {
		return EncryptedPayload{}, err
	}
	return EncryptedPayload{Nonce: nonce, Ciphertext: ct}, nil
}

// Builder constructs outbound deep links.
type Builder struct {
	cfg       Config
	appURL    *url.URL
	universal *url.URL
}

// NewBuilder validates cfg and returns a Builder.
func NewBuilder(cfg Config) (*Builder, error) {
	app, err := absoluteURL(cfg.AppURL)
	if err != nil {
		return nil, fmt.Errorf("app url: %w", err)
	}
	uni, err := absoluteURL(cfg.UniversalBase)
	if err != nil {
		return nil, fmt.Errorf("universal base: %w", err)
	}
	if cfg.Style == "" {
		cfg.Style = StyleUniversal
	}
	if cfg.Style == StyleScheme && cfg.Scheme == "" {
		return nil, fmt.Errorf("scheme link style requires a scheme")
	}
	if cfg.Platform == "" {
		cfg.Platform = PlatformDesktop
	}
	if cfg.FallbackPath != "" && !strings.HasPrefix(cfg.FallbackPath, "/") {
		cfg.FallbackPath = "/" + cfg.FallbackPath
	}
	return &Builder{cfg: cfg, appURL: app, universal: uni}, nil
}

// AppURL returns the dapp origin advertised to the wallet.
func (b *Builder) AppURL() string { return b.appURL.String() }

// Platform returns the configured platform.
func (b *Builder) Platform() Platform { return b.cfg.Platform }

// ConnectURL builds the connect link for dappKey. redirect must be the
// absolute URL the wallet invokes on completion.
func (b *Builder) ConnectURL(dappKey domain.X25519Public, redirect string, cluster domain.Cluster) (string, error) {
	if dappKey.IsZero() {
		return "", domain.NewError(domain.KindPrecondition, "dapp public key is required")
	}
	if err := checkRedirect(redirect); err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(ParamDappEncryptionPublicKey, crypto.EncodeBase58(dappKey[:]))
	q.Set(ParamCluster, cluster.String())
	q.Set(ParamAppURL, b.appURL.String())
	q.Set(ParamRedirectLink, redirect)
	return b.finish(b.endpoint(domain.ActionConnect), q), nil
}

// ActionURL builds the link for an authenticated action. The session token
// must already be inside enc; it is required here only as a precondition and
// never written to the URL.
func (b *Builder) ActionURL(
	action domain.Action,
	session domain.SessionToken,
	enc EncryptedPayload,
	dappKey domain.X25519Public,
	redirect string,
) (string, error) {
	if action != domain.ActionDisconnect && action != domain.ActionSignAndSendTransaction {
		return "", fmt.Errorf("action %q is not an authenticated action", action)
	}
	if session == "" {
		return "", domain.NewError(domain.KindPrecondition, "session token is required")
	}
	if len(enc.Ciphertext) == 0 {
		return "", domain.NewError(domain.KindPrecondition, "encrypted payload is required")
	}
	if dappKey.IsZero() {
		return "", domain.NewError(domain.KindPrecondition, "dapp public key is required")
	}
	if err := checkRedirect(redirect); err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(ParamDappEncryptionPublicKey, crypto.EncodeBase58(dappKey[:]))
	q.Set(ParamNonce, crypto.EncodeBase58(enc.Nonce[:]))
	q.Set(ParamRedirectLink, redirect)
	q.Set(ParamPayload, crypto.EncodeBase58(enc.Ciphertext))
	return b.finish(b.endpoint(action), q), nil
}

// BrowseURL builds a link that opens target inside the wallet's in-app
// browser.
func (b *Builder) BrowseURL(target string) (string, error) {
	if err := checkRedirect(target); err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(ParamRef, b.appURL.String())
	return strings.TrimRight(b.universal.String(), "/") + "/browse/" + url.PathEscape(target) + "?" + q.Encode(), nil
}

// Unwrap extracts the wallet link from a fallback-endpoint URL built by this
// Builder. ok is false when u is not a fallback URL.
func Unwrap(u *url.URL) (string, bool) {
	link := u.Query().Get("link")
	if link == "" {
		return "", false
	}
	return link, true
}

// IsWalletLink reports whether link points at the configured wallet, in
// either link form. The fallback endpoint only re-issues such links.
func (b *Builder) IsWalletLink(link string) bool {
	universal := strings.TrimRight(b.universal.String(), "/") + "/"
	if strings.HasPrefix(link, universal) {
		return true
	}
	return b.cfg.Scheme != "" && strings.HasPrefix(link, b.cfg.Scheme+"://")
}

func (b *Builder) style() LinkStyle {
	if b.cfg.Platform.StripsSchemeQuery() {
		return StyleUniversal
	}
	return b.cfg.Style
}

func (b *Builder) endpoint(action domain.Action) string {
	if b.style() == StyleScheme {
		return b.cfg.Scheme + "://v1/" + action.String()
	}
	return strings.TrimRight(b.universal.String(), "/") + "/v1/" + action.String()
}

func (b *Builder) finish(endpoint string, q url.Values) string {
	link := endpoint + "?" + q.Encode()
	if !b.cfg.Platform.StripsSchemeQuery() || b.cfg.FallbackPath == "" {
		return link
	}
	u := *b.appURL
	u.Path = strings.TrimRight(u.Path, "/") + b.cfg.FallbackPath
	u.RawQuery = url.Values{"link": {link}}.Encode()
	return u.String()
}

func absoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	return u, nil
}

func checkRedirect(redirect string) error {
	u, err := absoluteURL(redirect)
	if err != nil {
		return domain.WrapError(domain.KindPrecondition, "redirect link must be absolute", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return domain.NewError(domain.KindPrecondition, "redirect link must be http(s)")
	}
	return nil
}
