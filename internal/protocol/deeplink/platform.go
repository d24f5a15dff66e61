package deeplink

import (
	"fmt"
	"strings"
)

// LinkStyle selects the outbound URL form.
type LinkStyle string

const (
	// StyleUniversal emits https://<wallet-domain>/ul/v1/<action>.
	StyleUniversal LinkStyle = "universal"
	// StyleScheme emits <scheme>://v1/<action>.
	StyleScheme LinkStyle = "scheme"
)

// ParseLinkStyle parses a configured style name.
func ParseLinkStyle(s string) (LinkStyle, error) {
	switch LinkStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleUniversal, "":
		return StyleUniversal, nil
	case StyleScheme:
		return StyleScheme, nil
	}
	return "", fmt.Errorf("unknown link style %q", s)
}

// Platform identifies the browser environment the dapp runs in.
type Platform string

const (
	PlatformDesktop    Platform = "desktop"
	PlatformAndroid    Platform = "android"
	PlatformIOSSafari  Platform = "ios-safari"
	PlatformIOSChrome  Platform = "ios-chrome"
	PlatformIOSWebView Platform = "ios-webview"
)

// ParsePlatform parses a configured platform name.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PlatformDesktop, nil
	case PlatformDesktop, PlatformAndroid, PlatformIOSSafari, PlatformIOSChrome, PlatformIOSWebView:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// StripsSchemeQuery reports whether the platform's browser drops query
// parameters when a custom-scheme link hands control back. Links from these
// platforms must use the universal form and, when configured, the fallback
// endpoint so the wallet returns to the calling tab.
func (p Platform) StripsSchemeQuery() bool {
	return p == PlatformIOSChrome || p == PlatformIOSWebView
}

// DetectPlatform guesses the platform from a User-Agent header.
func DetectPlatform(userAgent string) Platform {
	ua := strings.ToLower(userAgent)
	ios := strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad")
	switch {
	case ios && strings.Contains(ua, "crios"):
		return PlatformIOSChrome
	case ios && strings.Contains(ua, "safari"):
		return PlatformIOSSafari
	case ios:
		return PlatformIOSWebView
	case strings.Contains(ua, "android"):
		return PlatformAndroid
	}
	return PlatformDesktop
}
