// Package deeplink builds outbound wallet deep links and parses the
// redirect-back responses.
//
// Outbound links take one of two forms:
//
//	<scheme>://v1/<action>?...              custom app scheme
//	https://<wallet-domain>/ul/v1/<action>?... universal link
//
// carrying dapp_encryption_public_key, cluster, app_url and redirect_link, and
// for authenticated actions nonce and payload. All binary values are Base58.
//
// Inbound URLs are classified once, up front, into one of four shapes
// (error, encrypted, raw, malformed) by Classify; Parse then turns a
// classified response plus the caller's key state into an Outcome. Parsing
// never mutates state: a shared secret derived while parsing a connect
// response is returned in Outcome.Installed for the caller to keep.
package deeplink
