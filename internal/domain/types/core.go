package types

import "strings"

// Action names a wallet deep-link method.
type Action string

const (
	ActionConnect                Action = "connect"
	ActionDisconnect             Action = "disconnect"
	ActionSignAndSendTransaction Action = "signAndSendTransaction"
)

// String returns the string form of the action.
func (a Action) String() string { return string(a) }

// Valid reports whether a is one of the supported wallet methods.
func (a Action) Valid() bool {
	switch a {
	case ActionConnect, ActionDisconnect, ActionSignAndSendTransaction:
		return true
	}
	return false
}

// Callback returns the redirect path segment the wallet invokes for a,
// e.g. "onConnect".
func (a Action) Callback() string {
	if a == "" {
		return ""
	}
	s := string(a)
	return "on" + strings.ToUpper(s[:1]) + s[1:]
}

// ActionFromCallback maps a redirect path segment back to its action.
func ActionFromCallback(segment string) (Action, bool) {
	for _, a := range []Action{ActionConnect, ActionDisconnect, ActionSignAndSendTransaction} {
		if a.Callback() == segment {
			return a, true
		}
	}
	return "", false
}

// CorrelationID links an outbound request to its redirect-back response.
type CorrelationID string

// String returns the string form of the correlation id.
func (id CorrelationID) String() string { return string(id) }

// SessionToken is the opaque session handle issued by the wallet on connect.
type SessionToken string

// String returns the string form of the token.
func (t SessionToken) String() string { return string(t) }

// Cluster is the Solana network label passed to the wallet.
type Cluster string

const (
	ClusterMainnet Cluster = "mainnet-beta"
	ClusterDevnet  Cluster = "devnet"
	ClusterTestnet Cluster = "testnet"
)

// String returns the string form of the cluster.
func (c Cluster) String() string { return string(c) }

// Valid reports whether c is a known cluster label.
func (c Cluster) Valid() bool {
	return c == ClusterMainnet || c == ClusterDevnet || c == ClusterTestnet
}

// ConnectionMethod tags how a session was established. Deep-link is the only
// method this machine drives; the tag is stored with each history record.
type ConnectionMethod string

const MethodDeepLink ConnectionMethod = "deeplink"

// String returns the string form of the method.
func (m ConnectionMethod) String() string { return string(m) }
