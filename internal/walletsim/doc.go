// Package walletsim is a development wallet. It answers the deep links a dapp
// builds the way a mobile wallet would: it derives the shared secret on
// connect, issues a session token, signs transfer transactions with a
// throwaway key and redirects back. Nothing is ever submitted to a cluster.
package walletsim
