// Package host serves the dapp over HTTP.
//
// The wallet redirects back to the callback routes under the redirect
// prefix; every such request is a page load whose address is handed to the
// response watcher. The remaining routes start flows and report state as
// JSON:
//
//	POST /connect            start a connection, returns the deep link
//	POST /disconnect         end the session, returns the deep link
//	POST /transactions       {"recipient": "...", "lamports": n} or {"sol": x}
//	GET  /transactions       history with summary, ?limit=n
//	GET  /status             state machine snapshot
//	GET  /open?link=...      fallback endpoint, re-issues a wallet link
//	GET  /browse?target=...  link opening target in the wallet browser
package host
