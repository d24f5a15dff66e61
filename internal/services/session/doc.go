// Package session is the wallet connection state machine.
//
// It owns the ephemeral keypair, the shared secret and the wallet session
// token, persists what must survive the navigation to the wallet and back,
// and turns redirect-back responses into state transitions:
//
//	Disconnected --Connect--> Connecting --success--> Connected
//	Connecting --failure/timeout--> Disconnected
//	Connected --SendTransaction--> AwaitingSignature --any--> Connected
//	Connected --Disconnect--> Disconnected
package session
