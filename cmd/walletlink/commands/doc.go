// Package commands defines the walletlink CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - connect      Print the connect deep link (and optionally a QR code)
//   - send         Ask the wallet to sign a SOL transfer
//   - disconnect   End the session and print the disconnect link
//   - receive      Load the URL the wallet redirected back to
//   - watch        Keep checking the address bar and resolve timeouts
//   - status       Print the connection state
//   - history      Print the transaction history and summary
//   - browse       Print a link opening a page in the wallet browser
//   - serve        Run the HTTP dapp host
//
// # Implementation
//
// Every invocation is a page load. Each command builds a fresh dependency
// graph from the state directory, so a link printed by one invocation is
// resolved by a later "receive" in a different process.
package commands
