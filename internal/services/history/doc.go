// Package history reads the transaction history written by the session
// machine and aggregates it for display.
package history
