// Package watcher detects wallet responses in the host's current address and
// forwards each one, once, to the session machine.
//
// A Watcher checks the Location on start and whenever its Trigger fires. The
// Trigger is either a polling Ticker or an Events source fed by a host that
// knows when navigation happens.
package watcher
