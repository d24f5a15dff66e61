// Package domain defines the core data models and contracts of the wallet
// deep-link protocol. It contains plain types (wire/state) and interfaces
// only; the concrete definitions live in the types and interfaces
// subpackages and are re-exported here as aliases.
package domain
