package domain

import (
	interfaces "walletlink/internal/domain/interfaces"
	types "walletlink/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Action                        = types.Action
	CorrelationID                 = types.CorrelationID
	SessionToken                  = types.SessionToken
	Cluster                       = types.Cluster
	ConnectionMethod              = types.ConnectionMethod
	X25519Public                  = types.X25519Public
	X25519Private                 = types.X25519Private
	Keypair                       = types.Keypair
	SharedSecret                  = types.SharedSecret
	Nonce                         = types.Nonce
	Link                          = types.Link
	State                         = types.State
	WalletIdentity                = types.WalletIdentity
	Session                       = types.Session
	Transition                    = types.Transition
	PendingRequest                = types.PendingRequest
	TransactionRequest            = types.TransactionRequest
	TransactionRecord             = types.TransactionRecord
	ConnectData                   = types.ConnectData
	SignatureData                 = types.SignatureData
	DisconnectPayload             = types.DisconnectPayload
	SignAndSendTransactionPayload = types.SignAndSendTransactionPayload
	Error                         = types.Error
	Kind                          = types.Kind
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	PendingStore    = interfaces.PendingStore
	SessionStore    = interfaces.SessionStore
	TransactionSink = interfaces.TransactionSink
	HistoryStore    = interfaces.HistoryStore
	Navigator       = interfaces.Navigator
	Location        = interfaces.Location
	ResponseHandler = interfaces.ResponseHandler
	Expirer         = interfaces.Expirer
)

// Kinds of protocol failure.
const (
	KindInternal         = types.KindInternal
	KindWalletError      = types.KindWalletError
	KindDecryptionFailed = types.KindDecryptionFailed
	KindMalformed        = types.KindMalformed
	KindTimeout          = types.KindTimeout
	KindStale            = types.KindStale
	KindPrecondition     = types.KindPrecondition
)

// Wallet methods.
const (
	ActionConnect                = types.ActionConnect
	ActionDisconnect             = types.ActionDisconnect
	ActionSignAndSendTransaction = types.ActionSignAndSendTransaction
)

// Connection lifecycle states.
const (
	StateDisconnected      = types.StateDisconnected
	StateConnecting        = types.StateConnecting
	StateConnected         = types.StateConnected
	StateAwaitingSignature = types.StateAwaitingSignature
)

// Clusters and connection methods.
const (
	ClusterMainnet = types.ClusterMainnet
	ClusterDevnet  = types.ClusterDevnet
	ClusterTestnet = types.ClusterTestnet

	MethodDeepLink = types.MethodDeepLink
)

// Error constructors and helpers.
var (
	NewError           = types.NewError
	WrapError          = types.WrapError
	NewWalletError     = types.NewWalletError
	KindOf             = types.KindOf
	IsKind             = types.IsKind
	UserMessage        = types.UserMessage
	ActionFromCallback = types.ActionFromCallback
	LamportsFromSOL    = types.LamportsFromSOL
)
