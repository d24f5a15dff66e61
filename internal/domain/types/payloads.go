package types

// ConnectData is the decrypted body of a successful connect response.
type ConnectData struct {
	PublicKey string `json:"public_key"`
	Session   string `json:"session"`
}

// SignatureData is the decrypted body of a successful signAndSendTransaction
// response.
type SignatureData struct {
	Signature string `json:"signature"`
}

// DisconnectPayload is encrypted into the disconnect request.
type DisconnectPayload struct {
	Session string `json:"session"`
}

// SignAndSendTransactionPayload is encrypted into the transaction request.
// Transaction holds the Base58 serialised transaction.
type SignAndSendTransactionPayload struct {
	Session     string `json:"session"`
	Transaction string `json:"transaction"`
}
