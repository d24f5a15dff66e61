package walletsim

// Wallet error codes returned in errorCode.
const (
	CodeUserRejected  = 4001
	CodeUnauthorized  = 4100
	CodeInvalidParams = -32602
	CodeInternal      = -32603
)

// walletError is an error the simulator reports to the dapp rather than to
// its own caller.
type walletError struct {
	Code    int
	Message string
}

func (e *walletError) Error() string { return e.Message }

func rejectErr(msg string) error {
	return &walletError{Code: CodeUserRejected, Message: msg}
}

func invalidParams(msg string) error {
	return &walletError{Code: CodeInvalidParams, Message: msg}
}

func unauthorized(msg string) error {
	return &walletError{Code: CodeUnauthorized, Message: msg}
}
