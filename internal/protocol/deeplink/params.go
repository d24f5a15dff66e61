package deeplink

// Outbound query parameters.
const (
	ParamDappEncryptionPublicKey = "dapp_encryption_public_key"
	ParamCluster                 = "cluster"
	ParamAppURL                  = "app_url"
	ParamRedirectLink            = "redirect_link"
	ParamNonce                   = "nonce"
	ParamPayload                 = "payload"
	ParamRef                     = "ref"
)

// Inbound query parameters.
const (
	ParamErrorCode                  = "errorCode"
	ParamErrorMessage               = "errorMessage"
	ParamPhantomEncryptionPublicKey = "phantom_encryption_public_key"
	ParamData                       = "data"
	ParamSignature                  = "signature"
	ParamPublicKey                  = "public_key"

	// ParamCorrelationID is our own marker, carried on the redirect link and
	// preserved by the wallet.
	ParamCorrelationID = "cid"
)

// responseParams are scrubbed from the address once a response is consumed.
var responseParams = []string{
	ParamErrorCode,
	ParamErrorMessage,
	ParamPhantomEncryptionPublicKey,
	ParamData,
	ParamNonce,
	ParamSignature,
	ParamPublicKey,
	ParamCorrelationID,
}
