// Package main runs the development wallet used by walletlink during
// development and tests. It answers Phantom-style universal links and
// redirects back to the dapp.
//
// HTTP API
//
//	GET /ul/v1/connect?dapp_encryption_public_key=..&cluster=..&app_url=..&redirect_link=..
//	    Derive the shared secret, issue a session token and redirect to
//	    redirect_link with phantom_encryption_public_key, nonce and data.
//
//	GET /ul/v1/signAndSendTransaction?dapp_encryption_public_key=..&nonce=..&payload=..&redirect_link=..
//	    Decrypt {session, transaction}, sign the transfer with the wallet
//	    account and redirect with the encrypted {signature}.
//
//	GET /ul/v1/disconnect?dapp_encryption_public_key=..&nonce=..&payload=..&redirect_link=..
//	    Forget the session and redirect back with no response data.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - With --reject every request is answered with errorCode 4001.
//   - Nothing is broadcast: signatures are over a transaction no cluster
//     ever sees.
//   - The default listen address is 127.0.0.1:9090.
package main
