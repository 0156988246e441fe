// Package signeriface declares the wallet key-management boundary:
// resolving a collateral outpoint to the keys that control it. Wallet key
// derivation itself lives in the wallet; the core only ever asks this
// interface for the answer.
package signeriface

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"
)

// CollateralKeys is implemented by the host wallet.
type CollateralKeys interface {
	// CollateralKeyPair resolves outpoint to the collateral keypair that
	// controls it. Returns an error if the outpoint is not a wallet-owned
	// UTXO of exactly the collateral amount for the current tip height.
	CollateralKeyPair(outpoint wire.OutPoint) (pub *btcec.PublicKey, priv *btcec.PrivateKey, err error)
}
