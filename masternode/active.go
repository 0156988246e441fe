package masternode

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"
)

// Active is implemented by the host's locally-run masternode controller,
// if any. Announcement admission consults it for two things: skipping the
// input checks for our own re-broadcast announcement, and enabling
// hot/cold mode when a remote wallet announces a masternode using this
// node's operator key.
type Active interface {
	// OperatorPubKey returns this node's operator public key, or nil when
	// no local masternode is configured.
	OperatorPubKey() *btcec.PublicKey

	// LocalOutpoint returns the collateral outpoint of the locally-run
	// masternode, ok=false when it has not been activated yet.
	LocalOutpoint() (outpoint wire.OutPoint, ok bool)

	// EnableHotCold is invoked when an accepted announcement advertises
	// this node's operator key: the collateral wallet has announced us
	// remotely and we should begin operating for outpoint at service.
	EnableHotCold(outpoint wire.OutPoint, service Address)
}
