// Package chaincfg defines the network-level parameters that the masternode
// core needs but does not own: the default P2P port, the active wire
// protocol floor, and the network-upgrade names consulted through the Chain
// collaborator.
package chaincfg

import "github.com/btcsuite/btcd/btcutil"

// UpgradeHashMessage is the name passed to Chain.NetworkUpgradeActive to
// decide whether signed messages should adopt the HashMessage scheme.
const UpgradeHashMessage = "hash-message-signing"

// Params bundles the network-parameterized constants the masternode core
// needs that are not themselves consensus rules owned by the Chain
// collaborator.
type Params struct {
	// Name is a human readable identifier, e.g. "mainnet", "testnet", "regtest".
	Name string

	// DefaultPort is the only port a Service Address is accepted on.
	DefaultPort uint16

	// RegTest relaxes the service-address routability check when creating
	// an announcement and relays admitted announcements for private or
	// loopback addresses, for local test networks.
	RegTest bool

	// ActiveProtocolVersion is the floor below which announcements and
	// pings are silently ignored.
	ActiveProtocolVersion uint32

	// MinPeerMnAnnounce is the protocol version at and below which a bad
	// announcement signature is tolerated (misbehavior 0) rather than
	// punished (misbehavior 100), for rolling-upgrade compatibility.
	MinPeerMnAnnounce uint32

	// MaxMoneyOut is the consensus supply cap used by the subsidy schedule.
	MaxMoneyOut btcutil.Amount

	// BurnAddresses maps a base58 collateral address to the height at or
	// after which any masternode collateralized by it is considered
	// permanently unspendable, regardless of what the Chain collaborator
	// reports about the UTXO itself.
	BurnAddresses map[string]int32
}

// MainNetParams are representative mainnet values. Callers building a real
// node are expected to supply their own Params wired to actual consensus
// constants; these exist so the package is usable out of the box in tests
// and examples.
var MainNetParams = Params{
	Name:                  "mainnet",
	DefaultPort:           51472,
	RegTest:               false,
	ActiveProtocolVersion: 70917,
	MinPeerMnAnnounce:     70915,
	MaxMoneyOut:           1_000_000_000 * btcutil.SatoshiPerBitcoin,
	BurnAddresses:         map[string]int32{},
}

// RegTestParams relax address-routability for local development. The
// service port must still equal DefaultPort.
var RegTestParams = Params{
	Name:                  "regtest",
	DefaultPort:           51478,
	RegTest:               true,
	ActiveProtocolVersion: 70917,
	MinPeerMnAnnounce:     70915,
	MaxMoneyOut:           1_000_000_000 * btcutil.SatoshiPerBitcoin,
	BurnAddresses:         map[string]int32{},
}
