// Package netiface declares the P2P relay boundary. The masternode core
// emits "relay this" requests through it; it never touches a socket itself.
package netiface

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Kind identifies which inventory type is being relayed.
type Kind int

const (
	// MasternodeAnnounce relays an accepted Announcement.
	MasternodeAnnounce Kind = iota
	// MasternodePing relays an accepted Heartbeat.
	MasternodePing
)

func (k Kind) String() string {
	switch k {
	case MasternodeAnnounce:
		return "mnb"
	case MasternodePing:
		return "mnp"
	default:
		return "unknown"
	}
}

// Network is implemented by the P2P gossip layer.
type Network interface {
	// Relay announces an inventory item of the given kind and hash to
	// connected peers.
	Relay(kind Kind, hash chainhash.Hash)
}
