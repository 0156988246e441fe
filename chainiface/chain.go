// Package chainiface declares the boundary between the masternode core and
// the blockchain store, UTXO set, and mempool it must consult but does not
// own.
package chainiface

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// BlockMeta is the subset of block-index metadata the core needs.
type BlockMeta struct {
	Height int32
	Hash   chainhash.Hash
	Time   time.Time
	Prev   chainhash.Hash
}

// Chain is implemented by the host's blockchain store and mempool. The core
// only ever reads through this interface; it never mutates chain state.
type Chain interface {
	// TipHeight returns the active chain's current height.
	TipHeight() int32

	// BlockHashAt returns the hash of the block at height, or false if the
	// height is unknown to the active chain.
	BlockHashAt(height int32) (chainhash.Hash, bool)

	// BlockIndexAt returns the block-index entry at height.
	BlockIndexAt(height int32) (BlockMeta, bool)

	// Contains reports whether hash is a block on the currently active
	// chain (not just known to the index).
	Contains(hash chainhash.Hash) bool

	// FindBlock looks up a block-index entry by hash regardless of
	// whether it is on the active chain.
	FindBlock(hash chainhash.Hash) (BlockMeta, bool)

	// CoinDepthAt returns the number of confirmations outpoint has at
	// height, or -1 if it is unknown or already spent.
	CoinDepthAt(outpoint wire.OutPoint, height int32) int32

	// Transaction returns the transaction identified by hash and the hash
	// of the block that included it, if any.
	Transaction(hash chainhash.Hash) (tx *wire.MsgTx, includingBlock chainhash.Hash, found bool)

	// AcceptableInputs reports whether tx would be accepted by the
	// mempool's acceptance predicate, without adding it.
	AcceptableInputs(tx *wire.MsgTx) bool

	// IsUnspentAndOwnedBy reports whether outpoint is an unspent output
	// of exactly expectedAmount locked to expectedScript. This replaces
	// the synthetic-spend-transaction idiom that reuses the mempool's
	// acceptance predicate for the same question.
	IsUnspentAndOwnedBy(outpoint wire.OutPoint, expectedAmount btcutil.Amount, expectedScript []byte) (bool, error)

	// NetworkUpgradeActive reports whether the named network upgrade is
	// active at height.
	NetworkUpgradeActive(name string, height int32) bool

	// IsBlockchainSynced reports whether initial sync has completed.
	IsBlockchainSynced() bool

	// ShuttingDown reports whether the host has requested shutdown; checks
	// in progress must abort without mutating state when this is true.
	ShuttingDown() bool

	// TryLockChain attempts to acquire the chain-wide read lock without
	// blocking. It returns ok=false immediately on contention; callers
	// must not block waiting for the chain.
	TryLockChain() (unlock func(), ok bool)
}
