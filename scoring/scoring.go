// Package scoring implements the deterministic masternode payment-winner
// score: the further a masternode's hash is from a block's hash, the
// better its score, and the furthest wins that block's payment.
package scoring

import (
	"math/big"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/internal/compact"
)

// BlockHashSource supplies the hash of the block at a given height, the
// only chain fact the scoring function needs. It is satisfied by
// chainiface.Chain's BlockHashAt method; scoring depends on this narrower
// interface instead of the full Chain boundary to keep it a free function
// of a single chain fact.
type BlockHashSource interface {
	BlockHashAt(height int32) (chainhash.Hash, bool)
}

// Score computes the 256-bit score of outpoint at height against chain. A
// height whose block hash is unavailable yields the zero score, the
// sentinel that always loses ties. Height 0 means "use the current tip",
// left to the caller's BlockHashSource to interpret.
func Score(chain BlockHashSource, outpoint wire.OutPoint, height int32) *big.Int {
	blockHash, ok := chain.BlockHashAt(height)
	if !ok {
		return new(big.Int)
	}
	return score(blockHash, outpoint)
}

func score(blockHash chainhash.Hash, outpoint wire.OutPoint) *big.Int {
	h1 := chainhash.DoubleHashH(blockHash[:])

	aux := fieldAdditive(outpoint)
	buf := make([]byte, 0, chainhash.HashSize+len(aux))
	buf = append(buf, blockHash[:]...)
	buf = append(buf, aux...)
	h2 := chainhash.DoubleHashH(buf)

	x := compact.HashToBig(&h1)
	y := compact.HashToBig(&h2)
	return new(big.Int).Abs(new(big.Int).Sub(y, x))
}

// fieldAdditive combines an outpoint's 32-byte tx hash with its 32-bit
// output index: the index is added to the hash interpreted as an unsigned
// little-endian 256-bit integer, wrapping modulo 2^256, and the sum is
// re-serialized little-endian.
func fieldAdditive(outpoint wire.OutPoint) []byte {
	mod := new(big.Int).Lsh(big.NewInt(1), 256)
	sum := compact.HashToBig(&outpoint.Hash)
	sum.Add(sum, big.NewInt(int64(outpoint.Index)))
	sum.Mod(sum, mod)

	out := make([]byte, chainhash.HashSize)
	sum.FillBytes(out)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Scorer memoizes block hashes per height so repeated scoring calls across
// many masternodes for the same height only look the hash up once. The map
// is append-only and safe across a reorg only in the sense the reorg is
// expected to invalidate the whole cache; callers that detect a reorg
// should construct a fresh Scorer.
type Scorer struct {
	chain BlockHashSource

	mu     sync.Mutex
	hashes map[int32]chainhash.Hash
}

// NewScorer returns a Scorer backed by chain.
func NewScorer(chain BlockHashSource) *Scorer {
	return &Scorer{chain: chain, hashes: make(map[int32]chainhash.Hash)}
}

// Score computes the score of outpoint at height, using and populating the
// per-height block-hash memoization.
func (s *Scorer) Score(outpoint wire.OutPoint, height int32) *big.Int {
	blockHash, ok := s.blockHash(height)
	if !ok {
		return new(big.Int)
	}
	return score(blockHash, outpoint)
}

func (s *Scorer) blockHash(height int32) (chainhash.Hash, bool) {
	s.mu.Lock()
	if h, ok := s.hashes[height]; ok {
		s.mu.Unlock()
		return h, true
	}
	s.mu.Unlock()

	h, ok := s.chain.BlockHashAt(height)
	if !ok {
		return chainhash.Hash{}, false
	}

	s.mu.Lock()
	s.hashes[height] = h
	s.mu.Unlock()
	return h, true
}

// Reset clears the memoization, used after a reorg invalidates the
// height->hash mapping globally.
func (s *Scorer) Reset() {
	s.mu.Lock()
	s.hashes = make(map[int32]chainhash.Hash)
	s.mu.Unlock()
}
