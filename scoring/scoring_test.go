package scoring

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

type fakeChain map[int32]chainhash.Hash

func (f fakeChain) BlockHashAt(height int32) (chainhash.Hash, bool) {
	h, ok := f[height]
	return h, ok
}

func outpointAt(b byte, index uint32) wire.OutPoint {
	var hash chainhash.Hash
	hash[0] = b
	return wire.OutPoint{Hash: hash, Index: index}
}

// TestScorePinnedVector pins the score for a synthetic block-hash stream
// H(h) = SHA256(h as u64 big-endian) and the all-0x11 outpoint at height
// 100. The value must never change: it is observable through payment
// winner selection.
func TestScorePinnedVector(t *testing.T) {
	sum := sha256.Sum256([]byte{0, 0, 0, 0, 0, 0, 0, 100})
	var blockHash chainhash.Hash
	copy(blockHash[:], sum[:])
	chain := fakeChain{100: blockHash}

	var txHash chainhash.Hash
	for i := range txHash {
		txHash[i] = 0x11
	}
	got := Score(chain, wire.OutPoint{Hash: txHash, Index: 0}, 100)

	want, ok := new(big.Int).SetString("580787634c9aeaddc91ed9eaf01c362fcc0cabb50267ae2f0951a1fac8aa2523", 16)
	require.True(t, ok)
	require.Zero(t, want.Cmp(got), "got %064x", got)
}

func TestScoreZeroWhenBlockHashUnavailable(t *testing.T) {
	chain := fakeChain{}
	got := Score(chain, outpointAt(1, 0), 42)
	require.Equal(t, big.NewInt(0), got)
}

func TestScoreDeterministic(t *testing.T) {
	chain := fakeChain{10: chainhash.HashH([]byte("block-10"))}
	outpoint := outpointAt(7, 3)

	a := Score(chain, outpoint, 10)
	b := Score(chain, outpoint, 10)
	require.Equal(t, a, b)
	require.NotEqual(t, big.NewInt(0), a)
}

func TestScoreVariesByOutpoint(t *testing.T) {
	chain := fakeChain{10: chainhash.HashH([]byte("block-10"))}
	scoreA := Score(chain, outpointAt(1, 0), 10)
	scoreB := Score(chain, outpointAt(2, 0), 10)
	require.NotEqual(t, scoreA, scoreB)
}

func TestScorerMemoizesBlockHash(t *testing.T) {
	chain := fakeChain{5: chainhash.HashH([]byte("block-5"))}
	scorer := NewScorer(chain)

	outpoint := outpointAt(9, 1)
	first := scorer.Score(outpoint, 5)

	delete(chain, 5) // memoization should survive the underlying chain forgetting it
	second := scorer.Score(outpoint, 5)
	require.Equal(t, first, second)
}

func TestScorerResetClearsMemoization(t *testing.T) {
	chain := fakeChain{5: chainhash.HashH([]byte("block-5"))}
	scorer := NewScorer(chain)

	outpoint := outpointAt(9, 1)
	scorer.Score(outpoint, 5)

	delete(chain, 5)
	scorer.Reset()
	got := scorer.Score(outpoint, 5)
	require.Equal(t, big.NewInt(0), got)
}

func TestFieldAdditiveWraps(t *testing.T) {
	var maxHash chainhash.Hash
	for i := range maxHash {
		maxHash[i] = 0xff
	}
	out := fieldAdditive(wire.OutPoint{Hash: maxHash, Index: 1})
	// 0xFFFF...FF + 1 wraps to zero modulo 2^256.
	require.True(t, new(big.Int).SetBytes(out).Sign() == 0)
}
