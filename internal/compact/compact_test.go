package compact

import (
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func TestFromBigKnownVectors(t *testing.T) {
	cases := []struct {
		in   int64
		want uint32
	}{
		{0, 0x00000000},
		{0x12, 0x01120000},
		{0x1234, 0x02123400},
		{0x123456, 0x03123456},
		{0x12345678, 0x04123456},
		{0x92340000, 0x05009234},
		{-0x12345600, 0x04923456},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, FromBig(big.NewInt(c.in)), "input %#x", c.in)
	}
}

func TestToBigFromBigRoundTrip(t *testing.T) {
	// Values already normalized to three mantissa bytes survive exactly.
	for _, compact := range []uint32{0x01120000, 0x02123400, 0x03123456, 0x04123456, 0x05009234, 0x1d00ffff} {
		require.Equalf(t, compact, FromBig(ToBig(compact)), "compact %#08x", compact)
	}
}

func TestHashToBigReversesByteOrder(t *testing.T) {
	var hash chainhash.Hash
	hash[0] = 1 // least significant byte in hash serialization
	require.Zero(t, big.NewInt(1).Cmp(HashToBig(&hash)))

	for i := range hash {
		hash[i] = 0x11
	}
	require.Equal(t, uint32(0x20111111), FromBig(HashToBig(&hash)))
}
