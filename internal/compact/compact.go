// Package compact implements the compact ("nBits") representation of big
// integers used by Bitcoin-family chains to encode difficulty targets. The
// masternode core reuses the encoding as a deterministic, byte-exact
// magnitude when deriving pseudo-random payment offsets, so the sign
// handling and normalization here are consensus-observable and must not be
// altered.
package compact

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashToBig converts a chainhash.Hash into a big integer that can be used
// to perform math comparisons. Hashes are serialized least significant
// byte first, while big integers expect the opposite, so the bytes are
// reversed before conversion.
func HashToBig(hash *chainhash.Hash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
	return new(big.Int).SetBytes(buf[:])
}

// ToBig converts the compact representation of a whole number N to a big
// integer. The representation is similar to IEEE754 floating point: the
// most significant byte is the exponent (base 256), the next bit the sign,
// and the remaining 23 bits the mantissa.
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
func ToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes to represent the full 256-bit number. So,
	// treat the exponent as the number of bytes and shift the mantissa
	// right or left accordingly.
	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// FromBig converts a big integer to its compact representation. The sign
// is encoded into bit 23 of the mantissa, and a mantissa whose own high
// bit is set is divided by 256 with the exponent bumped so the sign bit
// stays unambiguous. The conversion is lossy beyond the mantissa's 23
// bits of precision.
func FromBig(n *big.Int) uint32 {
	// No need to do any work if it's zero.
	if n.Sign() == 0 {
		return 0
	}

	// Requires a copy since shifting is done in place.
	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23-bits, so divide the number by
	// 256 and increment the exponent accordingly.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}
