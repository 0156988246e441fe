package signedmessage

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// messageMagic is prepended to every message before hashing, the same way
// Bitcoin-family signmessage implementations domain-separate signed
// messages from raw transaction data.
const messageMagic = "MultiSys Signed Message:\n"

// ErrSignatureMismatch describes a signature whose recovered public key
// does not match the expected one. VerifyMessage does not return it: it
// reports that case as ok=false with a nil error.
var ErrSignatureMismatch = errors.New("signedmessage: signature does not match expected public key")

// messageDigest computes the magic-prefixed, varstring-framed double-SHA256
// digest of msg, the framing every Bitcoin-family signmessage
// implementation agrees on.
func messageDigest(msg string) chainhash.Hash {
	var buf bytes.Buffer
	_ = wire.WriteVarString(&buf, 0, messageMagic)
	_ = wire.WriteVarString(&buf, 0, msg)
	return chainhash.DoubleHashH(buf.Bytes())
}

// SignMessage signs msg with priv and returns a compact, recoverable
// signature. Both the LegacyStrMessage and HashMessage schemes funnel
// through this: they differ only in what string they pass as msg.
func SignMessage(priv *btcec.PrivateKey, msg string) []byte {
	digest := messageDigest(msg)
	return ecdsa.SignCompact(priv, digest[:], true)
}

// VerifyMessage reports whether sig is a valid compact signature over msg
// that recovers to pub.
func VerifyMessage(pub *btcec.PublicKey, sig []byte, msg string) (bool, error) {
	digest := messageDigest(msg)
	recovered, _, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return false, err
	}
	return recovered.IsEqual(pub), nil
}

// GetKeysFromSecret parses a WIF-encoded secret into its key pair,
// rejecting anything that isn't a well-formed secp256k1 WIF.
func GetKeysFromSecret(wif string) (*btcec.PrivateKey, *btcec.PublicKey, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, nil, err
	}
	return decoded.PrivKey, decoded.PrivKey.PubKey(), nil
}
