package masternode

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/signedmessage"
	"github.com/MultiSysNetwork/MultiSys/spork"
)

// Heartbeat is the signed keep-alive message an operator key broadcasts to
// keep its masternode record alive.
type Heartbeat struct {
	signedmessage.Base

	CollateralOutpoint wire.OutPoint
	BlockHash          chainhash.Hash
}

// NewHeartbeat constructs a ping bound to outpoint, capturing the block
// hash 12 blocks back from the tip (a deep-ish reference that resists short
// reorgs), if the chain is at least 13 blocks tall.
func NewHeartbeat(outpoint wire.OutPoint, tipHeight int32, blockHashAt func(int32) (chainhash.Hash, bool)) Heartbeat {
	hb := Heartbeat{CollateralOutpoint: outpoint}
	if tipHeight > 12 {
		if h, ok := blockHashAt(tipHeight - 12); ok {
			hb.BlockHash = h
		}
	}
	return hb
}

// Hash computes the identifying/signing hash of the ping: it serves as both
// the message digest signed under the HashMessage scheme and the dedup/
// relay identity.
//
//	H(outpoint || [block_hash if HashMessage] || sig_time || [salt if salt>0])
func (h *Heartbeat) Hash(sp spork.Spork) chainhash.Hash {
	var buf bytes.Buffer
	_ = writeOutPoint(&buf, &h.CollateralOutpoint)
	if h.MessageVersion == signedmessage.HashMessage {
		buf.Write(h.BlockHash[:])
	}
	_ = binary.Write(&buf, binary.LittleEndian, h.SigTime)
	if sp != nil {
		if salt := sp.PingMessageSalt(); salt > 0 {
			_ = binary.Write(&buf, binary.LittleEndian, salt)
		}
	}
	return chainhash.DoubleHashH(buf.Bytes())
}

// SignatureHash implements signedmessage.Signable. Heartbeat's signature
// hash and its identity hash are the same construction (unlike
// Announcement, which uses a narrower field set for its identity hash).
func (h *Heartbeat) SignatureHash(sp spork.Spork) [32]byte {
	return h.Hash(sp)
}

// StrMessage implements signedmessage.Signable for the legacy scheme.
func (h *Heartbeat) StrMessage(sp spork.Spork) string {
	s := h.CollateralOutpoint.String() + h.BlockHash.String() + strconv.FormatInt(h.SigTime, 10)
	if sp != nil {
		if salt := sp.PingMessageSalt(); salt > 0 {
			s += strconv.FormatInt(salt, 10)
		}
	}
	return s
}

// heartbeatSignable binds sp so Heartbeat satisfies signedmessage.Signable without the
// base package needing to know about sporks.
type heartbeatSignable struct {
	hb *Heartbeat
	sp spork.Spork
}

func (s heartbeatSignable) StrMessage() string      { return s.hb.StrMessage(s.sp) }
func (s heartbeatSignable) SignatureHash() [32]byte { return s.hb.SignatureHash(s.sp) }

// Sign signs the ping with the operator key under the scheme selected by
// hashUpgradeActive.
func (h *Heartbeat) Sign(priv *btcec.PrivateKey, pub *btcec.PublicKey, sigTime int64, hashUpgradeActive bool, sp spork.Spork) error {
	return h.Base.Sign(priv, pub, heartbeatSignable{h, sp}, sigTime, hashUpgradeActive)
}

// CheckSignature verifies the ping's signature under either scheme against
// the record's operator pubkey.
func (h *Heartbeat) CheckSignature(pub *btcec.PublicKey, sp spork.Spork) (signedmessage.MessageVersion, bool, error) {
	return h.Base.Verify(pub, heartbeatSignable{h, sp})
}
