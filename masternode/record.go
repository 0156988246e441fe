package masternode

import (
	"bytes"
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	btcdchaincfg "github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/chaincfg"
	"github.com/MultiSysNetwork/MultiSys/chainiface"
	"github.com/MultiSysNetwork/MultiSys/internal/compact"
	"github.com/MultiSysNetwork/MultiSys/internal/mnlog"
	"github.com/MultiSysNetwork/MultiSys/schedules"
	"github.com/MultiSysNetwork/MultiSys/signedmessage"
)

// btcutilChainParams only governs base58 address-version bytes for the
// script-building helpers below; it is unrelated to the network-upgrade and
// port parameters in the sibling chaincfg package.
var btcutilChainParams = btcdchaincfg.MainNetParams

// Record is the live state of one known masternode. Each Record is
// exclusively owned by a Registry; every other component borrows a
// reference for the duration of a single operation, serialized by mu.
type Record struct {
	mu sync.Mutex

	CollateralOutpoint wire.OutPoint
	Service            Address
	CollateralPubKey   *btcec.PublicKey
	OperatorPubKey     *btcec.PublicKey
	ProtocolVersion    uint32
	SigTime            int64
	MessageVersion     signedmessage.MessageVersion
	AnnouncementSig    []byte
	LastPing           *Heartbeat
	State              State
	LastCheckTime      int64
	LastDsq            int64
}

// IsEnabled reports whether the record is currently Enabled. Safe for
// concurrent use.
func (r *Record) IsEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.State == Enabled
}

// IsPingedWithin reports whether the record's last ping is no older than
// window, measured against reference (typically now, but the incoming
// ping's own sig_time when checking against a not-yet-applied ping).
func (r *Record) IsPingedWithin(window time.Duration, reference int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LastPing == nil {
		return time.Duration(reference-r.SigTime)*time.Second < window
	}
	return time.Duration(reference-r.LastPing.SigTime)*time.Second < window
}

// Check evaluates the lifecycle state machine and returns the resulting
// state. It rate-limits itself to once per CheckSeconds unless force is
// true, and returns immediately without mutating state if the host has
// requested shutdown or the chain collaborator's lock cannot be acquired
// without blocking.
func (r *Record) Check(ctx context.Context, force bool, now int64, chain chainiface.Chain, params chaincfg.Params) State {
	if ctx.Err() != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.State
	}
	if chain != nil && chain.ShuttingDown() {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.State
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !force && now-r.LastCheckTime < int64(CheckSeconds/time.Second) {
		return r.State
	}
	r.LastCheckTime = now

	if r.State == VinSpent {
		return VinSpent
	}

	pingSigTime := r.SigTime
	if r.LastPing != nil {
		pingSigTime = r.LastPing.SigTime
	}
	pingAge := time.Duration(now-pingSigTime) * time.Second

	if pingAge > RemovalSeconds {
		r.State = Removed
		return Removed
	}
	if pingAge > ExpirationSeconds {
		r.State = Expired
		return Expired
	}
	if r.LastPing != nil && time.Duration(r.LastPing.SigTime-r.SigTime)*time.Second < MinMnpSeconds {
		r.State = PreEnabled
		return PreEnabled
	}

	if burnHeight, burned := params.BurnAddresses[collateralAddress(r.CollateralPubKey)]; burned {
		height := int32(0)
		if chain != nil {
			height = chain.TipHeight()
		}
		if height >= burnHeight {
			r.State = VinSpent
			return VinSpent
		}
	}

	if chain != nil {
		unlock, ok := chain.TryLockChain()
		if !ok {
			mnlog.Log.Debugf("check: chain lock contended for %s, leaving state at %s", r.CollateralOutpoint, r.State)
			return r.State
		}
		defer unlock()

		expectedAmount := schedules.Collateral(chain.TipHeight())
		expectedScript, err := payToPubKeyHashScript(r.CollateralPubKey)
		if err == nil {
			spendable, err := chain.IsUnspentAndOwnedBy(r.CollateralOutpoint, expectedAmount, expectedScript)
			if err == nil && !spendable {
				r.State = VinSpent
				return VinSpent
			}
		}
	}

	r.State = Enabled
	return Enabled
}

// paymentHash is the deterministic per-record digest the payment engine
// derives pseudo-random offsets from: H(outpoint || sig_time).
func (r *Record) paymentHash() chainhash.Hash {
	var buf bytes.Buffer
	_ = writeOutPoint(&buf, &r.CollateralOutpoint)
	_ = binary.Write(&buf, binary.LittleEndian, r.SigTime)
	return chainhash.DoubleHashH(buf.Bytes())
}

// SecondsSincePayment returns how long ago this masternode was last paid.
// lastPaid is the block time of the most recent payment the host's payment
// engine knows about, zero when unknown. Below thirty days the elapsed
// seconds are returned as-is; beyond that a deterministic per-record value
// forced past thirty days is returned, derived from the compact encoding
// of the payment hash. The compact form's byte-level behavior, sign bit
// included, is observable through payment ordering and must stay exact.
func (r *Record) SecondsSincePayment(now, lastPaid int64) int64 {
	const month = 60 * 60 * 24 * 30

	sec := now - lastPaid
	if sec < month {
		return sec
	}

	r.mu.Lock()
	hash := r.paymentHash()
	r.mu.Unlock()
	return month + int64(compact.FromBig(compact.HashToBig(&hash)))
}

// PaymentTimeOffset is the deterministic tie-break offset, in seconds,
// added to a payment block's time when reconstructing when this masternode
// was last paid. Bounded to two and a half minutes.
func (r *Record) PaymentTimeOffset() int64 {
	r.mu.Lock()
	hash := r.paymentHash()
	r.mu.Unlock()
	return int64(compact.FromBig(compact.HashToBig(&hash)) % 150)
}

// payToPubKeyHashScript builds the standard P2PKH script locking pub's
// hash160, the script shape every collateral and operator key check
// expects.
func payToPubKeyHashScript(pub *btcec.PublicKey) ([]byte, error) {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), &btcutilChainParams)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(addr)
}

func collateralAddress(pub *btcec.PublicKey) string {
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), &btcutilChainParams)
	if err != nil {
		return ""
	}
	return addr.EncodeAddress()
}

// scriptSizeValid reports whether script is a standard P2PKH script by
// size (always exactly 25 bytes: OP_DUP OP_HASH160 <20 bytes>
// OP_EQUALVERIFY OP_CHECKSIG).
func scriptSizeValid(script []byte) bool {
	return len(script) == 25
}
