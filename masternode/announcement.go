package masternode

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/chaincfg"
	"github.com/MultiSysNetwork/MultiSys/chainiface"
	"github.com/MultiSysNetwork/MultiSys/signedmessage"
	"github.com/MultiSysNetwork/MultiSys/signeriface"
)

// Announcement is the signed message that introduces or refreshes a
// masternode in the registry. It carries a full record snapshot plus an
// embedded initial Heartbeat.
type Announcement struct {
	signedmessage.Base

	CollateralOutpoint wire.OutPoint

	// CollateralScriptSig rides along with the outpoint on the wire the
	// way a transaction input would carry it. A valid announcement never
	// populates it; admission rejects any announcement that does.
	CollateralScriptSig []byte

	Service          Address
	CollateralPubKey *btcec.PublicKey
	OperatorPubKey   *btcec.PublicKey
	ProtocolVersion  uint32
	Ping             *Heartbeat
}

// Hash is the relay/dedup identity of the announcement: sig_time and the
// collateral pubkey only. This deliberately lets two announcements with
// different service addresses or operator keys collide if their timing and
// collateral pubkey match.
func (a *Announcement) Hash() chainhash.Hash {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, a.SigTime)
	buf.Write(a.CollateralPubKey.SerializeCompressed())
	return chainhash.DoubleHashH(buf.Bytes())
}

// SignatureHash implements signedmessage.Signable: it covers the message
// version, service address, sig_time, both pubkeys and protocol version, a
// wider set than Hash's identity fields. The collateral outpoint and the
// embedded ping are not covered.
func (a *Announcement) SignatureHash() [32]byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, int32(a.MessageVersion))
	buf.WriteString(a.Service.String())
	_ = binary.Write(&buf, binary.LittleEndian, a.SigTime)
	buf.Write(a.CollateralPubKey.SerializeCompressed())
	buf.Write(a.OperatorPubKey.SerializeCompressed())
	_ = binary.Write(&buf, binary.LittleEndian, a.ProtocolVersion)
	return chainhash.DoubleHashH(buf.Bytes())
}

// StrMessage implements signedmessage.Signable for the legacy scheme.
func (a *Announcement) StrMessage() string {
	return fmt.Sprintf("%s%d%x%x%d",
		a.Service.String(), a.SigTime,
		pubKeyID(a.CollateralPubKey), pubKeyID(a.OperatorPubKey),
		a.ProtocolVersion)
}

func pubKeyID(pub *btcec.PublicKey) []byte {
	return chainhash.HashB(pub.SerializeCompressed())[:20]
}

// CreateAnnouncement builds and signs a new Announcement plus its embedded
// Heartbeat. offline suppresses the synced-chain requirement, used by
// tooling that prepares an announcement for an operator key that will
// broadcast it separately.
func CreateAnnouncement(
	chain chainiface.Chain,
	signer signeriface.CollateralKeys,
	serviceStr string,
	operatorWIF string,
	collateralOutpoint wire.OutPoint,
	params chaincfg.Params,
	now int64,
	hashUpgradeActive bool,
	offline bool,
) (*Announcement, error) {
	if !offline && chain != nil && !chain.IsBlockchainSynced() {
		return nil, ErrNotSynced
	}

	operatorPriv, operatorPub, err := signedmessage.GetKeysFromSecret(operatorWIF)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKey, err)
	}

	collateralPub, collateralPriv, err := signer.CollateralKeyPair(collateralOutpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollateralNotFound, err)
	}

	service, err := ParseAddress(serviceStr, params.DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAddress, err)
	}
	if service.Port != params.DefaultPort {
		return nil, ErrWrongPort
	}
	if !params.RegTest && !service.IsRoutable() {
		return nil, ErrBadAddress
	}

	var tipHeight int32
	if chain != nil {
		tipHeight = chain.TipHeight()
	}
	ping := NewHeartbeat(collateralOutpoint, tipHeight, func(h int32) (chainhash.Hash, bool) {
		if chain == nil {
			return chainhash.Hash{}, false
		}
		return chain.BlockHashAt(h)
	})
	if err := ping.Sign(operatorPriv, operatorPub, now, hashUpgradeActive, nil); err != nil {
		return nil, err
	}

	ann := &Announcement{
		CollateralOutpoint: collateralOutpoint,
		Service:            service,
		CollateralPubKey:   collateralPub,
		OperatorPubKey:     operatorPub,
		ProtocolVersion:    params.ActiveProtocolVersion,
		Ping:               &ping,
	}
	if err := ann.Base.Sign(collateralPriv, collateralPub, ann, now, hashUpgradeActive); err != nil {
		return nil, err
	}
	return ann, nil
}
