package masternode

import (
	"encoding/binary"
	"io"
	"net"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/signedmessage"
)

// Wire-format limits for the variable-length fields. Compact signatures are
// 65 bytes and compressed pubkeys 33; the caps leave headroom for the
// legacy DER encodings some upgraded peers still emit.
const (
	maxSigLen    = 80
	maxPubKeyLen = 65
	maxScriptLen = 10_000
)

// pver is the protocol version passed to the wire var-length helpers. The
// encodings below don't vary by protocol version.
const pver = 0

// readOutPoint reads the encoded outpoint from r: 32-byte tx hash followed
// by a little-endian uint32 index.
func readOutPoint(r io.Reader, op *wire.OutPoint) error {
	if _, err := io.ReadFull(r, op.Hash[:]); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &op.Index)
}

func writeOutPoint(w io.Writer, op *wire.OutPoint) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, op.Index)
}

func readPubKey(r io.Reader, fieldName string) (*btcec.PublicKey, error) {
	b, err := wire.ReadVarBytes(r, pver, maxPubKeyLen, fieldName)
	if err != nil {
		return nil, err
	}
	return btcec.ParsePubKey(b)
}

func writePubKey(w io.Writer, pub *btcec.PublicKey) error {
	return wire.WriteVarBytes(w, pver, pub.SerializeCompressed())
}

// Serialize encodes the heartbeat to w: outpoint, block hash, sig_time,
// signature, message version.
func (h *Heartbeat) Serialize(w io.Writer) error {
	if err := writeOutPoint(w, &h.CollateralOutpoint); err != nil {
		return err
	}
	if _, err := w.Write(h.BlockHash[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.SigTime); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, pver, h.Sig); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, int32(h.MessageVersion))
}

// Deserialize decodes a heartbeat from r.
func (h *Heartbeat) Deserialize(r io.Reader) error {
	if err := readOutPoint(r, &h.CollateralOutpoint); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.BlockHash[:]); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &h.SigTime); err != nil {
		return err
	}
	sig, err := wire.ReadVarBytes(r, pver, maxSigLen, "heartbeat signature")
	if err != nil {
		return err
	}
	h.Sig = sig
	var mv int32
	if err := binary.Read(r, binary.LittleEndian, &mv); err != nil {
		return err
	}
	h.MessageVersion = signedmessage.MessageVersion(mv)
	return nil
}

// ParseHeartbeat decodes a heartbeat delivered as raw message bytes by the
// network layer.
func ParseHeartbeat(r io.Reader) (*Heartbeat, error) {
	var h Heartbeat
	if err := h.Deserialize(r); err != nil {
		return nil, err
	}
	return &h, nil
}

// Serialize encodes the announcement to w: collateral input, service
// address, both pubkeys, signature, sig_time, protocol version, the
// embedded ping, and the message version.
func (a *Announcement) Serialize(w io.Writer) error {
	if err := writeOutPoint(w, &a.CollateralOutpoint); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, pver, a.CollateralScriptSig); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, pver, a.Service.IP); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, a.Service.Port); err != nil {
		return err
	}
	if err := writePubKey(w, a.CollateralPubKey); err != nil {
		return err
	}
	if err := writePubKey(w, a.OperatorPubKey); err != nil {
		return err
	}
	if err := wire.WriteVarBytes(w, pver, a.Sig); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, a.SigTime); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, a.ProtocolVersion); err != nil {
		return err
	}
	ping := a.Ping
	if ping == nil {
		ping = &Heartbeat{}
	}
	if err := ping.Serialize(w); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, int32(a.MessageVersion))
}

// Deserialize decodes an announcement from r.
func (a *Announcement) Deserialize(r io.Reader) error {
	if err := readOutPoint(r, &a.CollateralOutpoint); err != nil {
		return err
	}
	scriptSig, err := wire.ReadVarBytes(r, pver, maxScriptLen, "collateral scriptSig")
	if err != nil {
		return err
	}
	if len(scriptSig) == 0 {
		scriptSig = nil
	}
	a.CollateralScriptSig = scriptSig
	ip, err := wire.ReadVarBytes(r, pver, 16, "service ip")
	if err != nil {
		return err
	}
	if len(ip) == 0 {
		a.Service.IP = nil
	} else {
		a.Service.IP = net.IP(ip)
	}
	if err := binary.Read(r, binary.LittleEndian, &a.Service.Port); err != nil {
		return err
	}
	if a.CollateralPubKey, err = readPubKey(r, "collateral pubkey"); err != nil {
		return err
	}
	if a.OperatorPubKey, err = readPubKey(r, "operator pubkey"); err != nil {
		return err
	}
	sig, err := wire.ReadVarBytes(r, pver, maxSigLen, "announcement signature")
	if err != nil {
		return err
	}
	a.Sig = sig
	if err := binary.Read(r, binary.LittleEndian, &a.SigTime); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &a.ProtocolVersion); err != nil {
		return err
	}
	var ping Heartbeat
	if err := ping.Deserialize(r); err != nil {
		return err
	}
	a.Ping = &ping
	var mv int32
	if err := binary.Read(r, binary.LittleEndian, &mv); err != nil {
		return err
	}
	a.MessageVersion = signedmessage.MessageVersion(mv)
	return nil
}

// ParseAnnouncement decodes an announcement delivered as raw message bytes
// by the network layer.
func ParseAnnouncement(r io.Reader) (*Announcement, error) {
	var a Announcement
	if err := a.Deserialize(r); err != nil {
		return nil, err
	}
	return &a, nil
}
