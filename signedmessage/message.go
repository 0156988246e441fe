package signedmessage

import (
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
)

// ErrSelfVerifyFailed is returned by Sign when the just-produced signature
// fails its own verification round trip.
var ErrSelfVerifyFailed = errors.New("signedmessage: self-verify failed after signing")

// Signable is implemented by each concrete message (Announcement, Heartbeat)
// to supply the two domain-specific string forms a SignedMessage can be
// signed over.
type Signable interface {
	// StrMessage is the concatenation signed under LegacyStrMessage.
	StrMessage() string
	// SignatureHash is hex-encoded and signed under HashMessage.
	SignatureHash() [32]byte
}

// Base carries the fields common to every signed core message: when it was
// signed, which scheme was used, and the signature bytes themselves.
type Base struct {
	SigTime        int64
	MessageVersion MessageVersion
	Sig            []byte
}

// Sign signs msg with priv under the scheme selected by hashUpgradeActive,
// stamps SigTime, and self-verifies the result against pub. A failed
// self-verify is a caller-visible error, never a silently bad signature.
func (b *Base) Sign(priv *btcec.PrivateKey, pub *btcec.PublicKey, msg Signable, sigTime int64, hashUpgradeActive bool) error {
	b.SigTime = sigTime
	if hashUpgradeActive {
		b.MessageVersion = HashMessage
	} else {
		b.MessageVersion = LegacyStrMessage
	}

	str := b.signString(msg)
	b.Sig = SignMessage(priv, str)

	ok, err := VerifyMessage(pub, b.Sig, str)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSelfVerifyFailed
	}
	return nil
}

// signString returns the exact string signed for the currently selected
// MessageVersion.
func (b *Base) signString(msg Signable) string {
	if b.MessageVersion == HashMessage {
		h := msg.SignatureHash()
		return hex.EncodeToString(h[:])
	}
	return msg.StrMessage()
}

// Verify reports whether the message's signature validates against pub
// under either scheme, and which one succeeded.
func (b *Base) Verify(pub *btcec.PublicKey, msg Signable) (MessageVersion, bool, error) {
	hashStr := hex.EncodeToString(func() []byte { h := msg.SignatureHash(); return h[:] }())
	if ok, err := VerifyMessage(pub, b.Sig, hashStr); err == nil && ok {
		return HashMessage, true, nil
	}

	strMsg := msg.StrMessage()
	ok, err := VerifyMessage(pub, b.Sig, strMsg)
	if err != nil {
		return 0, false, err
	}
	return LegacyStrMessage, ok, nil
}
