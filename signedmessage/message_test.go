package signedmessage

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

type stubSignable struct {
	str  string
	hash [32]byte
}

func (s stubSignable) StrMessage() string      { return s.str }
func (s stubSignable) SignatureHash() [32]byte { return s.hash }

func genKey(t *testing.T) (*btcec.PrivateKey, *btcec.PublicKey) {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return priv, priv.PubKey()
}

func TestSignVerifyRoundTripLegacy(t *testing.T) {
	priv, pub := genKey(t)
	msg := stubSignable{str: "hello masternode"}

	var base Base
	require.NoError(t, base.Sign(priv, pub, msg, 1234, false))
	require.Equal(t, LegacyStrMessage, base.MessageVersion)

	version, ok, err := base.Verify(pub, msg)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, LegacyStrMessage, version)
}

func TestSignVerifyRoundTripHash(t *testing.T) {
	priv, pub := genKey(t)
	msg := stubSignable{hash: [32]byte{1, 2, 3}}

	var base Base
	require.NoError(t, base.Sign(priv, pub, msg, 1234, true))
	require.Equal(t, HashMessage, base.MessageVersion)

	version, ok, err := base.Verify(pub, msg)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, HashMessage, version)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	priv, pub := genKey(t)
	_, otherPub := genKey(t)
	msg := stubSignable{str: "hello"}

	var base Base
	require.NoError(t, base.Sign(priv, pub, msg, 1234, false))

	_, ok, err := base.Verify(otherPub, msg)
	require.NoError(t, err)
	require.False(t, ok)
}
