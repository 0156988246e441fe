package masternode

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatSerializeRoundTrip(t *testing.T) {
	priv, pub := genTestKey()
	hb := &Heartbeat{CollateralOutpoint: testOutpoint(6, 2), BlockHash: chainhash.Hash{0xde, 0xad}}
	require.NoError(t, hb.Sign(priv, pub, 1_700_000_000, true, nil))

	var buf bytes.Buffer
	require.NoError(t, hb.Serialize(&buf))

	decoded, err := ParseHeartbeat(&buf)
	require.NoError(t, err)
	require.Equal(t, hb.CollateralOutpoint, decoded.CollateralOutpoint)
	require.Equal(t, hb.BlockHash, decoded.BlockHash)
	require.Equal(t, hb.SigTime, decoded.SigTime)
	require.Equal(t, hb.MessageVersion, decoded.MessageVersion)

	// The decoded ping must still verify: the hash construction only uses
	// fields that survived the trip.
	_, ok, err := decoded.CheckSignature(pub, nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAnnouncementSerializeRoundTrip(t *testing.T) {
	ann, _ := signedAnnouncement(t, 6, 1_700_000_000)

	var buf bytes.Buffer
	require.NoError(t, ann.Serialize(&buf))

	decoded, err := ParseAnnouncement(&buf)
	require.NoError(t, err)
	require.Equal(t, ann.CollateralOutpoint, decoded.CollateralOutpoint)
	require.Equal(t, ann.Service.String(), decoded.Service.String())
	require.Equal(t, ann.SigTime, decoded.SigTime)
	require.Equal(t, ann.ProtocolVersion, decoded.ProtocolVersion)
	require.True(t, ann.CollateralPubKey.IsEqual(decoded.CollateralPubKey))
	require.True(t, ann.OperatorPubKey.IsEqual(decoded.OperatorPubKey))
	require.NotNil(t, decoded.Ping)
	require.Equal(t, ann.Ping.SigTime, decoded.Ping.SigTime)
	require.Equal(t, ann.Hash(), decoded.Hash())

	_, ok, err := decoded.Base.Verify(decoded.CollateralPubKey, decoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParseAnnouncementTruncatedInput(t *testing.T) {
	ann, _ := signedAnnouncement(t, 6, 1_700_000_000)
	var buf bytes.Buffer
	require.NoError(t, ann.Serialize(&buf))

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()/2])
	_, err := ParseAnnouncement(truncated)
	require.Error(t, err)
}
