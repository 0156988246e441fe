package masternode

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/MultiSysNetwork/MultiSys/internal/store"
)

func TestRegistryAddFindRemove(t *testing.T) {
	reg := NewRegistry()
	_, pub := genTestKey()
	rec := &Record{CollateralOutpoint: testOutpoint(1, 0), CollateralPubKey: pub, OperatorPubKey: pub}

	require.NoError(t, reg.Add(rec))
	require.Same(t, rec, reg.Find(testOutpoint(1, 0)))
	require.ErrorIs(t, reg.Add(rec), ErrAlreadyExists)

	reg.Remove(testOutpoint(1, 0))
	require.Nil(t, reg.Find(testOutpoint(1, 0)))
}

func TestRegistryCountEnabled(t *testing.T) {
	reg := NewRegistry()
	_, pub := genTestKey()
	for i := byte(0); i < 5; i++ {
		state := Enabled
		if i%2 == 1 {
			state = Expired
		}
		require.NoError(t, reg.Add(&Record{
			CollateralOutpoint: testOutpoint(i, 0),
			CollateralPubKey:   pub,
			OperatorPubKey:     pub,
			State:              state,
		}))
	}
	require.Equal(t, uint32(3), reg.CountEnabled())
}

func TestRegistrySeenCachesForgetOnDemand(t *testing.T) {
	reg := NewRegistry()
	ann, _ := signedAnnouncement(t, 9, 1_700_000_000)
	hash := ann.Hash()

	reg.NoteSeenAnnouncement(hash, ann)
	got, ok := reg.SeenAnnouncement(hash)
	require.True(t, ok)
	require.Same(t, ann, got)

	reg.ForgetSeenAnnouncement(hash)
	_, ok = reg.SeenAnnouncement(hash)
	require.False(t, ok)

	hb := &Heartbeat{CollateralOutpoint: testOutpoint(9, 0)}
	hb.SigTime = 1_700_000_000
	pingHash := hb.Hash(nil)
	reg.NoteSeenPing(pingHash, hb)
	_, ok = reg.SeenPing(pingHash)
	require.True(t, ok)
	reg.ForgetSeenPing(pingHash)
	_, ok = reg.SeenPing(pingHash)
	require.False(t, ok)
}

func TestRegistryRefreshSeenAnnouncementPing(t *testing.T) {
	reg := NewRegistry()
	ann, keys := signedAnnouncement(t, 9, 1_700_000_000)
	reg.NoteSeenAnnouncement(ann.Hash(), ann)

	newer := signedPing(t, keys.operatorPriv, keys.operatorPub, chainhash.Hash{0xcc}, 1_700_000_700)
	newer.CollateralOutpoint = testOutpoint(9, 0)
	reg.refreshSeenAnnouncementPing(newer)

	cached, ok := reg.SeenAnnouncement(ann.Hash())
	require.True(t, ok)
	require.Equal(t, int64(1_700_000_700), cached.Ping.SigTime)
}

func TestRegistrySaveLoadRoundTrip(t *testing.T) {
	reg := NewRegistry()
	_, collateralPub := genTestKey()
	_, operatorPub := genTestKey()
	require.NoError(t, reg.Add(&Record{
		CollateralOutpoint: testOutpoint(3, 1),
		Service:            Address{IP: parseTestIP("203.0.113.10"), Port: 51472},
		CollateralPubKey:   collateralPub,
		OperatorPubKey:     operatorPub,
		ProtocolVersion:    70917,
		SigTime:            1_700_000_000,
		AnnouncementSig:    []byte{1, 2, 3},
		State:              Enabled,
		LastDsq:            42,
	}))

	snapshot := store.New(filepath.Join(t.TempDir(), "masternodes.json"))
	require.NoError(t, reg.Save(snapshot))

	loaded := NewRegistry()
	require.NoError(t, loaded.Load(snapshot))

	rec := loaded.Find(testOutpoint(3, 1))
	require.NotNil(t, rec)
	require.Equal(t, int64(1_700_000_000), rec.SigTime)
	require.Equal(t, uint32(70917), rec.ProtocolVersion)
	require.Equal(t, Enabled, rec.State)
	require.Equal(t, int64(42), rec.LastDsq)
	require.True(t, collateralPub.IsEqual(rec.CollateralPubKey))
	require.Equal(t, "203.0.113.10", rec.Service.IP.String())
}

func TestStoreReaderMissingFile(t *testing.T) {
	snapshot := store.New(filepath.Join(t.TempDir(), "never-written.json"))
	_, err := snapshot.Reader()
	require.ErrorIs(t, err, store.ErrNotExist)
}
