package masternode

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/chaincfg"
	"github.com/MultiSysNetwork/MultiSys/chainiface"
	"github.com/MultiSysNetwork/MultiSys/netiface"
)

// fakeChain is a minimal in-memory chainiface.Chain used across this
// package's tests. Every masternode collateral is treated as unspent and
// owned unless explicitly poked otherwise.
type fakeChain struct {
	tipHeight  int32
	synced     bool
	shutdown   bool
	blocks     map[int32]chainhash.Hash
	blockMeta  map[int32]chainiface.BlockMeta
	txBlocks   map[chainhash.Hash]chainhash.Hash
	acceptable bool
	confirms   int32
	spendable  bool
	lockOK     bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		tipHeight:  100,
		synced:     true,
		blocks:     make(map[int32]chainhash.Hash),
		blockMeta:  make(map[int32]chainiface.BlockMeta),
		txBlocks:   make(map[chainhash.Hash]chainhash.Hash),
		acceptable: true,
		confirms:   20,
		spendable:  true,
		lockOK:     true,
	}
}

func (f *fakeChain) TipHeight() int32 { return f.tipHeight }

func (f *fakeChain) BlockHashAt(height int32) (chainhash.Hash, bool) {
	h, ok := f.blocks[height]
	return h, ok
}

func (f *fakeChain) BlockIndexAt(height int32) (chainiface.BlockMeta, bool) {
	m, ok := f.blockMeta[height]
	return m, ok
}

func (f *fakeChain) Contains(hash chainhash.Hash) bool {
	for _, h := range f.blocks {
		if h == hash {
			return true
		}
	}
	return false
}

func (f *fakeChain) FindBlock(hash chainhash.Hash) (chainiface.BlockMeta, bool) {
	for height, h := range f.blocks {
		if h == hash {
			return chainiface.BlockMeta{Height: height, Hash: h}, true
		}
	}
	return chainiface.BlockMeta{}, false
}

func (f *fakeChain) CoinDepthAt(outpoint wire.OutPoint, height int32) int32 { return f.confirms }

func (f *fakeChain) Transaction(hash chainhash.Hash) (*wire.MsgTx, chainhash.Hash, bool) {
	block, ok := f.txBlocks[hash]
	if !ok {
		return nil, chainhash.Hash{}, false
	}
	return wire.NewMsgTx(wire.TxVersion), block, true
}

func (f *fakeChain) AcceptableInputs(tx *wire.MsgTx) bool { return f.acceptable }

func (f *fakeChain) IsUnspentAndOwnedBy(outpoint wire.OutPoint, amount btcutil.Amount, script []byte) (bool, error) {
	return f.spendable, nil
}

func (f *fakeChain) NetworkUpgradeActive(name string, height int32) bool { return false }

func (f *fakeChain) IsBlockchainSynced() bool { return f.synced }

func (f *fakeChain) ShuttingDown() bool { return f.shutdown }

func (f *fakeChain) TryLockChain() (func(), bool) {
	if !f.lockOK {
		return nil, false
	}
	return func() {}, true
}

type fakeNetwork struct {
	relayed int
}

func (n *fakeNetwork) Relay(kind netiface.Kind, hash chainhash.Hash) { n.relayed++ }

type fakeActive struct {
	operatorPub *btcec.PublicKey
	outpoint    wire.OutPoint
	activated   bool
	enabled     int
}

func (a *fakeActive) OperatorPubKey() *btcec.PublicKey { return a.operatorPub }

func (a *fakeActive) LocalOutpoint() (wire.OutPoint, bool) { return a.outpoint, a.activated }

func (a *fakeActive) EnableHotCold(outpoint wire.OutPoint, service Address) {
	a.outpoint = outpoint
	a.activated = true
	a.enabled++
}

type fakeSigner struct {
	pub  *btcec.PublicKey
	priv *btcec.PrivateKey
	err  error
}

func (s fakeSigner) CollateralKeyPair(outpoint wire.OutPoint) (*btcec.PublicKey, *btcec.PrivateKey, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.pub, s.priv, nil
}

func testParams() chaincfg.Params {
	return chaincfg.Params{
		Name:                  "test",
		DefaultPort:           51472,
		RegTest:               true,
		ActiveProtocolVersion: 70917,
		MinPeerMnAnnounce:     70915,
		MaxMoneyOut:           1_000_000_000 * btcutil.SatoshiPerBitcoin,
		BurnAddresses:         map[string]int32{},
	}
}

func genTestKey() (*btcec.PrivateKey, *btcec.PublicKey) {
	priv, _ := btcec.NewPrivateKey()
	return priv, priv.PubKey()
}

func genTestWIF(priv *btcec.PrivateKey) string {
	wif, _ := btcutil.NewWIF(priv, &btcutilChainParams, true)
	return wif.String()
}

func testOutpoint(b byte, index uint32) wire.OutPoint {
	var hash chainhash.Hash
	hash[0] = b
	return wire.OutPoint{Hash: hash, Index: index}
}
