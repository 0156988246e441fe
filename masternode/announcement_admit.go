package masternode

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/chaincfg"
	"github.com/MultiSysNetwork/MultiSys/chainiface"
	"github.com/MultiSysNetwork/MultiSys/internal/mnlog"
	"github.com/MultiSysNetwork/MultiSys/netiface"
	"github.com/MultiSysNetwork/MultiSys/schedules"
	"github.com/MultiSysNetwork/MultiSys/spork"
)

// announceSpendFee is subtracted from the collateral amount when building
// the synthetic spend submitted to the mempool acceptance predicate, so the
// synthetic transaction pays a plausible fee (0.01 coin in base units).
const announceSpendFee = btcutil.Amount(1_000_000)

// Admit validates and applies a received Announcement against the
// registry. Ordering is strict and abort-on-first-failure. active may be
// nil when this node runs no masternode of its own.
func (a *Announcement) Admit(ctx context.Context, reg *Registry, chain chainiface.Chain, network netiface.Network, sp spork.Spork, active Active, params chaincfg.Params, now int64) AdmitOutcome {
	if a.SigTime > now+3600 {
		return permanentErr(1, ErrFutureTimestamp)
	}

	// The embedded ping must at least carry a sane sig_time and, when the
	// record is already known, a valid operator signature.
	if a.Ping == nil {
		return permanent(1)
	}
	if outcome := a.Ping.Admit(ctx, reg, chain, network, sp, params, now, false, true); outcome.Kind == RejectedPermanent {
		return outcome
	}

	if a.ProtocolVersion < params.ActiveProtocolVersion {
		mnlog.Log.Debugf("announcement: ignoring outdated masternode %s, protocol %d", a.CollateralOutpoint, a.ProtocolVersion)
		return ignored()
	}

	collateralScript, errC := payToPubKeyHashScript(a.CollateralPubKey)
	operatorScript, errO := payToPubKeyHashScript(a.OperatorPubKey)
	if errC != nil || errO != nil || !scriptSizeValid(collateralScript) || !scriptSizeValid(operatorScript) {
		return permanentErr(100, ErrBadKey)
	}

	if len(a.CollateralScriptSig) != 0 {
		mnlog.Log.Debugf("announcement: non-empty collateral scriptSig for %s", a.CollateralOutpoint)
		return permanent(0)
	}

	if _, sigOK, err := a.Base.Verify(a.CollateralPubKey, a); err != nil || !sigOK {
		// Masternodes at or below MinPeerMnAnnounce still sign the old
		// strMessage layout; tolerate them while the rollout completes.
		if a.ProtocolVersion <= params.MinPeerMnAnnounce {
			return permanentErr(0, ErrBadSignature)
		}
		return permanentErr(100, ErrBadSignature)
	}

	if a.Service.Port != params.DefaultPort {
		return permanentErr(0, ErrWrongPort)
	}

	if existing := reg.Find(a.CollateralOutpoint); existing != nil {
		return a.admitUpdate(ctx, existing, reg, chain, network, params, now)
	}
	return a.admitNew(ctx, reg, chain, network, active, params, now)
}

// admitUpdate is the branch of Admit where a record for this outpoint
// already exists: refresh it in place from the newer broadcast.
func (a *Announcement) admitUpdate(ctx context.Context, rec *Record, reg *Registry, chain chainiface.Chain, network netiface.Network, params chaincfg.Params, now int64) AdmitOutcome {
	rec.mu.Lock()
	if a.SigTime == rec.SigTime {
		// Legit duplicate; the seen-cache usually filters these before
		// they get this far.
		rec.mu.Unlock()
		return ignored()
	}
	if a.SigTime < rec.SigTime {
		// An announcement older than the one we already accepted should
		// never arrive unless someone is replaying stale broadcasts.
		rec.mu.Unlock()
		return permanentErr(100, ErrStaleTimestamp)
	}
	if rec.State != Enabled {
		rec.mu.Unlock()
		return accepted(false)
	}
	samePubKey := rec.CollateralPubKey.IsEqual(a.CollateralPubKey)
	broadcastRecently := time.Duration(now-rec.SigTime)*time.Second < MinMnbSeconds
	rec.mu.Unlock()

	if !samePubKey || broadcastRecently {
		return ignored()
	}

	rec.mu.Lock()
	rec.CollateralPubKey = a.CollateralPubKey
	rec.OperatorPubKey = a.OperatorPubKey
	rec.SigTime = a.SigTime
	rec.MessageVersion = a.MessageVersion
	rec.AnnouncementSig = a.Sig
	rec.ProtocolVersion = a.ProtocolVersion
	rec.Service = a.Service
	rec.LastPing = a.Ping
	rec.mu.Unlock()

	newState := rec.Check(ctx, true, now, chain, params)

	reg.NoteSeenAnnouncement(a.Hash(), a)
	relay := newState == Enabled
	if relay && network != nil {
		network.Relay(netiface.MasternodeAnnounce, a.Hash())
	}
	return accepted(relay)
}

// admitNew handles an announcement for an outpoint with no prior record:
// prove the collateral before inserting.
func (a *Announcement) admitNew(ctx context.Context, reg *Registry, chain chainiface.Chain, network netiface.Network, active Active, params chaincfg.Params, now int64) AdmitOutcome {
	// Our own re-broadcast announcement needs no input checks; we already
	// proved the collateral when we activated.
	if active != nil {
		if localOut, ok := active.LocalOutpoint(); ok && localOut == a.CollateralOutpoint &&
			active.OperatorPubKey() != nil && active.OperatorPubKey().IsEqual(a.OperatorPubKey) {
			return accepted(false)
		}
	}

	if chain == nil {
		return transient()
	}

	unlock, ok := chain.TryLockChain()
	if !ok {
		// Not the announcement's fault; forget it so it can be offered
		// again once the chain lock frees up.
		reg.ForgetSeenAnnouncement(a.Hash())
		return AdmitOutcome{Kind: RejectedTransient, Err: ErrChainRetry}
	}

	collateralAmount := schedules.Collateral(chain.TipHeight())
	collateralScript, err := payToPubKeyHashScript(a.CollateralPubKey)
	if err != nil {
		unlock()
		return permanentErr(100, ErrBadKey)
	}

	// Spend the collateral into a synthetic transaction and ask the
	// mempool's acceptance predicate about it. Anything other than an
	// unspent output of exactly the collateral amount fails here.
	syntheticTx := wire.NewMsgTx(wire.TxVersion)
	syntheticTx.AddTxIn(wire.NewTxIn(&a.CollateralOutpoint, nil, nil))
	syntheticTx.AddTxOut(wire.NewTxOut(int64(collateralAmount-announceSpendFee), collateralScript))
	if !chain.AcceptableInputs(syntheticTx) {
		unlock()
		return permanentErr(0, ErrCollateralNotFound)
	}
	height := chain.TipHeight()
	unlock()

	if confirmations := chain.CoinDepthAt(a.CollateralOutpoint, height); confirmations < MinConfirmations {
		mnlog.Log.Debugf("announcement: %s has only %d of %d confirmations, retrying later",
			a.CollateralOutpoint, confirmations, MinConfirmations)
		// Maybe we are a few blocks behind; let this one be checked again.
		reg.ForgetSeenAnnouncement(a.Hash())
		return AdmitOutcome{Kind: RejectedTransient, Err: ErrInsufficientConfirmations}
	}

	// sig_time must not predate the block where the collateral reached
	// MinConfirmations. Skipped when the collateral transaction's block
	// is not resolvable, the same leniency the index lookup had upstream.
	if _, includingBlock, found := chain.Transaction(a.CollateralOutpoint.Hash); found {
		if collateralMeta, known := chain.FindBlock(includingBlock); known {
			if confMeta, ok := chain.BlockIndexAt(collateralMeta.Height + MinConfirmations - 1); ok && confMeta.Time.Unix() > a.SigTime {
				mnlog.Log.Debugf("announcement: bad sigTime %d for %s (%d-conf block is at %d)",
					a.SigTime, a.CollateralOutpoint, MinConfirmations, confMeta.Time.Unix())
				return permanentErr(0, ErrStaleTimestamp)
			}
		}
	}

	rec := &Record{
		CollateralOutpoint: a.CollateralOutpoint,
		Service:            a.Service,
		CollateralPubKey:   a.CollateralPubKey,
		OperatorPubKey:     a.OperatorPubKey,
		ProtocolVersion:    a.ProtocolVersion,
		SigTime:            a.SigTime,
		MessageVersion:     a.MessageVersion,
		AnnouncementSig:    a.Sig,
		LastPing:           a.Ping,
		State:              PreEnabled,
	}
	if err := reg.Add(rec); err != nil {
		return ignored()
	}
	rec.Check(ctx, true, now, chain, params)

	reg.NoteSeenAnnouncement(a.Hash(), a)

	// A remote wallet announcing our operator key activates us hot/cold.
	if active != nil && active.OperatorPubKey() != nil &&
		active.OperatorPubKey().IsEqual(a.OperatorPubKey) && a.ProtocolVersion == params.ActiveProtocolVersion {
		active.EnableHotCold(a.CollateralOutpoint, a.Service)
	}

	relay := params.RegTest || !a.Service.IsRFC1918OrLocal()
	if relay && network != nil {
		network.Relay(netiface.MasternodeAnnounce, a.Hash())
	}
	return accepted(relay)
}
