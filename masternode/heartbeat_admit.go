package masternode

import (
	"context"
	"time"

	"github.com/MultiSysNetwork/MultiSys/chaincfg"
	"github.com/MultiSysNetwork/MultiSys/chainiface"
	"github.com/MultiSysNetwork/MultiSys/internal/mnlog"
	"github.com/MultiSysNetwork/MultiSys/netiface"
	"github.com/MultiSysNetwork/MultiSys/spork"
)

// Admit validates and applies an incoming Heartbeat against the registry.
// sigTimeOnly implements the embedded-ping fast path used while validating
// an Announcement: it only checks the timestamp window and, when the
// record is already known, the signature, without touching the registry or
// relaying.
func (h *Heartbeat) Admit(ctx context.Context, reg *Registry, chain chainiface.Chain, network netiface.Network, sp spork.Spork, params chaincfg.Params, now int64, requireEnabled, sigTimeOnly bool) AdmitOutcome {
	if h.SigTime > now+3600 {
		return permanentErr(1, ErrFutureTimestamp)
	}
	if h.SigTime <= now-3600 {
		return permanentErr(1, ErrStaleTimestamp)
	}

	rec := reg.Find(h.CollateralOutpoint)

	if sigTimeOnly {
		if rec != nil {
			if _, ok, err := h.CheckSignature(rec.OperatorPubKey, sp); err != nil || !ok {
				return permanentErr(33, ErrBadSignature)
			}
		}
		return accepted(false)
	}

	if rec == nil {
		// Ping doesn't match any known masternode; the host should ask
		// the sender for the matching announcement.
		return ignored()
	}

	rec.mu.Lock()
	protocolOK := rec.ProtocolVersion >= params.ActiveProtocolVersion
	isEnabled := rec.State == Enabled
	isVinSpent := rec.State == VinSpent
	pingedRecently := rec.lastPingWithinLocked(MinMnpSeconds-60*time.Second, h.SigTime)
	operatorPub := rec.OperatorPubKey
	rec.mu.Unlock()

	if !protocolOK {
		return ignored()
	}
	if isVinSpent {
		// Terminal state; nothing a ping could revive.
		return ignored()
	}
	if requireEnabled && !isEnabled {
		return ignored()
	}
	if pingedRecently {
		mnlog.Log.Debugf("heartbeat: ping for %s arrived too early", h.CollateralOutpoint)
		return ignored()
	}

	if _, sigOK, err := h.CheckSignature(operatorPub, sp); err != nil || !sigOK {
		return permanentErr(33, ErrBadSignature)
	}

	hash := h.Hash(sp)

	if chain == nil {
		return accepted(false)
	}
	meta, known := chain.FindBlock(h.BlockHash)
	if !known || !chain.Contains(h.BlockHash) || chain.TipHeight()-meta.Height > PingBlockAgeMax {
		// Let the masternode stay visible but neither update the record
		// nor relay a ping anchored to a stale or foreign block.
		mnlog.Log.Debugf("heartbeat: stale or unknown block hash for %s, accepting but not relaying", h.CollateralOutpoint)
		reg.NoteSeenPing(hash, h)
		return accepted(false)
	}

	rec.mu.Lock()
	rec.LastPing = h
	rec.mu.Unlock()

	// The cached announcement's embedded ping is probably outdated now.
	reg.refreshSeenAnnouncementPing(h)
	reg.NoteSeenPing(hash, h)

	newState := rec.Check(ctx, true, now, chain, params)
	if newState != Enabled {
		return accepted(false)
	}

	if network != nil {
		network.Relay(netiface.MasternodePing, hash)
	}
	return accepted(true)
}

// lastPingWithinLocked is the record_lock-held variant of IsPingedWithin,
// used internally by Heartbeat.Admit which already holds rec.mu.
func (r *Record) lastPingWithinLocked(window time.Duration, reference int64) bool {
	if r.LastPing == nil {
		return time.Duration(reference-r.SigTime)*time.Second < window
	}
	return time.Duration(reference-r.LastPing.SigTime)*time.Second < window
}
