package masternode

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/MultiSysNetwork/MultiSys/internal/seencache"
	"github.com/MultiSysNetwork/MultiSys/internal/store"
	"github.com/MultiSysNetwork/MultiSys/signedmessage"
)

// ErrAlreadyExists is returned by Add when a record for the outpoint is
// already present.
var ErrAlreadyExists = errors.New("masternode: record already exists for outpoint")

const (
	seenAnnouncementCacheLimit = 10_000
	seenPingCacheLimit         = 10_000
)

// Registry is the set of known masternodes: the map of outpoint -> Record
// plus the seen-message caches used purely for duplicate suppression and
// retry control.
type Registry struct {
	mu      sync.RWMutex
	records map[wire.OutPoint]*Record

	seenAnnouncements *seencache.Cache[chainhash.Hash, *Announcement]
	seenPings         *seencache.Cache[chainhash.Hash, *Heartbeat]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		records:           make(map[wire.OutPoint]*Record),
		seenAnnouncements: seencache.New[chainhash.Hash, *Announcement](seenAnnouncementCacheLimit),
		seenPings:         seencache.New[chainhash.Hash, *Heartbeat](seenPingCacheLimit),
	}
}

// Find returns the record for outpoint, or nil if none is known.
func (r *Registry) Find(outpoint wire.OutPoint) *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records[outpoint]
}

// Add inserts rec, failing if a record for its outpoint already exists.
func (r *Registry) Add(rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.CollateralOutpoint]; exists {
		return ErrAlreadyExists
	}
	r.records[rec.CollateralOutpoint] = rec
	return nil
}

// Remove deletes the record for outpoint, if any.
func (r *Registry) Remove(outpoint wire.OutPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, outpoint)
}

// CountEnabled returns the number of records currently in the Enabled
// state. It does not force a Check; callers that need a fresh count should
// Check each record first.
func (r *Registry) CountEnabled() uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n uint32
	for _, rec := range r.records {
		if rec.IsEnabled() {
			n++
		}
	}
	return n
}

// Records returns a snapshot slice of every known record. Intended for
// scoring and iteration; callers must not mutate Record fields directly
// outside of its own lock.
func (r *Registry) Records() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out
}

// NoteSeenAnnouncement records that an announcement with the given hash has
// been processed, so a later duplicate can be recognized without
// re-validating it.
func (r *Registry) NoteSeenAnnouncement(hash chainhash.Hash, ann *Announcement) {
	r.seenAnnouncements.Add(hash, ann)
}

// NoteSeenPing records a processed ping by hash.
func (r *Registry) NoteSeenPing(hash chainhash.Hash, hb *Heartbeat) {
	r.seenPings.Add(hash, hb)
}

// SeenAnnouncement returns a previously noted announcement by hash.
func (r *Registry) SeenAnnouncement(hash chainhash.Hash) (*Announcement, bool) {
	return r.seenAnnouncements.Get(hash)
}

// SeenPing returns a previously noted ping by hash.
func (r *Registry) SeenPing(hash chainhash.Hash) (*Heartbeat, bool) {
	return r.seenPings.Get(hash)
}

// ForgetSeenAnnouncement drops a cached announcement hash so the message
// can be retried later, used when admission could not be decided because
// of contention with the Chain collaborator.
func (r *Registry) ForgetSeenAnnouncement(hash chainhash.Hash) {
	r.seenAnnouncements.Delete(hash)
}

// ForgetSeenPing drops a cached ping hash.
func (r *Registry) ForgetSeenPing(hash chainhash.Hash) {
	r.seenPings.Delete(hash)
}

// refreshSeenAnnouncementPing updates the embedded ping of any cached
// announcement for hb's outpoint; without it the seen-announcement cache
// would keep handing out announcements with long-expired pings.
func (r *Registry) refreshSeenAnnouncementPing(hb *Heartbeat) {
	for _, ann := range r.seenAnnouncements.Snapshot() {
		if ann.CollateralOutpoint == hb.CollateralOutpoint {
			ann.Ping = hb
		}
	}
}

// --- persistence ---

type recordSnapshot struct {
	CollateralTxHash   string `json:"collateral_tx_hash"`
	CollateralIndex    uint32 `json:"collateral_index"`
	ServiceIP          string `json:"service_ip"`
	ServicePort        uint16 `json:"service_port"`
	CollateralPubKey   string `json:"collateral_pubkey"`
	OperatorPubKey     string `json:"operator_pubkey"`
	ProtocolVersion    uint32 `json:"protocol_version"`
	SigTime            int64  `json:"sig_time"`
	MessageVersion     int    `json:"message_version"`
	AnnouncementSigHex string `json:"announcement_sig"`
	State              int    `json:"state"`
	LastDsq            int64  `json:"last_dsq"`
}

// Save writes every known record to s as a JSON snapshot so a restarted
// node does not come up with an empty registry.
func (r *Registry) Save(s *store.Store) error {
	r.mu.RLock()
	snaps := make([]recordSnapshot, 0, len(r.records))
	for op, rec := range r.records {
		rec.mu.Lock()
		snaps = append(snaps, recordSnapshot{
			CollateralTxHash:   op.Hash.String(),
			CollateralIndex:    op.Index,
			ServiceIP:          rec.Service.IP.String(),
			ServicePort:        rec.Service.Port,
			CollateralPubKey:   fmt.Sprintf("%x", rec.CollateralPubKey.SerializeCompressed()),
			OperatorPubKey:     fmt.Sprintf("%x", rec.OperatorPubKey.SerializeCompressed()),
			ProtocolVersion:    rec.ProtocolVersion,
			SigTime:            rec.SigTime,
			MessageVersion:     int(rec.MessageVersion),
			AnnouncementSigHex: fmt.Sprintf("%x", rec.AnnouncementSig),
			State:              int(rec.State),
			LastDsq:            rec.LastDsq,
		})
		rec.mu.Unlock()
	}
	r.mu.RUnlock()

	w, err := s.Writer()
	if err != nil {
		return err
	}
	defer w.Close()
	return json.NewEncoder(w).Encode(snaps)
}

// Load replaces the registry's contents with the snapshot stored in s.
func (r *Registry) Load(s *store.Store) error {
	rd, err := s.Reader()
	if err != nil {
		return err
	}
	defer rd.Close()

	var snaps []recordSnapshot
	if err := json.NewDecoder(rd).Decode(&snaps); err != nil {
		return err
	}

	records := make(map[wire.OutPoint]*Record, len(snaps))
	for _, snap := range snaps {
		hash, err := chainhash.NewHashFromStr(snap.CollateralTxHash)
		if err != nil {
			continue
		}
		collateralPub, err := decodeHexPub(snap.CollateralPubKey)
		if err != nil {
			continue
		}
		operatorPub, err := decodeHexPub(snap.OperatorPubKey)
		if err != nil {
			continue
		}
		sig, err := hex.DecodeString(snap.AnnouncementSigHex)
		if err != nil {
			continue
		}
		op := wire.OutPoint{Hash: *hash, Index: snap.CollateralIndex}
		records[op] = &Record{
			CollateralOutpoint: op,
			Service:            Address{IP: net.ParseIP(snap.ServiceIP), Port: snap.ServicePort},
			CollateralPubKey:   collateralPub,
			OperatorPubKey:     operatorPub,
			ProtocolVersion:    snap.ProtocolVersion,
			SigTime:            snap.SigTime,
			MessageVersion:     signedmessage.MessageVersion(snap.MessageVersion),
			AnnouncementSig:    sig,
			State:              State(snap.State),
			LastDsq:            snap.LastDsq,
		}
	}

	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
	return nil
}

func decodeHexPub(s string) (*btcec.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return btcec.ParsePubKey(b)
}
